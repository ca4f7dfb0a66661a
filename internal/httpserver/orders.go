package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"handmade-market/internal/domain"
	"handmade-market/internal/service/order"
)

func (h handlers) placeOrder(c *gin.Context) {
	u := currentUser(c)
	var req order.PlaceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	o, err := h.deps.Orders.Place(c.Request.Context(), u.ID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h handlers) listMyOrders(c *gin.Context) {
	u := currentUser(c)
	orders, err := h.deps.Orders.ListMine(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

func (h handlers) getOrder(c *gin.Context) {
	u := currentUser(c)
	o, err := h.deps.Orders.Get(c.Request.Context(), u.ID, c.Param("id"), u.Role == domain.RoleAdmin)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h handlers) cancelOrder(c *gin.Context) {
	u := currentUser(c)
	o, err := h.deps.Orders.Cancel(c.Request.Context(), u.ID, c.Param("id"), u.Role == domain.RoleAdmin)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h handlers) listVendorOrders(c *gin.Context) {
	v, ok := h.vendorForUser(c)
	if !ok {
		return
	}
	orders, err := h.deps.Orders.ListForVendor(c.Request.Context(), v.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

func (h handlers) listAllOrders(c *gin.Context) {
	orders, err := h.deps.Orders.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

type advanceOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h handlers) advanceOrder(c *gin.Context) {
	var req advanceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status required")
		return
	}
	o, err := h.deps.Orders.Advance(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
