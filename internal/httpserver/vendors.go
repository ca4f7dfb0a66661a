package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"handmade-market/internal/service/vendor"
)

func (h handlers) getVendor(c *gin.Context) {
	v, err := h.deps.Vendors.GetApproved(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h handlers) applyVendor(c *gin.Context) {
	u := currentUser(c)
	var req vendor.ApplyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	v, err := h.deps.Vendors.Apply(c.Request.Context(), u.ID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h handlers) myVendor(c *gin.Context) {
	u := currentUser(c)
	v, err := h.deps.Vendors.GetByUser(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h handlers) listVendors(c *gin.Context) {
	vendors, err := h.deps.Vendors.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors, "total": len(vendors)})
}

func (h handlers) listPendingVendors(c *gin.Context) {
	vendors, err := h.deps.Vendors.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors, "total": len(vendors)})
}

func (h handlers) approveVendor(c *gin.Context) {
	h.decideVendor(c, true)
}

func (h handlers) rejectVendor(c *gin.Context) {
	h.decideVendor(c, false)
}

func (h handlers) decideVendor(c *gin.Context, approve bool) {
	v, err := h.deps.Vendors.Decide(c.Request.Context(), c.Param("id"), approve)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
