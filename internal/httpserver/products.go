package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"handmade-market/internal/domain"
	"handmade-market/internal/service/product"
)

func (h handlers) listProducts(c *gin.Context) {
	products, err := h.deps.Products.ListApproved(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": products, "total": len(products)})
}

func (h handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Products.GetApproved(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// vendorForUser resolves the caller's approved shop. Vendor routes are only
// meaningful once the application was approved.
func (h handlers) vendorForUser(c *gin.Context) (*domain.Vendor, bool) {
	u := currentUser(c)
	v, err := h.deps.Vendors.GetByUser(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	if v.Status != domain.VendorApproved {
		c.JSON(http.StatusForbidden, gin.H{"error": "shop is not approved"})
		return nil, false
	}
	return v, true
}

func (h handlers) listVendorProducts(c *gin.Context) {
	v, ok := h.vendorForUser(c)
	if !ok {
		return
	}
	products, err := h.deps.Products.ListByVendor(c.Request.Context(), v.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": products, "total": len(products)})
}

func (h handlers) createProduct(c *gin.Context) {
	v, ok := h.vendorForUser(c)
	if !ok {
		return
	}
	var req product.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := h.deps.Products.Create(c.Request.Context(), v.ID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h handlers) updateProduct(c *gin.Context) {
	v, ok := h.vendorForUser(c)
	if !ok {
		return
	}
	var req product.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := h.deps.Products.Update(c.Request.Context(), v.ID, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h handlers) deleteProduct(c *gin.Context) {
	v, ok := h.vendorForUser(c)
	if !ok {
		return
	}
	if err := h.deps.Products.Delete(c.Request.Context(), v.ID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h handlers) listPendingProducts(c *gin.Context) {
	products, err := h.deps.Products.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": products, "total": len(products)})
}

func (h handlers) approveProduct(c *gin.Context) {
	h.decideProduct(c, true)
}

func (h handlers) rejectProduct(c *gin.Context) {
	h.decideProduct(c, false)
}

func (h handlers) decideProduct(c *gin.Context, approve bool) {
	p, err := h.deps.Products.Decide(c.Request.Context(), c.Param("id"), approve)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
