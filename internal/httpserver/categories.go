package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Categories.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "total": len(categories)})
}

type upsertCategoryRequest struct {
	Key  string `json:"key" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (h handlers) upsertCategory(c *gin.Context) {
	var req upsertCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "key and name required")
		return
	}
	cat, err := h.deps.Categories.Upsert(c.Request.Context(), req.Key, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}
