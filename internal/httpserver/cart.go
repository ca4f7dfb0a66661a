package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h handlers) listCart(c *gin.Context) {
	u := currentUser(c)
	lines, err := h.deps.Cart.List(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines, "total": len(lines)})
}

func (h handlers) addToCart(c *gin.Context) {
	u := currentUser(c)
	line, err := h.deps.Cart.AddOrIncrement(c.Request.Context(), u.ID, c.Param("productID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (h handlers) decrementCartLine(c *gin.Context) {
	u := currentUser(c)
	line, err := h.deps.Cart.Decrement(c.Request.Context(), u.ID, c.Param("productID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (h handlers) removeCartLine(c *gin.Context) {
	u := currentUser(c)
	if err := h.deps.Cart.RemoveLine(c.Request.Context(), u.ID, c.Param("productID")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h handlers) clearCart(c *gin.Context) {
	u := currentUser(c)
	removed, err := h.deps.Cart.RemoveAllLines(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
