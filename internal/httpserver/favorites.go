package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h handlers) listFavorites(c *gin.Context) {
	u := currentUser(c)
	favorites, err := h.deps.Favorites.List(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites, "total": len(favorites)})
}

func (h handlers) toggleFavorite(c *gin.Context) {
	u := currentUser(c)
	fav, err := h.deps.Favorites.Toggle(c.Request.Context(), u.ID, c.Param("productID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if fav == nil {
		c.JSON(http.StatusOK, gin.H{"favorited": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": true, "favorite": fav})
}

func (h handlers) moveFavoriteToCart(c *gin.Context) {
	u := currentUser(c)
	line, err := h.deps.Favorites.MoveToCart(c.Request.Context(), u.ID, c.Param("productID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, line)
}
