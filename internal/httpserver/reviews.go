package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h handlers) listReviews(c *gin.Context) {
	reviews, err := h.deps.Reviews.ListByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": len(reviews)})
}

func (h handlers) productRating(c *gin.Context) {
	summary, err := h.deps.Reviews.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (h handlers) createReview(c *gin.Context) {
	u := currentUser(c)
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "rating required")
		return
	}
	review, err := h.deps.Reviews.Create(c.Request.Context(), u.ID, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
