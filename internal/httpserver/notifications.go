package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h handlers) listNotifications(c *gin.Context) {
	u := currentUser(c)
	notifications, err := h.deps.Notifications.List(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "total": len(notifications)})
}

func (h handlers) markNotificationRead(c *gin.Context) {
	u := currentUser(c)
	if err := h.deps.Notifications.MarkRead(c.Request.Context(), u.ID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
