package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type startChatRequest struct {
	VendorID string `json:"vendorId" binding:"required"`
}

func (h handlers) startChat(c *gin.Context) {
	u := currentUser(c)
	var req startChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "vendorId required")
		return
	}
	chat, err := h.deps.Chats.Start(c.Request.Context(), u.ID, req.VendorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

func (h handlers) listMyChats(c *gin.Context) {
	u := currentUser(c)
	chats, err := h.deps.Chats.ListForCustomer(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats, "total": len(chats)})
}

func (h handlers) listVendorChats(c *gin.Context) {
	u := currentUser(c)
	chats, err := h.deps.Chats.ListForVendor(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats, "total": len(chats)})
}

func (h handlers) listChatMessages(c *gin.Context) {
	u := currentUser(c)
	messages, err := h.deps.Chats.Messages(c.Request.Context(), c.Param("id"), u.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "total": len(messages)})
}

type sendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h handlers) sendChatMessage(c *gin.Context) {
	u := currentUser(c)
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body required")
		return
	}
	msg, err := h.deps.Chats.Send(c.Request.Context(), c.Param("id"), u.ID, req.Body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
