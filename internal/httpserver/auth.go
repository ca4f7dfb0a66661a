package httpserver

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"handmade-market/internal/service/auth"
)

type handlers struct {
	logger *log.Logger
	deps   Deps
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h handlers) signup(c *gin.Context) {
	var req auth.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	u, err := h.deps.Auth.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password required")
		return
	}
	u, access, refresh, err := h.deps.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         u,
		"accessToken":  access,
		"refreshToken": refresh,
		"expiresIn":    h.deps.Auth.AccessTTLSeconds(),
	})
}

func (h handlers) logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, _ := strings.CutPrefix(header, "Bearer ")
	if err := h.deps.Auth.Logout(c.Request.Context(), strings.TrimSpace(token)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}
