package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, u, err := h.users.Register(c.Request.Context(), req.Phone, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie("access_token", token, 24*3600, "/", "", false, true)
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, u, err := h.users.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie("access_token", token, 24*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

func (h *Handler) requestReset(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.users.RequestReset(c.Request.Context(), req.Phone); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"phone": req.Phone})
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req struct {
		Phone       string `json:"phone"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), req.Phone, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"phone": req.Phone})
}
