package handlers

import (
	"net/http"
	"time"

	"besties/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	start := time.Now()
	session, err := h.svc.Users.Register(c.Request.Context(), services.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.PasswordConfirm,
	})
	observe("register", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"token": session.Token, "_id": session.UserID, "name": session.Name})
}

func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	start := time.Now()
	session, err := h.svc.Users.Login(c.Request.Context(), req.Email, req.Password)
	observe("login", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"token": session.Token, "_id": session.UserID, "name": session.Name})
}
