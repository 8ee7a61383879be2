package handlers

import (
	"net/http"
	"time"

	"besties/api/middleware"

	"github.com/gin-gonic/gin"
)

type SendMessageRequest struct {
	Content string `json:"content"`
}

func (h *Handlers) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	start := time.Now()
	err := h.svc.Messages.SendMessage(c.Request.Context(), middleware.CurrentUserID(c), c.Param("to"), req.Content)
	observe("send_message", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Sending Message"})
}

func (h *Handlers) DeleteMessage(c *gin.Context) {
	err := h.svc.Messages.DeleteMessage(c.Request.Context(), middleware.CurrentUserID(c), c.Param("messageid"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Deleted Message"})
}

func (h *Handlers) ResetMessageNotifications(c *gin.Context) {
	err := h.svc.Messages.ResetMessageNotifications(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Reset message notifications."})
}

func (h *Handlers) ResetAlertNotifications(c *gin.Context) {
	err := h.svc.Messages.ResetAlertNotifications(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Reset Alert Notifications."})
}
