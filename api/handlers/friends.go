package handlers

import (
	"net/http"
	"time"

	"besties/api/middleware"
	"besties/models"
	"besties/services"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// FriendRequest - POST /friend-request/:from/:to. Без resolution отправляет заявку,
// с resolution=accept|decline разбирает ее.
func (h *Handlers) FriendRequest(c *gin.Context) {
	if resolution, ok := c.GetQuery("resolution"); ok {
		h.resolveFriendRequest(c, services.Decision(resolution))
		return
	}

	from, to := c.Param("from"), c.Param("to")
	if from != middleware.CurrentUserID(c) {
		respond(c, http.StatusForbidden, gin.H{"message": "You can only send requests as yourself."})
		return
	}

	start := time.Now()
	err := h.svc.Graph.SendFriendRequest(c.Request.Context(), from, to)
	observe("send_friend_request", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Successfully sent a friend request."})
}

func (h *Handlers) resolveFriendRequest(c *gin.Context, decision services.Decision) {
	if decision != services.DecisionAccept && decision != services.DecisionDecline {
		respond(c, http.StatusBadRequest, gin.H{"message": "Incorrect query supplied."})
		return
	}
	from, to := c.Param("from"), c.Param("to")
	if to != middleware.CurrentUserID(c) {
		respond(c, http.StatusForbidden, gin.H{"message": "You can only resolve your own requests."})
		return
	}

	start := time.Now()
	err := h.svc.Graph.ResolveFriendRequest(c.Request.Context(), from, to, decision)
	observe("resolve_friend_request", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Resolved friend request"})
}

// GetFriendRequests - карточки пользователей из JSON-массива friend_requests
func (h *Handlers) GetFriendRequests(c *gin.Context) {
	var ids []string
	if raw, ok := c.GetQuery("friend_requests"); ok {
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			respond(c, http.StatusBadRequest, gin.H{"message": "friend_requests must be a JSON array of ids."})
			return
		}
		if ids == nil {
			ids = []string{}
		}
	}

	users, err := h.svc.Graph.FriendRequests(c.Request.Context(), middleware.CurrentUserID(c), ids)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Getting friend requests", "users": users})
}

func (h *Handlers) ToggleBestieOrEnemy(c *gin.Context) {
	start := time.Now()
	added, err := h.svc.Graph.ToggleBestieOrEnemy(c.Request.Context(),
		middleware.CurrentUserID(c), c.Param("userid"), models.Circle(c.Query("toggle")))
	observe("toggle_bestie_enemy", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Bestie/Enemy Toggle", "added": added})
}
