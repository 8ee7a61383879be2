package handlers

import (
	"net/http"
	"time"

	"besties/api/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) GetUser(c *gin.Context) {
	start := time.Now()
	profile, err := h.svc.Profiles.GetUserProfile(c.Request.Context(), c.Param("userid"), middleware.CurrentUserID(c))
	observe("get_user_profile", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": profile})
}

func (h *Handlers) Search(c *gin.Context) {
	start := time.Now()
	results, err := h.svc.Users.Search(c.Request.Context(), middleware.CurrentUserID(c), c.Query("query"))
	observe("search", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Getting Search Results", "results": results})
}

func (h *Handlers) Feed(c *gin.Context) {
	start := time.Now()
	feed, err := h.svc.Feed.GenerateFeed(c.Request.Context(), middleware.CurrentUserID(c))
	observe("generate_feed", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"posts": feed.Posts, "bestiePosts": feed.BestiePosts})
}

// GetCounters - счетчики для опроса клиентом: уведомления, непрочитанные диалоги, заявки
func (h *Handlers) GetCounters(c *gin.Context) {
	counters, err := h.svc.Users.Counters(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"counters": counters})
}

func (h *Handlers) GetAllUsers(c *gin.Context) {
	users, err := h.svc.Users.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handlers) DeleteAllUsers(c *gin.Context) {
	deleted, err := h.svc.Users.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Deleted All Users", "deleted": deleted})
}
