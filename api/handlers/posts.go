package handlers

import (
	"net/http"
	"time"

	"besties/api/middleware"
	"besties/models"

	"github.com/gin-gonic/gin"
)

type CreatePostRequest struct {
	Theme   string `json:"theme"`
	Content string `json:"content"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

func (h *Handlers) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	start := time.Now()
	post, err := h.svc.Posts.CreatePost(c.Request.Context(), middleware.CurrentUserID(c), req.Theme, req.Content)
	observe("create_post", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Created post", "newPost": post})
}

func (h *Handlers) LikeUnlike(c *gin.Context) {
	start := time.Now()
	liked, err := h.svc.Posts.LikeUnlike(c.Request.Context(),
		middleware.CurrentUserID(c), c.Param("ownerid"), c.Param("postid"))
	observe("like_unlike", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Like or Unlike a post...", "liked": liked})
}

func (h *Handlers) CommentOnPost(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	start := time.Now()
	comment, err := h.svc.Posts.CommentOnPost(c.Request.Context(),
		middleware.CurrentUserID(c), c.Param("ownerid"), c.Param("postid"), req.Content)
	observe("comment_on_post", start, err)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{
		"message": "Posted Comment",
		"comment": comment.Comment,
		"commenter": models.UserCard{
			ID:           comment.CommenterID,
			Name:         comment.CommenterName,
			ProfileImage: comment.CommenterProfileImage,
		},
	})
}
