package services

import (
	"context"
	"strings"
	"time"

	"besties/models"
	"besties/store"

	"github.com/google/uuid"
)

// PostService - посты, лайки и комментарии. Лайк или комментарий чужого поста
// оставляет уведомление владельцу.
type PostService struct {
	repo   store.UserRepository
	alerts *NotificationComposer
	events EventPublisher
}

func NewPostService(repo store.UserRepository, alerts *NotificationComposer, events EventPublisher) *PostService {
	return &PostService{repo: repo, alerts: alerts, events: events}
}

// CreatePost добавляет пост в конец списка постов пользователя
func (ps *PostService) CreatePost(ctx context.Context, userID, theme, content string) (*models.FeedPost, error) {
	theme, content = strings.TrimSpace(theme), strings.TrimSpace(content)
	if theme == "" || content == "" {
		return nil, fail(ErrValidation, "Insufficient data sent with the request.")
	}

	user, err := ps.repo.Get(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User")
	}

	post := models.Post{
		ID:      uuid.NewString(),
		Theme:   theme,
		Content: content,
		Date:    time.Now().UTC(),
	}
	user.AddPost(post)
	if err := ps.repo.Save(ctx, user); err != nil {
		return nil, persistenceError(err)
	}

	created := models.PostsOf(user, user.Posts[len(user.Posts)-1:], ago)
	return &created[0], nil
}

// LikeUnlike ставит или снимает лайк likerID на посте. Возвращает true, если лайк поставлен.
func (ps *PostService) LikeUnlike(ctx context.Context, likerID, ownerID, postID string) (bool, error) {
	owner, err := ps.repo.Get(ctx, ownerID)
	if err != nil {
		return false, lookupError(err, "User")
	}
	post := owner.FindPost(postID)
	if post == nil {
		return false, fail(ErrNotFound, "Post does not exist.")
	}

	liked := post.ToggleLike(likerID)

	var alert *models.Alert
	if liked && likerID != ownerID {
		liker, err := userCard(ctx, ps.repo, likerID)
		if err != nil {
			return false, err
		}
		a, err := BuildAlert(liker, models.AlertLikedPost, post.Content)
		if err != nil {
			return false, err
		}
		alert = &a
	}

	if err := ps.repo.Save(ctx, owner); err != nil {
		return false, persistenceError(err)
	}
	if alert != nil {
		if err := ps.alerts.Deliver(ctx, ownerID, *alert); err != nil {
			return liked, err
		}
		publish(ctx, ps.events, EventPostLiked, ownerID, likerID, postID)
	}
	return liked, nil
}

// CommentOnPost добавляет комментарий и возвращает его вместе с карточкой автора
func (ps *PostService) CommentOnPost(ctx context.Context, commenterID, ownerID, postID, content string) (*models.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fail(ErrValidation, "Comment content is required.")
	}

	owner, err := ps.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	post := owner.FindPost(postID)
	if post == nil {
		return nil, fail(ErrNotFound, "Post does not exist.")
	}

	commenter := owner.Card()
	var alert *models.Alert
	if commenterID != ownerID {
		commenter, err = userCard(ctx, ps.repo, commenterID)
		if err != nil {
			return nil, err
		}
		a, err := BuildAlert(commenter, models.AlertCommentedPost, post.Content)
		if err != nil {
			return nil, err
		}
		alert = &a
	}

	comment := models.Comment{
		ID:          uuid.NewString(),
		CommenterID: commenterID,
		Content:     content,
		Date:        time.Now().UTC(),
	}
	post.AddComment(comment)
	if err := ps.repo.Save(ctx, owner); err != nil {
		return nil, persistenceError(err)
	}

	if alert != nil {
		if err := ps.alerts.Deliver(ctx, ownerID, *alert); err != nil {
			return nil, err
		}
		publish(ctx, ps.events, EventPostCommented, ownerID, commenterID, postID)
	}

	return &models.CommentView{
		Comment:               comment,
		CommenterName:         commenter.Name,
		CommenterProfileImage: commenter.ProfileImage,
	}, nil
}
