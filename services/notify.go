package services

import (
	"context"
	"fmt"
	"time"

	"besties/logs"
	"besties/models"
	"besties/store"
)

const snippetLength = 28

// NotificationComposer пишет уведомления в журнал пользователя
type NotificationComposer struct {
	repo store.UserRepository
}

func NewNotificationComposer(repo store.UserRepository) *NotificationComposer {
	return &NotificationComposer{repo: repo}
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) > snippetLength {
		return string(runes[:snippetLength]) + "..."
	}
	return text
}

// BuildAlert собирает текст уведомления. Ничего не пишет, поэтому неизвестный
// тип прерывает операцию до любых изменений.
func BuildAlert(from models.UserCard, kind models.AlertType, contextText string) (models.Alert, error) {
	alert := models.Alert{
		Type:     kind,
		FromID:   from.ID,
		FromName: from.Name,
		Date:     time.Now().UTC(),
	}
	switch kind {
	case models.AlertNewFriend:
		alert.Text = fmt.Sprintf("%s has accepted your friend request.", from.Name)
	case models.AlertLikedPost:
		alert.Text = fmt.Sprintf("%s has liked your post, '%s'.", from.Name, snippet(contextText))
	case models.AlertCommentedPost:
		alert.Text = fmt.Sprintf("%s has commented on your post, '%s'.", from.Name, snippet(contextText))
	default:
		return models.Alert{}, fail(ErrUnknownAlertType, "No valid type for alert: %q.", kind)
	}
	return alert, nil
}

// ComposeAlert строит уведомление и кладет его в журнал toID
func (n *NotificationComposer) ComposeAlert(ctx context.Context, from models.UserCard, toID string, kind models.AlertType, contextText string) error {
	alert, err := BuildAlert(from, kind, contextText)
	if err != nil {
		return err
	}
	return n.Deliver(ctx, toID, alert)
}

// Deliver увеличивает new_notifications и добавляет уведомление в начало журнала
func (n *NotificationComposer) Deliver(ctx context.Context, toID string, alert models.Alert) error {
	to, err := n.repo.Get(ctx, toID)
	if err != nil {
		return lookupError(err, "User")
	}
	to.PushAlert(alert)
	if err := n.repo.Save(ctx, to); err != nil {
		logs.Log.WithError(err).WithField("user_id", toID).Error("failed to save alert")
		return persistenceError(err)
	}
	return nil
}
