package services

import (
	"context"
	"strings"

	"besties/logs"
	"besties/models"
	"besties/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MessagingService - личные сообщения. У каждого участника своя копия диалога.
type MessagingService struct {
	repo   store.UserRepository
	events EventPublisher
}

func NewMessagingService(repo store.UserRepository, events EventPublisher) *MessagingService {
	return &MessagingService{repo: repo, events: events}
}

// SendMessage дописывает content в диалог получателя (с отметкой о непрочитанном)
// и в копию диалога отправителя. Обе записи сохраняются одной операцией SavePair.
func (ms *MessagingService) SendMessage(ctx context.Context, fromID, toID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fail(ErrValidation, "Message content is required.")
	}
	if fromID == toID {
		return fail(ErrValidation, "Cannot send a message to yourself.")
	}

	var from, to *models.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := ms.repo.Get(gctx, fromID)
		if err != nil {
			return lookupError(err, "User")
		}
		from = u
		return nil
	})
	g.Go(func() error {
		u, err := ms.repo.Get(gctx, toID)
		if err != nil {
			return lookupError(err, "User")
		}
		to = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	to.AppendMessage(fromID, content, uuid.NewString)
	to.MarkUnreadFrom(fromID)
	from.AppendMessage(toID, content, uuid.NewString)

	if err := ms.repo.SavePair(ctx, to, from); err != nil {
		logs.Log.WithError(err).WithField("from", fromID).WithField("to", toID).Error("failed to save message")
		return persistenceError(err)
	}

	publish(ctx, ms.events, EventMessageSent, toID, fromID, "")
	return nil
}

// DeleteMessage удаляет диалог только у userID, копия собеседника остается
func (ms *MessagingService) DeleteMessage(ctx context.Context, userID, threadID string) error {
	user, err := ms.repo.Get(ctx, userID)
	if err != nil {
		return lookupError(err, "User")
	}
	if !user.RemoveThread(threadID) {
		return fail(ErrNotFound, "Message does not exist.")
	}
	if err := ms.repo.Save(ctx, user); err != nil {
		return persistenceError(err)
	}
	return nil
}

func (ms *MessagingService) ResetMessageNotifications(ctx context.Context, userID string) error {
	return ms.update(ctx, userID, (*models.User).ResetMessageNotifications)
}

func (ms *MessagingService) ResetAlertNotifications(ctx context.Context, userID string) error {
	return ms.update(ctx, userID, (*models.User).ResetAlertNotifications)
}

func (ms *MessagingService) update(ctx context.Context, userID string, mutate func(*models.User)) error {
	user, err := ms.repo.Get(ctx, userID)
	if err != nil {
		return lookupError(err, "User")
	}
	mutate(user)
	if err := ms.repo.Save(ctx, user); err != nil {
		return persistenceError(err)
	}
	return nil
}
