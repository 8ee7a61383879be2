package services

import (
	"context"

	"besties/logs"
	"besties/models"
	"besties/store"
)

type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// SocialGraphService - заявки в друзья, дружба, besties и enemies
type SocialGraphService struct {
	repo   store.UserRepository
	alerts *NotificationComposer
	events EventPublisher
}

func NewSocialGraphService(repo store.UserRepository, alerts *NotificationComposer, events EventPublisher) *SocialGraphService {
	return &SocialGraphService{repo: repo, alerts: alerts, events: events}
}

// SendFriendRequest добавляет fromID во входящие заявки toID
func (s *SocialGraphService) SendFriendRequest(ctx context.Context, fromID, toID string) error {
	if fromID == "" || toID == "" {
		return fail(ErrValidation, "Both users are required.")
	}
	if fromID == toID {
		return fail(ErrValidation, "Cannot add yourself as friend.")
	}

	to, err := s.repo.Get(ctx, toID)
	if err != nil {
		return lookupError(err, "User")
	}
	if to.IsFriend(fromID) {
		return fail(ErrDuplicate, "You are already friends with this user.")
	}
	if !to.AddFriendRequest(fromID) {
		return fail(ErrDuplicate, "Friend request is already sent.")
	}
	if err := s.repo.Save(ctx, to); err != nil {
		return persistenceError(err)
	}

	publish(ctx, s.events, EventFriendRequestSent, toID, fromID, "")
	return nil
}

// ResolveFriendRequest убирает заявку fromID у toID и при accept делает их друзьями.
// Обе стороны сохраняются одной операцией SavePair, после нее fromID получает
// уведомление new_friend от toID.
func (s *SocialGraphService) ResolveFriendRequest(ctx context.Context, fromID, toID string, decision Decision) error {
	if fromID == "" || toID == "" {
		return fail(ErrValidation, "Both users are required.")
	}

	to, err := s.repo.Get(ctx, toID)
	if err != nil {
		return lookupError(err, "User")
	}
	if !to.RemoveFriendRequest(fromID) {
		return fail(ErrNotFound, "Friend request not found.")
	}

	if decision != DecisionAccept {
		if err := s.repo.Save(ctx, to); err != nil {
			return persistenceError(err)
		}
		return nil
	}

	if !to.AddFriend(fromID) {
		return fail(ErrDuplicate, "Duplicate Error.")
	}
	from, err := s.repo.Get(ctx, fromID)
	if err != nil {
		return lookupError(err, "User")
	}
	if !from.AddFriend(toID) {
		return fail(ErrDuplicate, "Duplicate Error.")
	}

	alert, err := BuildAlert(to.Card(), models.AlertNewFriend, "")
	if err != nil {
		return err
	}
	if err := s.repo.SavePair(ctx, to, from); err != nil {
		logs.Log.WithError(err).WithField("from", fromID).WithField("to", toID).Error("failed to save friendship")
		return persistenceError(err)
	}
	if err := s.alerts.Deliver(ctx, fromID, alert); err != nil {
		return err
	}

	publish(ctx, s.events, EventFriendRequestAccepted, fromID, toID, "")
	return nil
}

// ToggleBestieOrEnemy переключает targetID в списке besties или enemies.
// Возвращает true, если targetID добавлен.
func (s *SocialGraphService) ToggleBestieOrEnemy(ctx context.Context, userID, targetID string, circle models.Circle) (bool, error) {
	if !circle.Valid() {
		return false, fail(ErrValidation, "Incorrect query supplied.")
	}

	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return false, lookupError(err, "User")
	}
	if !user.IsFriend(targetID) {
		return false, fail(ErrNotFriends, "You are not friends with this user.")
	}

	added := false
	if user.InCircle(circle, targetID) {
		user.RemoveFromCircle(circle, targetID)
	} else {
		if circle == models.CircleBesties && user.CircleSize(models.CircleBesties) >= models.MaxBesties {
			return false, fail(ErrBestieLimit, "You have the max amount of besties.")
		}
		added = user.AddToCircle(circle, targetID)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return false, persistenceError(err)
	}
	return added, nil
}

// FriendRequests возвращает карточки пользователей из ids.
// При ids == nil берутся входящие заявки самого пользователя.
func (s *SocialGraphService) FriendRequests(ctx context.Context, userID string, ids []string) ([]models.UserCard, error) {
	if ids == nil {
		user, err := s.repo.Get(ctx, userID)
		if err != nil {
			return nil, lookupError(err, "User")
		}
		ids = user.FriendRequests
	}
	return cardsInOrder(ctx, s.repo, ids)
}
