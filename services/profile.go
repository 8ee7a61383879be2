package services

import (
	"context"
	"math/rand/v2"

	"besties/models"
	"besties/store"

	"golang.org/x/sync/errgroup"
)

const RandomFriendsSample = 6

// ProfileAssembler собирает страницу пользователя
type ProfileAssembler struct {
	repo store.UserRepository
	intn func(n int) int
}

func NewProfileAssembler(repo store.UserRepository) *ProfileAssembler {
	return &ProfileAssembler{repo: repo, intn: rand.IntN}
}

// sampleIDs выбирает до n разных id частичным перемешиванием копии ids
func sampleIDs(ids []string, n int, intn func(int) int) []string {
	pool := append([]string(nil), ids...)
	if len(pool) <= n {
		return pool
	}
	for i := 0; i < n; i++ {
		j := i + intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// GetUserProfile загружает пользователя и параллельно подставляет случайных друзей,
// авторов комментариев, besties, enemies и собеседников. Диалоги и уведомления
// видит только сам владелец.
func (pa *ProfileAssembler) GetUserProfile(ctx context.Context, userID, viewerID string) (*models.Profile, error) {
	user, err := pa.repo.Get(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User")
	}

	posts := models.PostsOf(user, user.Posts, ago)
	sortByDateDesc(posts)

	profile := &models.Profile{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		ProfileImage:     user.ProfileImage,
		Posts:            posts,
		Friends:          user.Friends,
		FriendRequests:   user.FriendRequests,
		NewNotifications: user.NewNotifications,
		CreatedAt:        user.CreatedAt,
	}
	isOwner := viewerID == user.ID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cards, err := cardsInOrder(gctx, pa.repo, sampleIDs(user.Friends, RandomFriendsSample, pa.intn))
		profile.RandomFriends = cards
		return err
	})
	g.Go(func() error {
		return resolveCommenters(gctx, pa.repo, posts)
	})
	g.Go(func() error {
		cards, err := cardsInOrder(gctx, pa.repo, user.Besties)
		profile.Besties = cards
		return err
	})
	g.Go(func() error {
		cards, err := cardsInOrder(gctx, pa.repo, user.Enemies)
		profile.Enemies = cards
		return err
	})
	if isOwner {
		g.Go(func() error {
			threads, err := pa.threads(gctx, user.Messages)
			profile.Messages = threads
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if isOwner {
		profile.Notifications = user.Notifications
		profile.NewMessageNotifications = user.NewMessageNotifications
	}
	return profile, nil
}

func (pa *ProfileAssembler) threads(ctx context.Context, messages []models.MessageThread) ([]models.ThreadView, error) {
	views := make([]models.ThreadView, 0, len(messages))
	if len(messages) == 0 {
		return views, nil
	}
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.CounterpartID)
	}
	byID, err := cardsByID(ctx, pa.repo, unique(ids))
	if err != nil {
		return nil, err
	}
	for _, m := range messages {
		card := byID[m.CounterpartID]
		views = append(views, models.ThreadView{
			MessageThread:         m,
			MessengerName:         card.Name,
			MessengerProfileImage: card.ProfileImage,
		})
	}
	return views, nil
}
