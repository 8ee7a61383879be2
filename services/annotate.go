package services

import (
	"context"
	"slices"
	"time"

	"besties/models"
	"besties/store"

	"github.com/dustin/go-humanize"
)

func ago(t time.Time) string {
	return humanize.Time(t)
}

// sortByDateDesc сортирует посты от новых к старым, равные даты сохраняют порядок
func sortByDateDesc(posts []models.FeedPost) {
	slices.SortStableFunc(posts, func(a, b models.FeedPost) int {
		return b.Date.Compare(a.Date)
	})
}

// cardsByID загружает карточки и раскладывает их по id
func cardsByID(ctx context.Context, repo store.UserRepository, ids []string) (map[string]models.UserCard, error) {
	cards, err := repo.Cards(ctx, ids)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	byID := make(map[string]models.UserCard, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	return byID, nil
}

// cardsInOrder возвращает карточки в порядке ids, пропуская удаленных пользователей
func cardsInOrder(ctx context.Context, repo store.UserRepository, ids []string) ([]models.UserCard, error) {
	byID, err := cardsByID(ctx, repo, unique(ids))
	if err != nil {
		return nil, err
	}
	out := make([]models.UserCard, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// resolveCommenters подставляет имя и аватар авторов комментариев.
// Порядок постов и комментариев не меняется.
func resolveCommenters(ctx context.Context, repo store.UserRepository, posts []models.FeedPost) error {
	var ids []string
	for _, p := range posts {
		for _, c := range p.Comments {
			ids = append(ids, c.CommenterID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	byID, err := cardsByID(ctx, repo, unique(ids))
	if err != nil {
		return err
	}
	for i := range posts {
		for j := range posts[i].Comments {
			c := &posts[i].Comments[j]
			if card, ok := byID[c.CommenterID]; ok {
				c.CommenterName = card.Name
				c.CommenterProfileImage = card.ProfileImage
			}
		}
	}
	return nil
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// userCard загружает карточку одного пользователя
func userCard(ctx context.Context, repo store.UserRepository, id string) (models.UserCard, error) {
	byID, err := cardsByID(ctx, repo, []string{id})
	if err != nil {
		return models.UserCard{}, err
	}
	card, ok := byID[id]
	if !ok {
		return models.UserCard{}, fail(ErrNotFound, "User does not exist.")
	}
	return card, nil
}
