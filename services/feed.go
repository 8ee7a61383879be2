package services

import (
	"context"

	"besties/models"
	"besties/store"

	"golang.org/x/sync/errgroup"
)

const (
	MaxBestiePosts = 4
	MaxFriendPosts = 48
)

// FeedAggregator собирает ленту: свои посты, посты друзей и отдельно посты besties
type FeedAggregator struct {
	repo store.UserRepository
}

func NewFeedAggregator(repo store.UserRepository) *FeedAggregator {
	return &FeedAggregator{repo: repo}
}

// GenerateFeed возвращает posts (свои посты целиком, затем до 48 постов друзей
// не из besties, от новых к старым) и bestiePosts (до 4 постов besties).
func (f *FeedAggregator) GenerateFeed(ctx context.Context, userID string) (*models.FeedResponse, error) {
	user, err := f.repo.Get(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User")
	}

	own := models.PostsOf(user, user.Posts, ago)
	var bestiePosts, friendPosts []models.FeedPost

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := f.postsFrom(gctx, user.Besties, MaxBestiePosts)
		bestiePosts = posts
		return err
	})
	g.Go(func() error {
		posts, err := f.postsFrom(gctx, user.PlainFriends(), MaxFriendPosts)
		friendPosts = posts
		return err
	})
	g.Go(func() error {
		return resolveCommenters(gctx, f.repo, own)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.FeedResponse{
		Posts:       append(own, friendPosts...),
		BestiePosts: bestiePosts,
	}, nil
}

// postsFrom собирает посты пользователей ids, сортирует и обрезает до limit
func (f *FeedAggregator) postsFrom(ctx context.Context, ids []string, limit int) ([]models.FeedPost, error) {
	posts := []models.FeedPost{}
	if len(ids) == 0 {
		return posts, nil
	}

	users, err := f.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	for _, u := range users {
		posts = append(posts, models.PostsOf(u, u.Posts, ago)...)
	}

	sortByDateDesc(posts)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	if err := resolveCommenters(ctx, f.repo, posts); err != nil {
		return nil, err
	}
	return posts, nil
}
