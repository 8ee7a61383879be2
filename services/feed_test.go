package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"besties/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// addPosts сохраняет посты с датами baseDate + offsets[i] часов
func (env *testEnv) addPosts(t *testing.T, u *models.User, offsets ...int) {
	t.Helper()
	u = env.reload(t, u.ID)
	for _, h := range offsets {
		u.AddPost(models.Post{
			ID:      fmt.Sprintf("%s-%d", u.Name, h),
			Theme:   "info",
			Content: fmt.Sprintf("%s at %d", u.Name, h),
			Date:    baseDate.Add(time.Duration(h) * time.Hour),
		})
	}
	require.NoError(t, env.repo.Save(context.Background(), u))
}

func TestGenerateFeed(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	ann := env.createUser(t, "Ann")
	bob := env.createUser(t, "Bob")
	cid := env.createUser(t, "Cid")
	dan := env.createUser(t, "Dan")
	stranger := env.createUser(t, "Eve")
	for _, f := range []*models.User{bob, cid, dan} {
		env.befriend(t, ann, f)
	}
	_, err := env.svc.Graph.ToggleBestieOrEnemy(ctx, ann.ID, bob.ID, models.CircleBesties)
	require.NoError(t, err)
	_, err = env.svc.Graph.ToggleBestieOrEnemy(ctx, ann.ID, cid.ID, models.CircleBesties)
	require.NoError(t, err)

	env.addPosts(t, ann, 1, 50)
	env.addPosts(t, bob, 10, 30, 20)
	env.addPosts(t, cid, 5, 40, 25)
	env.addPosts(t, stranger, 100)
	offsets := make([]int, 0, 60)
	for h := 0; h < 60; h++ {
		offsets = append(offsets, h)
	}
	env.addPosts(t, dan, offsets...)

	feed, err := env.svc.Feed.GenerateFeed(ctx, ann.ID)
	require.NoError(t, err)

	// свои посты идут первыми в порядке хранения и не учитываются в лимите
	require.Len(t, feed.Posts, 2+MaxFriendPosts)
	assert.Equal(t, "Ann-1", feed.Posts[0].ID)
	assert.Equal(t, "Ann-50", feed.Posts[1].ID)
	assert.Equal(t, ann.ID, feed.Posts[0].OwnerID)
	assert.NotEmpty(t, feed.Posts[0].Ago)

	friendPosts := feed.Posts[2:]
	assert.Equal(t, "Dan-59", friendPosts[0].ID)
	assert.Equal(t, "Dan-12", friendPosts[len(friendPosts)-1].ID)
	for i := 1; i < len(friendPosts); i++ {
		assert.False(t, friendPosts[i].Date.After(friendPosts[i-1].Date))
		assert.Equal(t, dan.ID, friendPosts[i].OwnerID)
	}

	require.Len(t, feed.BestiePosts, MaxBestiePosts)
	ids := make([]string, 0, len(feed.BestiePosts))
	for _, p := range feed.BestiePosts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"Cid-40", "Bob-30", "Cid-25", "Bob-20"}, ids)
	assert.Equal(t, "Cid", feed.BestiePosts[0].Name)
}

func TestGenerateFeedResolvesCommenters(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	ann := env.createUser(t, "Ann")
	bob := env.createUser(t, "Bob")
	env.befriend(t, ann, bob)

	post, err := env.svc.Posts.CreatePost(ctx, bob.ID, "info", "hello")
	require.NoError(t, err)
	_, err = env.svc.Posts.CommentOnPost(ctx, ann.ID, bob.ID, post.ID, "nice")
	require.NoError(t, err)

	feed, err := env.svc.Feed.GenerateFeed(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	require.Len(t, feed.Posts[0].Comments, 1)
	assert.Equal(t, "Ann", feed.Posts[0].Comments[0].CommenterName)
	assert.Equal(t, "nice", feed.Posts[0].Comments[0].Content)
	assert.Empty(t, feed.BestiePosts)
}

func TestGenerateFeedUnknownUser(t *testing.T) {
	env := setupServices(t)
	_, err := env.svc.Feed.GenerateFeed(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSortByDateDescIsStable(t *testing.T) {
	posts := []models.FeedPost{
		{ID: "a", Date: baseDate},
		{ID: "b", Date: baseDate.Add(time.Hour)},
		{ID: "c", Date: baseDate},
		{ID: "d", Date: baseDate.Add(time.Hour)},
	}
	sortByDateDesc(posts)

	ids := []string{posts[0].ID, posts[1].ID, posts[2].ID, posts[3].ID}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
}
