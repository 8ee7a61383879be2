package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserHasEmptyCollections(t *testing.T) {
	u := NewUser("u1", "Ann Lee", "ann@example.com", "hash")

	assert.NotNil(t, u.Posts)
	assert.NotNil(t, u.Friends)
	assert.NotNil(t, u.FriendRequests)
	assert.NotNil(t, u.Besties)
	assert.NotNil(t, u.Enemies)
	assert.NotNil(t, u.Messages)
	assert.NotNil(t, u.Notifications)
	assert.NotNil(t, u.NewMessageNotifications)
}

func TestAddFriendRequestRejectsDuplicate(t *testing.T) {
	u := NewUser("u1", "Ann", "ann@example.com", "")

	require.True(t, u.AddFriendRequest("u2"))
	assert.False(t, u.AddFriendRequest("u2"))
	assert.Equal(t, []string{"u2"}, []string(u.FriendRequests))

	// проверка дубликатов не должна переставлять сохраненные заявки
	require.True(t, u.AddFriendRequest("a0"))
	assert.Equal(t, []string{"u2", "a0"}, []string(u.FriendRequests))
}

func TestRemoveFriendRequest(t *testing.T) {
	u := NewUser("u1", "Ann", "ann@example.com", "")
	u.AddFriendRequest("u2")
	u.AddFriendRequest("u3")

	assert.False(t, u.RemoveFriendRequest("u4"))
	assert.True(t, u.RemoveFriendRequest("u2"))
	assert.Equal(t, []string{"u3"}, []string(u.FriendRequests))
}

func TestCircles(t *testing.T) {
	u := NewUser("u1", "Ann", "ann@example.com", "")
	u.AddFriend("u2")
	u.AddFriend("u3")
	u.AddFriend("u4")

	assert.True(t, u.AddToCircle(CircleBesties, "u2"))
	assert.False(t, u.AddToCircle(CircleBesties, "u2"))
	assert.True(t, u.InCircle(CircleBesties, "u2"))
	assert.Equal(t, 1, u.CircleSize(CircleBesties))
	assert.Equal(t, []string{"u3", "u4"}, u.PlainFriends())

	before := []string(u.Besties)
	assert.True(t, u.RemoveFromCircle(CircleBesties, "u2"))
	assert.Equal(t, 0, u.CircleSize(CircleBesties))
	assert.Equal(t, []string{"u2"}, before)

	assert.True(t, u.AddToCircle(CircleEnemies, "u3"))
	assert.True(t, u.InCircle(CircleEnemies, "u3"))
	assert.False(t, u.InCircle(CircleBesties, "u3"))

	assert.True(t, CircleBesties.Valid())
	assert.False(t, Circle("frenemies").Valid())
}

func TestPushAlertKeepsNewestFirst(t *testing.T) {
	u := NewUser("u1", "Ann", "ann@example.com", "")
	for i := 0; i < 25; i++ {
		u.PushAlert(Alert{Type: AlertLikedPost, Text: fmt.Sprintf("alert %d", i)})
	}

	require.Len(t, u.Notifications, MaxNotifications)
	assert.Equal(t, "alert 24", u.Notifications[0].Text)
	assert.Equal(t, "alert 7", u.Notifications[MaxNotifications-1].Text)
	assert.Equal(t, 25, u.NewNotifications)

	u.ResetAlertNotifications()
	assert.Equal(t, 0, u.NewNotifications)
	assert.Len(t, u.Notifications, MaxNotifications)
}

func TestToggleLike(t *testing.T) {
	p := Post{ID: "p1"}
	p.normalize()

	assert.True(t, p.ToggleLike("u2"))
	assert.Equal(t, []string{"u2"}, p.Likes)
	assert.False(t, p.ToggleLike("u2"))
	assert.Empty(t, p.Likes)
}

func TestFindPostReturnsPointerIntoAggregate(t *testing.T) {
	u := NewUser("u1", "Ann", "ann@example.com", "")
	u.AddPost(Post{ID: "p1", Content: "hello"})

	post := u.FindPost("p1")
	require.NotNil(t, post)
	post.AddComment(Comment{ID: "c1", CommenterID: "u2", Content: "hi"})
	assert.Len(t, u.Posts[0].Comments, 1)

	assert.Nil(t, u.FindPost("missing"))
}

func TestPostsOfAnnotatesOwner(t *testing.T) {
	u := NewUser("u1", "Ann", "ann@example.com", "")
	u.ProfileImage = "ann.png"
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	u.AddPost(Post{ID: "p1", Theme: "info", Content: "hello", Date: date,
		Comments: []Comment{{ID: "c1", CommenterID: "u2", Content: "hi"}}})

	posts := PostsOf(u, u.Posts, func(time.Time) string { return "just now" })
	require.Len(t, posts, 1)
	assert.Equal(t, "u1", posts[0].OwnerID)
	assert.Equal(t, "Ann", posts[0].Name)
	assert.Equal(t, "ann.png", posts[0].OwnerProfileImage)
	assert.Equal(t, "just now", posts[0].Ago)
	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, "u2", posts[0].Comments[0].CommenterID)
	assert.Empty(t, posts[0].Comments[0].CommenterName)
}

func TestMessages(t *testing.T) {
	u := NewUser("u1", "Ann", "ann@example.com", "")
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}

	assert.True(t, u.AppendMessage("u2", "hi", newID))
	assert.False(t, u.AppendMessage("u2", "how are you?", newID))
	assert.True(t, u.AppendMessage("u3", "yo", newID))
	require.Len(t, u.Messages, 2)
	assert.Equal(t, []string{"hi", "how are you?"}, u.ThreadWith("u2").Content)

	u.MarkUnreadFrom("u2")
	u.MarkUnreadFrom("u2")
	assert.Equal(t, []string{"u2"}, []string(u.NewMessageNotifications))
	assert.Equal(t, 1, u.Counters().UnreadDialogs)

	assert.False(t, u.RemoveThread("nope"))
	assert.True(t, u.RemoveThread("t1"))
	assert.Nil(t, u.ThreadWith("u2"))

	u.ResetMessageNotifications()
	assert.Empty(t, u.NewMessageNotifications)
}
