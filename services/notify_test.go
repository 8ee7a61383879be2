package services

import (
	"context"
	"strings"
	"testing"

	"besties/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short"))
	assert.Equal(t, strings.Repeat("a", 28), snippet(strings.Repeat("a", 28)))
	assert.Equal(t, strings.Repeat("a", 28)+"...", snippet(strings.Repeat("a", 29)))
	assert.Equal(t, strings.Repeat("я", 28)+"...", snippet(strings.Repeat("я", 40)))
}

func TestBuildAlertTexts(t *testing.T) {
	from := models.UserCard{ID: "u1", Name: "Ann"}

	a, err := BuildAlert(from, models.AlertLikedPost, "The quick brown fox jumps over the lazy dog")
	require.NoError(t, err)
	assert.Equal(t, "Ann has liked your post, 'The quick brown fox jumps ov...'.", a.Text)

	a, err = BuildAlert(from, models.AlertCommentedPost, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Ann has commented on your post, 'hello'.", a.Text)
	assert.Equal(t, "u1", a.FromID)
	assert.Equal(t, "Ann", a.FromName)
}

func TestComposeAlertUnknownTypeWritesNothing(t *testing.T) {
	env := setupServices(t)
	ann := env.createUser(t, "Ann")
	bob := env.createUser(t, "Bob")

	err := env.svc.Alerts.ComposeAlert(context.Background(), ann.Card(), bob.ID, models.AlertType("poked"), "")
	assert.ErrorIs(t, err, ErrUnknownAlertType)

	got := env.reload(t, bob.ID)
	assert.Empty(t, got.Notifications)
	assert.Equal(t, 0, got.NewNotifications)
}

func TestComposeAlertCapsLog(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	ann := env.createUser(t, "Ann")
	bob := env.createUser(t, "Bob")

	for i := 0; i < models.MaxNotifications+3; i++ {
		require.NoError(t, env.svc.Alerts.ComposeAlert(ctx, ann.Card(), bob.ID, models.AlertNewFriend, ""))
	}
	got := env.reload(t, bob.ID)
	assert.Len(t, got.Notifications, models.MaxNotifications)
	assert.Equal(t, models.MaxNotifications+3, got.NewNotifications)

	require.NoError(t, env.svc.Messages.ResetAlertNotifications(ctx, bob.ID))
	got = env.reload(t, bob.ID)
	assert.Equal(t, 0, got.NewNotifications)
	assert.Len(t, got.Notifications, models.MaxNotifications)
}
