package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput() RegisterInput {
	password := gofakeit.Password(true, true, true, false, false, 12)
	return RegisterInput{
		FirstName:       gofakeit.FirstName(),
		LastName:        gofakeit.LastName(),
		Email:           gofakeit.Email(),
		Password:        password,
		ConfirmPassword: password,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	in := registerInput()
	in.FirstName, in.LastName = "  Ann ", " Lee "

	session, err := env.svc.Users.Register(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "Ann Lee", session.Name)

	user := env.reload(t, session.UserID)
	assert.Equal(t, "Ann Lee", user.Name)
	assert.NotEqual(t, in.Password, user.PasswordHash)

	_, err = env.svc.Users.Register(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "The provided email is already registered.", Message(err))

	logged, err := env.svc.Users.Login(ctx, in.Email, in.Password)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, logged.UserID)

	_, err = env.svc.Users.Login(ctx, in.Email, "wrong password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = env.svc.Users.Login(ctx, "nobody@example.com", in.Password)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = env.svc.Users.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterValidation(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	in := registerInput()
	in.ConfirmPassword = in.Password + "x"
	_, err := env.svc.Users.Register(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)

	in = registerInput()
	in.LastName = " "
	_, err = env.svc.Users.Register(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)

	all, err := env.svc.Users.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSearch(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	me := env.createUser(t, "Zed Self")
	for i := 0; i < MaxSearchResults+5; i++ {
		env.createUser(t, fmt.Sprintf("Zed %02d", i))
	}
	env.createUser(t, "Bob")

	_, err := env.svc.Users.Search(ctx, me.ID, "  ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Missing a query.", Message(err))

	results, err := env.svc.Users.Search(ctx, me.ID, "zed")
	require.NoError(t, err)
	assert.Len(t, results, MaxSearchResults)
	for _, r := range results {
		assert.NotEqual(t, me.ID, r.ID)
	}

	results, err = env.svc.Users.Search(ctx, me.ID, "self")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCountersAndDeleteAll(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	ann := env.createUser(t, "Ann")
	bob := env.createUser(t, "Bob")
	require.NoError(t, env.svc.Graph.SendFriendRequest(ctx, bob.ID, ann.ID))
	require.NoError(t, env.svc.Messages.SendMessage(ctx, bob.ID, ann.ID, "hi"))

	counters, err := env.svc.Users.Counters(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counters.FriendRequests)
	assert.Equal(t, 1, counters.UnreadDialogs)
	assert.Equal(t, 0, counters.NewNotifications)

	deleted, err := env.svc.Users.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
