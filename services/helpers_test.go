package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"besties/auth"
	"besties/db"
	"besties/models"
	"besties/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []SocialEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event SocialEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) kinds() []EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]EventKind, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type testEnv struct {
	repo   store.UserRepository
	svc    *Services
	events *recordingPublisher
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	orm, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := orm.DB(); err == nil {
			sqlDB.Close()
		}
	})
	tokens, err := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	repo := store.NewGormRepository(orm)
	events := &recordingPublisher{}
	return &testEnv{repo: repo, svc: New(repo, tokens, events), events: events}
}

func (env *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	u := models.NewUser(uuid.NewString(), name, fmt.Sprintf("%s@example.com", uuid.NewString()), "hash")
	require.NoError(t, env.repo.Create(context.Background(), u))
	return u
}

func (env *testEnv) reload(t *testing.T, id string) *models.User {
	t.Helper()
	u, err := env.repo.Get(context.Background(), id)
	require.NoError(t, err)
	return u
}

// befriend делает пользователей друзьями в обход заявок
func (env *testEnv) befriend(t *testing.T, a, b *models.User) {
	t.Helper()
	a, b = env.reload(t, a.ID), env.reload(t, b.ID)
	a.AddFriend(b.ID)
	b.AddFriend(a.ID)
	require.NoError(t, env.repo.SavePair(context.Background(), a, b))
}
