package store

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Недоступный Redis не должен ломать чтение и запись
func TestCachedRepositoryFallsBackWithoutRedis(t *testing.T) {
	inner := setupGormRepository(t)
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { client.Close() })
	repo := NewCachedRepository(inner, client, time.Minute)
	ctx := context.Background()

	a := createTestUser(t, repo, "Ann")
	b := createTestUser(t, repo, "Bob")

	cards, err := repo.Cards(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	a.Name = "Ann Lee"
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.SavePair(ctx, a, b))

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", got.Name)

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
