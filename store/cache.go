package store

import (
	"context"
	"time"

	"besties/logs"
	"besties/models"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
)

const cardKeyPrefix = "user_card:"

// CachedRepository кеширует карточки пользователей (имя + аватар) в Redis.
// Остальные методы проходят в обернутое хранилище. Ошибки Redis не ломают
// запрос: карточки читаются из хранилища.
type CachedRepository struct {
	UserRepository
	client *redis.Client
	ttl    time.Duration
}

func NewCachedRepository(inner UserRepository, client *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{UserRepository: inner, client: client, ttl: ttl}
}

func cardKey(id string) string {
	return cardKeyPrefix + id
}

func (r *CachedRepository) Cards(ctx context.Context, ids []string) ([]models.UserCard, error) {
	if len(ids) == 0 {
		return []models.UserCard{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cardKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		logs.Log.WithError(err).Warn("card cache unavailable, reading from store")
		return r.UserRepository.Cards(ctx, ids)
	}

	cards := make([]models.UserCard, 0, len(ids))
	var missing []string
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var card models.UserCard
		if err := json.Unmarshal([]byte(raw), &card); err != nil {
			missing = append(missing, ids[i])
			continue
		}
		cards = append(cards, card)
	}
	if len(missing) == 0 {
		return cards, nil
	}

	loaded, err := r.UserRepository.Cards(ctx, missing)
	if err != nil {
		return nil, err
	}
	r.remember(ctx, loaded)
	return append(cards, loaded...), nil
}

func (r *CachedRepository) remember(ctx context.Context, cards []models.UserCard) {
	if len(cards) == 0 {
		return
	}
	pipe := r.client.Pipeline()
	for _, card := range cards {
		data, err := json.Marshal(card)
		if err != nil {
			continue
		}
		pipe.Set(ctx, cardKey(card.ID), data, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logs.Log.WithError(err).Warn("failed to cache user cards")
	}
}

func (r *CachedRepository) forget(ctx context.Context, ids ...string) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cardKey(id)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		logs.Log.WithError(err).Warn("failed to invalidate user cards")
	}
}

func (r *CachedRepository) Save(ctx context.Context, u *models.User) error {
	if err := r.UserRepository.Save(ctx, u); err != nil {
		return err
	}
	r.forget(ctx, u.ID)
	return nil
}

func (r *CachedRepository) SavePair(ctx context.Context, a, b *models.User) error {
	if err := r.UserRepository.SavePair(ctx, a, b); err != nil {
		return err
	}
	r.forget(ctx, a.ID, b.ID)
	return nil
}

func (r *CachedRepository) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := r.UserRepository.DeleteAll(ctx)
	if err != nil {
		return deleted, err
	}

	var keys []string
	iter := r.client.Scan(ctx, 0, cardKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logs.Log.WithError(err).Warn("failed to scan user cards")
		return deleted, nil
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			logs.Log.WithError(err).Warn("failed to drop user cards")
		}
	}
	return deleted, nil
}
