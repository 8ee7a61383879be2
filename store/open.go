package store

import (
	"context"
	"fmt"

	"besties/config"
	"besties/db"
	"besties/logs"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis создает клиент и проверяет соединение
func ConnectRedis(ctx context.Context, conf *config.ConfigSchema) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Redis.Host, conf.Redis.Port),
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Open выбирает хранилище по store.driver и, если задан redis.host,
// оборачивает его кешем карточек. cleanup освобождает соединения.
func Open(ctx context.Context, conf *config.ConfigSchema) (repo UserRepository, cleanup func(), err error) {
	var closers []func()
	cleanup = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch conf.Store.Driver {
	case "mongo":
		mongoRepo, err := ConnectMongo(ctx, conf.Mongo.URI, conf.Mongo.Database)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { _ = mongoRepo.Close(context.Background()) })
		repo = mongoRepo
	default:
		orm, err := db.ConnectDB(conf)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() {
			if sqlDB, err := orm.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		repo = NewGormRepository(orm)
	}
	logs.Log.WithField("driver", conf.Store.Driver).Info("user store ready")

	if conf.Redis.Host == "" {
		return repo, cleanup, nil
	}
	client, err := ConnectRedis(ctx, conf)
	if err != nil {
		logs.Log.WithError(err).Warn("card cache disabled")
		return repo, cleanup, nil
	}
	closers = append(closers, func() { _ = client.Close() })
	return NewCachedRepository(repo, client, conf.Redis.CardTTL), cleanup, nil
}
