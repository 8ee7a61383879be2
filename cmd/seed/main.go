// seed заполняет хранилище фейковыми пользователями для локальной разработки
package main

import (
	"context"
	"flag"
	"sync"

	"besties/auth"
	"besties/config"
	"besties/logs"
	"besties/models"
	"besties/services"
	"besties/store"

	"github.com/brianvoe/gofakeit/v7"
)

func main() {
	var (
		configPath string
		total      int
		workers    int
		password   string
	)
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.IntVar(&total, "users", 50, "Number of users to create")
	flag.IntVar(&workers, "workers", 5, "Concurrent registrations")
	flag.StringVar(&password, "password", "password123", "Password for every seeded user")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	logs.Init(config.AppConfig.Logs.Level, config.AppConfig.Logs.Format)

	ctx := context.Background()
	repo, cleanup, err := store.Open(ctx, config.AppConfig)
	defer cleanup()
	if err != nil {
		panic("Failed to open the user store: " + err.Error())
	}
	tokens, err := auth.NewJWTManager(config.AppConfig.Auth.JWTSecret, config.AppConfig.Auth.TokenTTL)
	if err != nil {
		panic(err)
	}
	svc := services.New(repo, tokens, services.NoopPublisher{})

	ids := register(ctx, svc, total, workers, password)
	logs.Log.WithField("users", len(ids)).Info("users registered")

	befriend(ctx, svc, ids)
	writePosts(ctx, svc, ids)
	logs.Log.Info("seed finished")
}

func register(ctx context.Context, svc *services.Services, total, workers int, password string) []string {
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids []string
	)
	sem := make(chan struct{}, workers)

	for i := 0; i < total; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			session, err := svc.Users.Register(ctx, services.RegisterInput{
				FirstName:       gofakeit.FirstName(),
				LastName:        gofakeit.LastName(),
				Email:           gofakeit.Email(),
				Password:        password,
				ConfirmPassword: password,
			})
			if err != nil {
				logs.Log.WithError(err).Warn("skipping user")
				return
			}
			mu.Lock()
			ids = append(ids, session.UserID)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return ids
}

// befriend связывает каждого пользователя с несколькими случайными и
// оставляет часть заявок неразобранными
func befriend(ctx context.Context, svc *services.Services, ids []string) {
	if len(ids) < 2 {
		return
	}
	for _, from := range ids {
		for n := gofakeit.Number(1, 4); n > 0; n-- {
			to := ids[gofakeit.Number(0, len(ids)-1)]
			if err := svc.Graph.SendFriendRequest(ctx, from, to); err != nil {
				continue
			}
			if gofakeit.Bool() {
				_ = svc.Graph.ResolveFriendRequest(ctx, from, to, services.DecisionAccept)
			}
		}
	}
	for _, id := range ids {
		for n := 0; n < models.MaxBesties; n++ {
			target := ids[gofakeit.Number(0, len(ids)-1)]
			_, _ = svc.Graph.ToggleBestieOrEnemy(ctx, id, target, models.CircleBesties)
		}
	}
}

func writePosts(ctx context.Context, svc *services.Services, ids []string) {
	for _, id := range ids {
		for n := gofakeit.Number(0, 5); n > 0; n-- {
			post, err := svc.Posts.CreatePost(ctx, id, gofakeit.RandomString([]string{"primary", "secondary", "success", "danger", "warning", "info"}), gofakeit.Phrase())
			if err != nil {
				logs.Log.WithError(err).Warn("failed to create post")
				continue
			}
			commenter := ids[gofakeit.Number(0, len(ids)-1)]
			_, _ = svc.Posts.CommentOnPost(ctx, commenter, id, post.ID, gofakeit.Phrase())
			_, _ = svc.Posts.LikeUnlike(ctx, commenter, id, post.ID)
		}
	}
}
