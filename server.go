package main

import (
	"context"
	"flag"
	"fmt"

	"besties/api/routes"
	"besties/auth"
	"besties/config"
	"besties/logs"
	"besties/services"
	"besties/store"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	logs.Init(config.AppConfig.Logs.Level, config.AppConfig.Logs.Format)
	logs.Log.WithField("driver", config.AppConfig.Store.Driver).Info("Starting server...")

	ctx := context.Background()
	repo, cleanup, err := store.Open(ctx, config.AppConfig)
	defer cleanup()
	if err != nil {
		panic("Failed to open the user store: " + err.Error())
	}

	var events services.EventPublisher = services.NoopPublisher{}
	if config.AppConfig.RabbitMQ.URL != "" {
		publisher, err := services.NewAMQPPublisher(config.AppConfig.RabbitMQ.URL, config.AppConfig.RabbitMQ.Exchange)
		if err != nil {
			logs.Log.WithError(err).Warn("social events disabled")
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	tokens, err := auth.NewJWTManager(config.AppConfig.Auth.JWTSecret, config.AppConfig.Auth.TokenTTL)
	if err != nil {
		panic(err)
	}

	if config.AppConfig.Logs.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.NewRouter(config.AppConfig, services.New(repo, tokens, events), tokens)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	logs.Log.WithField("addr", addr).Info("listening")
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
