package routes

import (
	"time"

	"besties/api/handlers"
	"besties/api/middleware"
	"besties/auth"
	"besties/config"
	"besties/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter собирает gin с middleware, /users и /metrics
func NewRouter(conf *config.ConfigSchema, svc *services.Services, tokens *auth.JWTManager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.PrometheusMiddleware("besties"))

	h := handlers.NewHandlers(svc)
	UsersApi(router, h, tokens)
	if conf.Admin.Enabled {
		AdminApi(router, h, tokens)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}
