package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"besties/api/middleware"
	"besties/logs"
	"besties/services"

	"github.com/gin-gonic/gin"
)

const serviceName = "besties"

// Handlers - обработчики /users поверх сервисов приложения
type Handlers struct {
	svc *services.Services
}

func NewHandlers(svc *services.Services) *Handlers {
	return &Handlers{svc: svc}
}

// respond отдает data вместе с полем statusCode
func respond(c *gin.Context, status int, data gin.H) {
	body := gin.H{"statusCode": status}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicate),
		errors.Is(err, services.ErrNotFriends),
		errors.Is(err, services.ErrBestieLimit):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logs.Log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.JSON(status, gin.H{"message": services.Message(err), "statusCode": status})
}

// observe пишет метрику операции, status - "ok" или вид ошибки
func observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "internal"
		var e *services.Error
		if errors.As(err, &e) {
			status = strings.ReplaceAll(e.Kind.Error(), " ", "_")
		}
	}
	middleware.RecordSocialOperation(operation, status, serviceName, time.Since(start))
}

func badRequest(c *gin.Context) {
	respond(c, http.StatusBadRequest, gin.H{"message": "Invalid request"})
}
