package services

import (
	"errors"
	"fmt"

	"besties/store"
)

// Виды ошибок. Обработчики сопоставляют их со статусами HTTP через errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate")
	ErrNotFriends       = errors.New("not friends")
	ErrBestieLimit      = errors.New("bestie limit exceeded")
	ErrUnknownAlertType = errors.New("unknown alert type")
	ErrPersistence      = errors.New("persistence error")
)

// Error - ошибка с видом и сообщением для клиента
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func fail(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// persistenceError оборачивает ошибку записи в хранилище
func persistenceError(err error) error {
	return &Error{Kind: ErrPersistence, Message: "failed to save changes", Err: err}
}

// lookupError переводит ошибку чтения хранилища в вид ошибки сервиса
func lookupError(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fail(ErrNotFound, "%s does not exist.", what)
	}
	return &Error{Kind: ErrPersistence, Message: "failed to load " + what, Err: err}
}

// Message возвращает текст для клиента без внутренних подробностей
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong."
}
