package services

import (
	"context"
	"errors"
	"strings"

	"besties/auth"
	"besties/logs"
	"besties/models"
	"besties/store"

	"github.com/google/uuid"
)

const MaxSearchResults = 20

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Session - ответ на регистрацию и вход
type Session struct {
	UserID string `json:"_id"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// UserService - регистрация, вход, поиск и административные операции
type UserService struct {
	repo   store.UserRepository
	tokens *auth.JWTManager
}

func NewUserService(repo store.UserRepository, tokens *auth.JWTManager) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

func (us *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if first == "" || last == "" || email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, fail(ErrValidation, "Insufficient data sent with the request.")
	}
	if in.Password != in.ConfirmPassword {
		return nil, fail(ErrValidation, "Passwords do not match.")
	}

	if _, err := us.repo.GetByEmail(ctx, email); err == nil {
		return nil, fail(ErrDuplicate, "The provided email is already registered.")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, lookupError(err, "User")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, &Error{Kind: ErrPersistence, Message: "failed to hash password", Err: err}
	}
	user := models.NewUser(uuid.NewString(), first+" "+last, email, hash)
	if err := us.repo.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fail(ErrDuplicate, "The provided email is already registered.")
		}
		return nil, persistenceError(err)
	}
	logs.Log.WithField("user_id", user.ID).Info("user registered")
	return us.session(user)
}

func (us *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fail(ErrValidation, "Insufficient data sent with the request.")
	}
	user, err := us.repo.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fail(ErrUnauthorized, "Invalid credentials.")
	}
	if err != nil {
		return nil, lookupError(err, "User")
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, fail(ErrUnauthorized, "Invalid credentials.")
	}
	return us.session(user)
}

func (us *UserService) session(user *models.User) (*Session, error) {
	token, err := us.tokens.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, &Error{Kind: ErrPersistence, Message: "failed to issue token", Err: err}
	}
	return &Session{UserID: user.ID, Name: user.Name, Token: token}, nil
}

// Search ищет по подстроке имени без учета регистра, сам пользователь в выдачу не попадает
func (us *UserService) Search(ctx context.Context, userID, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fail(ErrValidation, "Missing a query.")
	}
	found, err := us.repo.Search(ctx, query, MaxSearchResults+1)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	results := make([]models.SearchResult, 0, len(found))
	for _, r := range found {
		if r.ID == userID {
			continue
		}
		results = append(results, r)
	}
	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}
	return results, nil
}

func (us *UserService) Counters(ctx context.Context, userID string) (models.Counters, error) {
	user, err := us.repo.Get(ctx, userID)
	if err != nil {
		return models.Counters{}, lookupError(err, "User")
	}
	return user.Counters(), nil
}

func (us *UserService) All(ctx context.Context) ([]models.User, error) {
	users, err := us.repo.List(ctx)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	return users, nil
}

func (us *UserService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := us.repo.DeleteAll(ctx)
	if err != nil {
		return 0, persistenceError(err)
	}
	logs.Log.WithField("deleted", n).Warn("all users deleted")
	return n, nil
}
