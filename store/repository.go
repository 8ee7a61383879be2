package store

import (
	"context"
	"errors"

	"besties/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository - хранилище агрегатов User. Агрегат читается и пишется целиком,
// без блокировок: при параллельной записи побеждает последняя.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetMany загружает только id, имя, аватар и посты, в порядке ids
	GetMany(ctx context.Context, ids []string) ([]*models.User, error)
	Cards(ctx context.Context, ids []string) ([]models.UserCard, error)
	Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
	Save(ctx context.Context, u *models.User) error
	// SavePair сохраняет двух пользователей атомарно
	SavePair(ctx context.Context, a, b *models.User) error
	List(ctx context.Context) ([]models.User, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// orderByIDs раскладывает пользователей в порядке запрошенных id
func orderByIDs(users []*models.User, ids []string) []*models.User {
	byID := make(map[string]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]*models.User, 0, len(users))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
			delete(byID, id)
		}
	}
	return ordered
}
