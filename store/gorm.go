package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"besties/db"
	"besties/models"

	"gorm.io/gorm"
)

// GormRepository хранит каждого пользователя одной строкой users,
// вложенные коллекции лежат в JSON-колонках
type GormRepository struct {
	orm *gorm.DB
}

func NewGormRepository(orm *gorm.DB) *GormRepository {
	return &GormRepository{orm: orm}
}

func (r *GormRepository) Create(ctx context.Context, u *models.User) error {
	var alreadyExists int64
	err := db.GetWriteDB(ctx, r.orm).Model(&models.User{}).Where("email = ?", u.Email).Count(&alreadyExists).Error
	if err != nil {
		return fmt.Errorf("error checking email: %w", err)
	}
	if alreadyExists > 0 {
		return ErrDuplicate
	}

	u.Normalize()
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	err = db.GetWriteDB(ctx, r.orm).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// Get читает с мастера: результат обычно сразу изменяется и сохраняется
func (r *GormRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return r.first(db.GetWriteDB(ctx, r.orm).Where("id = ?", id))
}

func (r *GormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(db.GetWriteDB(ctx, r.orm).Where("email = ?", email))
}

func (r *GormRepository) first(query *gorm.DB) (*models.User, error) {
	var u models.User
	err := query.First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Normalize()
	return &u, nil
}

func (r *GormRepository) GetMany(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	var users []*models.User
	err := db.GetReadOnlyDB(ctx, r.orm).
		Select("id", "name", "profile_image", "posts").
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	for _, u := range users {
		u.Normalize()
	}
	return orderByIDs(users, ids), nil
}

func (r *GormRepository) Cards(ctx context.Context, ids []string) ([]models.UserCard, error) {
	if len(ids) == 0 {
		return []models.UserCard{}, nil
	}
	var cards []models.UserCard
	err := db.GetReadOnlyDB(ctx, r.orm).
		Model(&models.User{}).
		Select("id", "name", "profile_image").
		Where("id IN ?", ids).
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user cards: %w", err)
	}
	return cards, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search ищет подстроку в имени без учета регистра
func (r *GormRepository) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	var results []models.SearchResult
	err := db.GetReadOnlyDB(ctx, r.orm).
		Model(&models.User{}).
		Select("id", "name", "profile_image", "friends", "friend_requests").
		Where(`lower(name) LIKE ? ESCAPE '\'`, pattern).
		Order("name").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return results, nil
}

func (r *GormRepository) Save(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()
	return db.GetWriteDB(ctx, r.orm).Save(u).Error
}

func (r *GormRepository) SavePair(ctx context.Context, a, b *models.User) error {
	now := time.Now().UTC()
	a.UpdatedAt, b.UpdatedAt = now, now
	return db.GetWriteDB(ctx, r.orm).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		return tx.Save(b).Error
	})
}

func (r *GormRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := db.GetReadOnlyDB(ctx, r.orm).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Normalize()
	}
	return users, nil
}

func (r *GormRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := db.GetWriteDB(ctx, r.orm).Where("1 = 1").Delete(&models.User{})
	return result.RowsAffected, result.Error
}
