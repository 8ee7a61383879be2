package models

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

const (
	MaxBesties       = 2
	MaxNotifications = 18
)

// User - агрегат пользователя. Посты, переписки и уведомления хранятся внутри
// него и сохраняются только вместе с ним.
type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Name         string `gorm:"size:255;index" json:"name" bson:"name"`
	Email        string `gorm:"size:255;uniqueIndex" json:"email" bson:"email"`
	PasswordHash string `gorm:"size:255" json:"-" bson:"password_hash"`
	ProfileImage string `gorm:"size:512" json:"profile_image" bson:"profile_image"`

	Posts          datatypes.JSONSlice[Post]   `json:"posts" bson:"posts"`
	Friends        datatypes.JSONSlice[string] `json:"friends" bson:"friends"`
	FriendRequests datatypes.JSONSlice[string] `json:"friend_requests" bson:"friend_requests"`
	Besties        datatypes.JSONSlice[string] `json:"besties" bson:"besties"`
	Enemies        datatypes.JSONSlice[string] `json:"enemies" bson:"enemies"`

	Messages                datatypes.JSONSlice[MessageThread] `json:"messages" bson:"messages"`
	Notifications           datatypes.JSONSlice[Alert]         `json:"notifications" bson:"notifications"`
	NewNotifications        int                                `json:"new_notifications" bson:"new_notifications"`
	NewMessageNotifications datatypes.JSONSlice[string]        `json:"new_message_notifications" bson:"new_message_notifications"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// NewUser создает пользователя с пустыми коллекциями, чтобы в JSON не было null
func NewUser(id, name, email, passwordHash string) *User {
	u := &User{ID: id, Name: name, Email: email, PasswordHash: passwordHash}
	u.Normalize()
	return u
}

// Normalize заменяет nil-коллекции пустыми
func (u *User) Normalize() {
	if u.Posts == nil {
		u.Posts = datatypes.JSONSlice[Post]{}
	}
	for i := range u.Posts {
		u.Posts[i].normalize()
	}
	if u.Friends == nil {
		u.Friends = datatypes.JSONSlice[string]{}
	}
	if u.FriendRequests == nil {
		u.FriendRequests = datatypes.JSONSlice[string]{}
	}
	if u.Besties == nil {
		u.Besties = datatypes.JSONSlice[string]{}
	}
	if u.Enemies == nil {
		u.Enemies = datatypes.JSONSlice[string]{}
	}
	if u.Messages == nil {
		u.Messages = datatypes.JSONSlice[MessageThread]{}
	}
	for i := range u.Messages {
		if u.Messages[i].Content == nil {
			u.Messages[i].Content = []string{}
		}
	}
	if u.Notifications == nil {
		u.Notifications = datatypes.JSONSlice[Alert]{}
	}
	if u.NewMessageNotifications == nil {
		u.NewMessageNotifications = datatypes.JSONSlice[string]{}
	}
}

// Card возвращает публичные данные пользователя
func (u *User) Card() UserCard {
	return UserCard{ID: u.ID, Name: u.Name, ProfileImage: u.ProfileImage}
}

// UserCard - имя и аватар, которые подставляются в посты, комментарии и диалоги
type UserCard struct {
	ID           string `json:"id" bson:"_id"`
	Name         string `json:"name" bson:"name"`
	ProfileImage string `json:"profile_image" bson:"profile_image"`
}

// SearchResult - строка поиска: карточка плюс состояние дружбы для клиента
type SearchResult struct {
	ID             string                      `json:"id" bson:"_id"`
	Name           string                      `json:"name" bson:"name"`
	ProfileImage   string                      `json:"profile_image" bson:"profile_image"`
	Friends        datatypes.JSONSlice[string] `json:"friends" bson:"friends"`
	FriendRequests datatypes.JSONSlice[string] `json:"friend_requests" bson:"friend_requests"`
}

// hasDuplicate сортирует копию и ищет соседние одинаковые id
func hasDuplicate(ids []string) bool {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
