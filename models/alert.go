package models

import (
	"time"

	"gorm.io/datatypes"
)

type AlertType string

const (
	AlertNewFriend     AlertType = "new_friend"
	AlertLikedPost     AlertType = "liked_post"
	AlertCommentedPost AlertType = "commented_post"
)

// Alert - запись в журнале уведомлений пользователя
type Alert struct {
	Type     AlertType `json:"alert_type" bson:"alert_type"`
	FromID   string    `json:"from_id" bson:"from_id"`
	FromName string    `json:"from_name" bson:"from_name"`
	Text     string    `json:"alert_text" bson:"alert_text"`
	Date     time.Time `json:"date" bson:"date"`
}

// PushAlert кладет уведомление в начало журнала. Журнал обрезается заранее,
// чтобы вместе с новым в нем было не больше MaxNotifications записей.
func (u *User) PushAlert(a Alert) {
	u.NewNotifications++
	keep := u.Notifications
	if len(keep) > MaxNotifications-1 {
		keep = keep[:MaxNotifications-1]
	}
	next := make(datatypes.JSONSlice[Alert], 0, len(keep)+1)
	next = append(next, a)
	u.Notifications = append(next, keep...)
}

func (u *User) ResetAlertNotifications() {
	u.NewNotifications = 0
}

// Counters - счетчики для опроса клиентом
type Counters struct {
	NewNotifications int `json:"new_notifications"`
	UnreadDialogs    int `json:"unread_dialogs"`
	FriendRequests   int `json:"friend_requests"`
}

func (u *User) Counters() Counters {
	return Counters{
		NewNotifications: u.NewNotifications,
		UnreadDialogs:    len(u.NewMessageNotifications),
		FriendRequests:   len(u.FriendRequests),
	}
}

// Profile - страница пользователя со всеми подставленными данными
type Profile struct {
	ID                      string       `json:"id"`
	Name                    string       `json:"name"`
	Email                   string       `json:"email"`
	ProfileImage            string       `json:"profile_image"`
	Posts                   []FeedPost   `json:"posts"`
	Friends                 []string     `json:"friends"`
	FriendRequests          []string     `json:"friend_requests"`
	RandomFriends           []UserCard   `json:"random_friends"`
	Besties                 []UserCard   `json:"besties"`
	Enemies                 []UserCard   `json:"enemies"`
	Messages                []ThreadView `json:"messages,omitempty"`
	Notifications           []Alert      `json:"notifications,omitempty"`
	NewNotifications        int          `json:"new_notifications"`
	NewMessageNotifications []string     `json:"new_message_notifications,omitempty"`
	CreatedAt               time.Time    `json:"created_at"`
}
