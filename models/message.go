package models

import "gorm.io/datatypes"

// MessageThread - вся переписка с одним собеседником. Хранится у каждого
// участника отдельно, content общий для обоих направлений.
type MessageThread struct {
	ID            string   `json:"id" bson:"id"`
	CounterpartID string   `json:"from_id" bson:"from_id"`
	Content       []string `json:"content" bson:"content"`
}

// ThreadView - диалог с именем и аватаром собеседника
type ThreadView struct {
	MessageThread
	MessengerName         string `json:"messengerName"`
	MessengerProfileImage string `json:"messengerProfileImage"`
}

func (u *User) ThreadWith(counterpartID string) *MessageThread {
	for i := range u.Messages {
		if u.Messages[i].CounterpartID == counterpartID {
			return &u.Messages[i]
		}
	}
	return nil
}

// AppendMessage дописывает content в диалог с counterpartID, создавая его при
// необходимости через newID. Возвращает true, если диалог создан.
func (u *User) AppendMessage(counterpartID, content string, newID func() string) bool {
	if t := u.ThreadWith(counterpartID); t != nil {
		t.Content = append(t.Content, content)
		return false
	}
	u.Messages = append(u.Messages, MessageThread{
		ID:            newID(),
		CounterpartID: counterpartID,
		Content:       []string{content},
	})
	return true
}

// RemoveThread удаляет диалог только у этого пользователя
func (u *User) RemoveThread(threadID string) bool {
	for i := range u.Messages {
		if u.Messages[i].ID == threadID {
			u.Messages = append(u.Messages[:i:i], u.Messages[i+1:]...)
			return true
		}
	}
	return false
}

// MarkUnreadFrom отмечает, что от fromID есть непрочитанные сообщения
func (u *User) MarkUnreadFrom(fromID string) {
	if !containsID(u.NewMessageNotifications, fromID) {
		u.NewMessageNotifications = append(u.NewMessageNotifications, fromID)
	}
}

func (u *User) ResetMessageNotifications() {
	u.NewMessageNotifications = datatypes.JSONSlice[string]{}
}
