package models

import "gorm.io/datatypes"

// Circle - особый список внутри друзей
type Circle string

const (
	CircleBesties Circle = "besties"
	CircleEnemies Circle = "enemies"
)

func (c Circle) Valid() bool {
	return c == CircleBesties || c == CircleEnemies
}

// AddFriendRequest добавляет входящую заявку от fromID.
// Возвращает false, если такая заявка уже есть.
func (u *User) AddFriendRequest(fromID string) bool {
	if hasDuplicate(append([]string{fromID}, u.FriendRequests...)) {
		return false
	}
	u.FriendRequests = append(u.FriendRequests, fromID)
	return true
}

func (u *User) HasFriendRequest(fromID string) bool {
	return containsID(u.FriendRequests, fromID)
}

// RemoveFriendRequest убирает заявку от fromID, если она была
func (u *User) RemoveFriendRequest(fromID string) bool {
	rest, ok := removeID(u.FriendRequests, fromID)
	u.FriendRequests = datatypes.JSONSlice[string](rest)
	return ok
}

func (u *User) IsFriend(id string) bool {
	return containsID(u.Friends, id)
}

// AddFriend добавляет одну сторону дружбы. Вторую сторону добавляет вызывающий код.
func (u *User) AddFriend(id string) bool {
	if hasDuplicate(append([]string{id}, u.Friends...)) {
		return false
	}
	u.Friends = append(u.Friends, id)
	return true
}

// PlainFriends - друзья, не входящие в besties
func (u *User) PlainFriends() []string {
	plain := make([]string, 0, len(u.Friends))
	for _, id := range u.Friends {
		if !containsID(u.Besties, id) {
			plain = append(plain, id)
		}
	}
	return plain
}

func (u *User) circle(c Circle) *datatypes.JSONSlice[string] {
	if c == CircleBesties {
		return &u.Besties
	}
	return &u.Enemies
}

func (u *User) InCircle(c Circle, id string) bool {
	return containsID(*u.circle(c), id)
}

func (u *User) CircleSize(c Circle) int {
	return len(*u.circle(c))
}

// AddToCircle добавляет id в besties/enemies без проверок лимитов
func (u *User) AddToCircle(c Circle, id string) bool {
	set := u.circle(c)
	if containsID(*set, id) {
		return false
	}
	*set = append(*set, id)
	return true
}

func (u *User) RemoveFromCircle(c Circle, id string) bool {
	set := u.circle(c)
	rest, ok := removeID(*set, id)
	*set = datatypes.JSONSlice[string](rest)
	return ok
}
