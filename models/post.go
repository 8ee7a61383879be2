package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post - пост пользователя, хранится внутри User.Posts
type Post struct {
	ID       string    `json:"id" bson:"id"`
	Theme    string    `json:"theme" bson:"theme"`
	Content  string    `json:"content" bson:"content"`
	Date     time.Time `json:"date" bson:"date"`
	Likes    []string  `json:"likes" bson:"likes"`
	Comments []Comment `json:"comments" bson:"comments"`
}

// Comment - комментарий к посту. Имя и аватар автора не хранятся.
type Comment struct {
	ID          string    `json:"id" bson:"id"`
	CommenterID string    `json:"commenter_id" bson:"commenter_id"`
	Content     string    `json:"comment_content" bson:"comment_content"`
	Date        time.Time `json:"date" bson:"date"`
}

func (p *Post) normalize() {
	if p.Likes == nil {
		p.Likes = []string{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// ToggleLike ставит или снимает лайк userID. Возвращает true, если лайк поставлен.
func (p *Post) ToggleLike(userID string) bool {
	if rest, ok := removeID(p.Likes, userID); ok {
		p.Likes = rest
		return false
	}
	p.Likes = append(p.Likes, userID)
	return true
}

func (p *Post) AddComment(c Comment) {
	p.Comments = append(p.Comments, c)
}

// AddPost добавляет пост в конец списка
func (u *User) AddPost(p Post) {
	p.normalize()
	u.Posts = append(u.Posts, p)
}

// FindPost возвращает указатель на пост внутри агрегата или nil
func (u *User) FindPost(postID string) *Post {
	for i := range u.Posts {
		if u.Posts[i].ID == postID {
			return &u.Posts[i]
		}
	}
	return nil
}

// FeedPost - пост с данными владельца и авторов комментариев для ответа API
type FeedPost struct {
	ID                string        `json:"id"`
	Theme             string        `json:"theme"`
	Content           string        `json:"content"`
	Date              time.Time     `json:"date"`
	Likes             []string      `json:"likes"`
	Comments          []CommentView `json:"comments"`
	OwnerID           string        `json:"ownerid"`
	Name              string        `json:"name"`
	OwnerProfileImage string        `json:"ownerProfileImage"`
	Ago               string        `json:"ago"`
}

// CommentView - комментарий с именем и аватаром автора
type CommentView struct {
	Comment
	CommenterName         string `json:"commenter_name"`
	CommenterProfileImage string `json:"commenter_profile_image"`
}

// FeedResponse - ответ API для ленты
type FeedResponse struct {
	Posts       []FeedPost `json:"posts"`
	BestiePosts []FeedPost `json:"bestiePosts"`
}

// PostsOf превращает посты пользователя в FeedPost без данных комментаторов
func PostsOf(owner *User, posts datatypes.JSONSlice[Post], ago func(time.Time) string) []FeedPost {
	out := make([]FeedPost, 0, len(posts))
	for _, p := range posts {
		comments := make([]CommentView, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, CommentView{Comment: c})
		}
		likes := p.Likes
		if likes == nil {
			likes = []string{}
		}
		out = append(out, FeedPost{
			ID:                p.ID,
			Theme:             p.Theme,
			Content:           p.Content,
			Date:              p.Date,
			Likes:             likes,
			Comments:          comments,
			OwnerID:           owner.ID,
			Name:              owner.Name,
			OwnerProfileImage: owner.ProfileImage,
			Ago:               ago(p.Date),
		})
	}
	return out
}
