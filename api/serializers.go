package api

import (
	"time"

	"github.com/masnyjimmy/blogapi/blog"
)

// Wire shapes for the REST layer. The structs double as the source of
// the component schemas in the generated document, so field tags here
// are the documentation contract.

type UserOut struct {
	ID         int64     `json:"id" doc:"Unique user id"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	DateJoined time.Time `json:"date_joined"`
}

type UserIn struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password" doc:"Plain password, stored only as a hash"`
}

type CommentOut struct {
	ID         int64     `json:"id"`
	Post       int64     `json:"post" doc:"Id of the commented post"`
	Author     UserOut   `json:"author"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	IsApproved bool      `json:"is_approved"`
}

type CommentIn struct {
	Post       int64  `json:"post,omitempty" doc:"Target post id, ignored on the nested post route"`
	Body       string `json:"body"`
	IsApproved bool   `json:"is_approved,omitempty"`
}

type PostOut struct {
	ID            int64        `json:"id"`
	Author        UserOut      `json:"author"`
	Title         string       `json:"title"`
	Body          string       `json:"body"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	IsPublished   bool         `json:"is_published"`
	Comments      []CommentOut `json:"comments"`
	CommentsCount int          `json:"comments_count"`
}

// PostListItem is the reduced post shape used in listings, comments are
// left out and only counted.
type PostListItem struct {
	ID            int64     `json:"id"`
	Author        UserOut   `json:"author"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	IsPublished   bool      `json:"is_published"`
	CommentsCount int       `json:"comments_count"`
}

type PostIn struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	IsPublished bool   `json:"is_published,omitempty"`
}

type TokenObtainIn struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenPairOut struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type TokenRefreshIn struct {
	Refresh string `json:"refresh"`
}

type TokenAccessOut struct {
	Access string `json:"access"`
}

// ErrorDetail is the error envelope for every non-2xx response.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

type PagedUsers struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []UserOut `json:"results"`
}

type PagedPosts struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []PostListItem `json:"results"`
}

type PagedComments struct {
	Count    int          `json:"count"`
	Next     *string      `json:"next"`
	Previous *string      `json:"previous"`
	Results  []CommentOut `json:"results"`
}

func userOut(user blog.User) UserOut {
	return UserOut{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		DateJoined: user.DateJoined,
	}
}

func (s *Server) commentOut(comment blog.Comment) CommentOut {
	out := CommentOut{
		ID:         comment.ID,
		Post:       comment.PostID,
		Body:       comment.Body,
		CreatedAt:  comment.CreatedAt,
		UpdatedAt:  comment.UpdatedAt,
		IsApproved: comment.IsApproved,
	}

	if author, err := s.store.User(comment.AuthorID); err == nil {
		out.Author = userOut(author)
	}

	return out
}

func (s *Server) commentsOut(comments []blog.Comment) []CommentOut {
	out := make([]CommentOut, 0, len(comments))
	for _, comment := range comments {
		out = append(out, s.commentOut(comment))
	}
	return out
}

func (s *Server) postOut(post blog.Post) PostOut {
	out := PostOut{
		ID:            post.ID,
		Title:         post.Title,
		Body:          post.Body,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
		IsPublished:   post.IsPublished,
		Comments:      s.commentsOut(s.store.CommentsByPost(post.ID)),
		CommentsCount: s.store.CommentCount(post.ID),
	}

	if author, err := s.store.User(post.AuthorID); err == nil {
		out.Author = userOut(author)
	}

	return out
}

func (s *Server) postListItem(post blog.Post) PostListItem {
	out := PostListItem{
		ID:            post.ID,
		Title:         post.Title,
		Body:          post.Body,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
		IsPublished:   post.IsPublished,
		CommentsCount: s.store.CommentCount(post.ID),
	}

	if author, err := s.store.User(post.AuthorID); err == nil {
		out.Author = userOut(author)
	}

	return out
}
