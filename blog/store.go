package blog

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Store is an in-memory database for the blog. All access goes through
// the mutex, values are copied on the way in and out so callers never
// share memory with the store.
type Store struct {
	mu sync.RWMutex

	users    map[int64]User
	posts    map[int64]Post
	comments map[int64]Comment

	nextUserID    int64
	nextPostID    int64
	nextCommentID int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:         make(map[int64]User),
		posts:         make(map[int64]Post),
		comments:      make(map[int64]Comment),
		nextUserID:    1,
		nextPostID:    1,
		nextCommentID: 1,
		now:           time.Now,
	}
}

// ==================== Users ====================

func (s *Store) CreateUser(user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return User{}, ErrUsernameTaken
		}
	}

	user.ID = s.nextUserID
	user.DateJoined = s.now()
	s.nextUserID++

	s.users[user.ID] = user
	return user, nil
}

func (s *Store) User(id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (s *Store) UserByUsername(username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) UpdateUser(user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[user.ID]
	if !ok {
		return User{}, ErrNotFound
	}

	for _, existing := range s.users {
		if existing.Username == user.Username && existing.ID != user.ID {
			return User{}, ErrUsernameTaken
		}
	}

	user.DateJoined = current.DateJoined
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// ==================== Posts ====================

func (s *Store) CreatePost(post Post) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[post.AuthorID]; !ok {
		return Post{}, ErrNotFound
	}

	post.ID = s.nextPostID
	post.CreatedAt = s.now()
	post.UpdatedAt = post.CreatedAt
	s.nextPostID++

	s.posts[post.ID] = post
	return post, nil
}

func (s *Store) Post(id int64) (Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return Post{}, ErrNotFound
	}
	return post, nil
}

// Posts lists posts ordered by id. With publishedOnly set, drafts are
// filtered out (the guest view).
func (s *Store) Posts(publishedOnly bool) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Post, 0, len(s.posts))
	for _, post := range s.posts {
		if publishedOnly && !post.IsPublished {
			continue
		}
		out = append(out, post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) UpdatePost(post Post) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.posts[post.ID]
	if !ok {
		return Post{}, ErrNotFound
	}

	post.AuthorID = current.AuthorID
	post.CreatedAt = current.CreatedAt
	post.UpdatedAt = s.now()

	s.posts[post.ID] = post
	return post, nil
}

// DeletePost removes the post and cascades to its comments.
func (s *Store) DeletePost(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)

	for commentID, comment := range s.comments {
		if comment.PostID == id {
			delete(s.comments, commentID)
		}
	}
	return nil
}

// ==================== Comments ====================

func (s *Store) CreateComment(comment Comment) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[comment.PostID]; !ok {
		return Comment{}, ErrNotFound
	}
	if _, ok := s.users[comment.AuthorID]; !ok {
		return Comment{}, ErrNotFound
	}

	comment.ID = s.nextCommentID
	comment.CreatedAt = s.now()
	comment.UpdatedAt = comment.CreatedAt
	s.nextCommentID++

	s.comments[comment.ID] = comment
	return comment, nil
}

func (s *Store) Comment(id int64) (Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	return comment, nil
}

func (s *Store) Comments() []Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Comment, 0, len(s.comments))
	for _, comment := range s.comments {
		out = append(out, comment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) CommentsByPost(postID int64) []Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID == postID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) CommentCount(postID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, comment := range s.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count
}

func (s *Store) UpdateComment(comment Comment) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.comments[comment.ID]
	if !ok {
		return Comment{}, ErrNotFound
	}

	comment.PostID = current.PostID
	comment.AuthorID = current.AuthorID
	comment.CreatedAt = current.CreatedAt
	comment.UpdatedAt = s.now()

	s.comments[comment.ID] = comment
	return comment, nil
}

func (s *Store) DeleteComment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return ErrNotFound
	}
	delete(s.comments, id)
	return nil
}
