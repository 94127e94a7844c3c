package blog_test

import (
	"testing"

	"github.com/masnyjimmy/blogapi/blog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, store *blog.Store, username string) blog.User {
	t.Helper()

	user := blog.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, user.SetPassword("s3cret-"+username))

	created, err := store.CreateUser(user)
	require.NoError(t, err)
	return created
}

func TestPasswordHashing(t *testing.T) {
	user := blog.User{Username: "alice"}
	require.NoError(t, user.SetPassword("correct horse"))

	assert.NotEqual(t, "correct horse", user.Password)
	assert.True(t, user.CheckPassword("correct horse"))
	assert.False(t, user.CheckPassword("wrong horse"))
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	store := blog.NewStore()
	newUser(t, store, "alice")

	_, err := store.CreateUser(blog.User{Username: "alice"})
	assert.ErrorIs(t, err, blog.ErrUsernameTaken)
}

func TestUserLookup(t *testing.T) {
	store := blog.NewStore()
	alice := newUser(t, store, "alice")

	byID, err := store.User(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := store.UserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byName.ID)

	_, err = store.User(999)
	assert.ErrorIs(t, err, blog.ErrNotFound)

	_, err = store.UserByUsername("nobody")
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestPostLifecycle(t *testing.T) {
	store := blog.NewStore()
	alice := newUser(t, store, "alice")

	post, err := store.CreatePost(blog.Post{
		AuthorID:    alice.ID,
		Title:       "First",
		Body:        "Hello",
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)

	post.Title = "First, edited"
	post.AuthorID = 999 // must not stick
	updated, err := store.UpdatePost(post)
	require.NoError(t, err)
	assert.Equal(t, "First, edited", updated.Title)
	assert.Equal(t, alice.ID, updated.AuthorID)
	assert.Equal(t, post.CreatedAt, updated.CreatedAt)

	require.NoError(t, store.DeletePost(post.ID))
	_, err = store.Post(post.ID)
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestCreatePostRequiresAuthor(t *testing.T) {
	store := blog.NewStore()

	_, err := store.CreatePost(blog.Post{AuthorID: 42, Title: "Orphan"})
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestPostsPublishedFilter(t *testing.T) {
	store := blog.NewStore()
	alice := newUser(t, store, "alice")

	published, err := store.CreatePost(blog.Post{AuthorID: alice.ID, Title: "Out", IsPublished: true})
	require.NoError(t, err)
	_, err = store.CreatePost(blog.Post{AuthorID: alice.ID, Title: "Draft"})
	require.NoError(t, err)

	all := store.Posts(false)
	assert.Len(t, all, 2)

	visible := store.Posts(true)
	require.Len(t, visible, 1)
	assert.Equal(t, published.ID, visible[0].ID)
}

func TestDeletePostCascadesComments(t *testing.T) {
	store := blog.NewStore()
	alice := newUser(t, store, "alice")

	keep, err := store.CreatePost(blog.Post{AuthorID: alice.ID, Title: "Keep", IsPublished: true})
	require.NoError(t, err)
	doomed, err := store.CreatePost(blog.Post{AuthorID: alice.ID, Title: "Doomed", IsPublished: true})
	require.NoError(t, err)

	kept, err := store.CreateComment(blog.Comment{PostID: keep.ID, AuthorID: alice.ID, Body: "stays"})
	require.NoError(t, err)
	_, err = store.CreateComment(blog.Comment{PostID: doomed.ID, AuthorID: alice.ID, Body: "goes"})
	require.NoError(t, err)

	require.NoError(t, store.DeletePost(doomed.ID))

	remaining := store.Comments()
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
	assert.Equal(t, 0, store.CommentCount(doomed.ID))
}

func TestCommentUpdatePreservesOwnership(t *testing.T) {
	store := blog.NewStore()
	alice := newUser(t, store, "alice")
	bob := newUser(t, store, "bob")

	post, err := store.CreatePost(blog.Post{AuthorID: alice.ID, Title: "Post", IsPublished: true})
	require.NoError(t, err)

	comment, err := store.CreateComment(blog.Comment{PostID: post.ID, AuthorID: bob.ID, Body: "original"})
	require.NoError(t, err)

	comment.Body = "edited"
	comment.AuthorID = alice.ID // must not stick
	updated, err := store.UpdateComment(comment)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Body)
	assert.Equal(t, bob.ID, updated.AuthorID)
	assert.Equal(t, post.ID, updated.PostID)
}

func TestCommentsByPostOrdering(t *testing.T) {
	store := blog.NewStore()
	alice := newUser(t, store, "alice")

	post, err := store.CreatePost(blog.Post{AuthorID: alice.ID, Title: "Post", IsPublished: true})
	require.NoError(t, err)

	for _, body := range []string{"one", "two", "three"} {
		_, err := store.CreateComment(blog.Comment{PostID: post.ID, AuthorID: alice.ID, Body: body})
		require.NoError(t, err)
	}

	comments := store.CommentsByPost(post.ID)
	require.Len(t, comments, 3)
	assert.Equal(t, "one", comments[0].Body)
	assert.Equal(t, "three", comments[2].Body)
	assert.Equal(t, 3, store.CommentCount(post.ID))
}
