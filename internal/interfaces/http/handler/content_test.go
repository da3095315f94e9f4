package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	notifydomain "github.com/maxwelladwale/coltech/internal/domain/notification"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHandler_Posts(t *testing.T) {
	env := newTestEnv(t)

	t.Run("list", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/blog/posts", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var posts []PostResponse
		decodeData(t, w, &posts)
		require.Len(t, posts, 3)
		for _, p := range posts {
			assert.Empty(t, p.Content, "listing carries excerpts only")
		}
	})

	t.Run("by tag", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/blog/posts?tag=safety", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var posts []PostResponse
		decodeData(t, w, &posts)
		require.Len(t, posts, 1)
		assert.Equal(t, "adas-vs-dms", posts[0].Slug)
	})

	t.Run("recent", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/blog/posts/recent?limit=2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var posts []PostResponse
		decodeData(t, w, &posts)
		require.Len(t, posts, 2)
		assert.False(t, posts[0].PublishedAt.Before(posts[1].PublishedAt))

		w = env.do(t, http.MethodGet, "/api/v1/blog/posts/recent?limit=50", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("by slug", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/blog/posts/choosing-mdvr-storage", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var post PostResponse
		decodeData(t, w, &post)
		assert.Equal(t, "post-3", post.ID)
		assert.NotEmpty(t, post.Content)

		w = env.do(t, http.MethodGet, "/api/v1/blog/posts/unknown-post", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestContentHandler_SubmitContact(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/contact", gin.H{
		"name":    "Kamau Njoroge",
		"email":   "kamau@fleetco.co.ke",
		"subject": "Fleet quote",
		"message": "We run 40 matatus and need MDVRs with DMS.",
	})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Contains(t, env.published.types(), notifydomain.EventContactMessage)

	w = env.do(t, http.MethodPost, "/api/v1/contact", gin.H{
		"name":    "Kamau Njoroge",
		"email":   "not-an-email",
		"subject": "Fleet quote",
		"message": "Hello",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
}
