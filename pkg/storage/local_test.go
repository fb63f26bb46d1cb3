package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageUpload(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	response, err := store.Upload(context.Background(), &UploadRequest{
		Key:         "users/abc/photo.png",
		Reader:      strings.NewReader("png-bytes"),
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/users/abc/photo.png", response.URL)
	assert.Equal(t, int64(9), response.Size)
}

// The URLs local storage hands out point back at this server, so the
// uploads directory has to be mounted as a static route there.
func TestLocalStorageURLServedByStaticRoute(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://localhost:8080")
	require.NoError(t, err)

	response, err := store.Upload(context.Background(), &UploadRequest{
		Key:         "users/abc/photo.png",
		Reader:      strings.NewReader("png-bytes"),
		ContentType: "image/png",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(response.URL)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Static("/uploads", dir)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, parsed.Path, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
}

func TestLocalStorageDeleteAndExists(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Upload(ctx, &UploadRequest{
		Key:    "users/abc/photo.png",
		Reader: strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "users/abc/photo.png")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "users/abc/photo.png"))

	exists, err = store.Exists(ctx, "users/abc/photo.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is a no-op.
	require.NoError(t, store.Delete(ctx, "users/abc/photo.png"))
}
