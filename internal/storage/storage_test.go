package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archiveweb/internal/config"
)

func TestCleanName(t *testing.T) {
	valid := []string{"report.pdf", "clip 1.mp4", "한글.hwp"}
	for _, name := range valid {
		got, err := CleanName(name)
		assert.NoError(t, err, name)
		assert.Equal(t, name, got)
	}

	invalid := []string{"", ".", "..", "../etc/passwd", "a/b.pdf", `a\b.pdf`, "/abs.pdf"}
	for _, name := range invalid {
		_, err := CleanName(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestBackendStoreGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/uploads/report.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("ETag", `"abc"`)
			_, _ = w.Write([]byte("%PDF-1.4"))
		case "/uploads/broken.bin":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store, err := NewBackend(srv.URL+"/", srv.Client())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rc, info, err := store.Get(ctx, "report.pdf")
		require.NoError(t, err)
		defer rc.Close()
		body, _ := io.ReadAll(rc)
		assert.Equal(t, "%PDF-1.4", string(body))
		assert.Equal(t, "application/pdf", info.ContentType)
		assert.Equal(t, `"abc"`, info.ETag)
		assert.Equal(t, int64(8), info.Size)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := store.Get(ctx, "nope.pdf")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, _, err := store.Get(ctx, "broken.bin")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("traversal rejected before request", func(t *testing.T) {
		_, _, err := store.Get(ctx, "../secret")
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestNewMinIOValidation(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		msg  string
	}{
		{"missing endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "b", Bucket: "c"}, "endpoint"},
		{"missing credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "c"}, "credentials"},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, "bucket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMinIO(ctx, tt.cfg)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}
