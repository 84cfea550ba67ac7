package objstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublicBase(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit", Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"}, "https://cdn.example.com"},
		{"path style", Config{Bucket: "b", Endpoint: "http://minio:9000", UsePathStyle: true}, "http://minio:9000/b"},
		{"virtual host", Config{Bucket: "b", Endpoint: "https://r2.example.com"}, "https://b.r2.example.com"},
		{"aws", Config{Bucket: "b", Region: "ap-southeast-2"}, "https://b.s3.ap-southeast-2.amazonaws.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, publicBase(tt.cfg))
		})
	}
}

func newTestStore(t *testing.T, endpoint string) *Store {
	t.Helper()
	s, err := New(context.Background(), Config{
		Bucket:          "uploads",
		Region:          "us-east-1",
		Endpoint:        endpoint,
		AccessKeyID:     "test",
		SecretAccessKey: "test-secret",
		UsePathStyle:    true,
	})
	require.NoError(t, err)
	return s
}

func TestPresignPut(t *testing.T) {
	s := newTestStore(t, "http://minio.local:9000")

	raw, err := s.PresignPut(context.Background(), "id-documents/01J/01K.jpg", "image/jpeg", 10*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "minio.local:9000", u.Host)
	require.Equal(t, "/uploads/id-documents/01J/01K.jpg", u.Path)
	require.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	require.Equal(t, "content-type;host", u.Query().Get("X-Amz-SignedHeaders"))
	require.Empty(t, u.Query().Get("Content-Type"), "the type must be a signed header, not a query value")

	require.Equal(t, "http://minio.local:9000/uploads/id-documents/01J/01K.jpg", s.PublicURL("id-documents/01J/01K.jpg"))
}

func TestStat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		switch {
		case strings.HasSuffix(r.URL.Path, "/present.jpg"):
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Content-Length", "2048")
			w.WriteHeader(http.StatusOK)
		case strings.HasSuffix(r.URL.Path, "/broken.jpg"):
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	s := newTestStore(t, srv.URL)
	ctx := context.Background()

	info, err := s.Stat(ctx, "present.jpg")
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", info.ContentType)
	require.Equal(t, int64(2048), info.Size)

	_, err = s.Stat(ctx, "missing.jpg")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Stat(ctx, "broken.jpg")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)
}
