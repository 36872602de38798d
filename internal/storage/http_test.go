package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpx-mcp-go/internal/hwpx"
)

// documentServer is a minimal in-memory remote document store.
type documentServer struct {
	mu   sync.Mutex
	docs map[string][]byte
	auth string
}

func (s *documentServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.auth != "" && r.Header.Get("Authorization") != "Bearer "+s.auth {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		path := r.URL.Query().Get("path")
		s.mu.Lock()
		defer s.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			data, ok := s.docs[path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(data)
		case http.MethodPut:
			data, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			s.docs[path] = data
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func TestHTTPRoundTrip(t *testing.T) {
	remote := &documentServer{docs: make(map[string][]byte)}
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	store, err := NewHTTP(HTTPConfig{BaseURL: srv.URL}, nil)
	require.NoError(t, err)
	ctx := context.Background()

	doc, err := hwpx.NewBlank()
	require.NoError(t, err)
	doc.AddParagraph("원격 저장")
	require.NoError(t, store.Save(ctx, doc, "remote/doc.hwpx"))

	loaded, err := store.Load(ctx, "remote/doc.hwpx")
	require.NoError(t, err)
	assert.Equal(t, "원격 저장", loaded.Paragraphs()[1].Text())
}

func TestHTTPNotFound(t *testing.T) {
	remote := &documentServer{docs: make(map[string][]byte)}
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	store, err := NewHTTP(HTTPConfig{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "missing.hwpx")
	assert.Equal(t, hwpx.CodeDocumentNotFound, hwpx.ErrorCode(err))
}

func TestHTTPAuthToken(t *testing.T) {
	remote := &documentServer{docs: make(map[string][]byte), auth: "secret"}
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	authorized, err := NewHTTP(HTTPConfig{BaseURL: srv.URL, AuthToken: "secret"}, nil)
	require.NoError(t, err)
	doc, err := hwpx.NewBlank()
	require.NoError(t, err)
	require.NoError(t, authorized.Save(context.Background(), doc, "doc.hwpx"))

	anonymous, err := NewHTTP(HTTPConfig{BaseURL: srv.URL}, nil)
	require.NoError(t, err)
	err = anonymous.Save(context.Background(), doc, "doc.hwpx")
	assert.Error(t, err)
}

func TestHTTPRequiresBaseURL(t *testing.T) {
	_, err := NewHTTP(HTTPConfig{}, nil)
	assert.Equal(t, hwpx.CodeInvalidArgument, hwpx.ErrorCode(err))
}
