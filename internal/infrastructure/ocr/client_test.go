package ocr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_RecognizeLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image")
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"lines": ["  175 PSI ", "", "MODEL X100", "   "]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	lines, err := c.RecognizeLines(context.Background(), []byte("image-bytes"))
	require.NoError(t, err)
	require.Equal(t, []string{"175 PSI", "MODEL X100"}, lines)
}

func TestClient_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.RecognizeLines(context.Background(), []byte("image-bytes"))
	require.Error(t, err)
}

func TestClient_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"lines": []}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	lines, err := c.RecognizeLines(context.Background(), []byte("image-bytes"))
	require.NoError(t, err)
	require.Empty(t, lines)
}
