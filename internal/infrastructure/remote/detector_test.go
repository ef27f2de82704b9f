package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gear-scan-bot/internal/domain/port"
	"gear-scan-bot/internal/infrastructure/vision"
)

func newTestPipeline() *vision.Pipeline {
	return vision.NewPipeline(vision.DecoderConfig{
		Layout:     vision.LayoutSplit,
		NumClasses: len(vision.DefaultLabels),
	}, 0.25, 0.45, vision.DefaultLabels)
}

func TestDetector_Detect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image")
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"scores": [[0.05, 0.9, 0.02, 0.03]],
			"boxes": [[0.1, 0.2, 0.3, 0.3]]
		}`))
	}))
	defer server.Close()

	d := NewDetector(server.URL, newTestPipeline())

	detections, err := d.Detect(context.Background(), []byte("image-bytes"))
	require.NoError(t, err)
	require.Len(t, detections, 1)
	require.Equal(t, "helmet", detections[0].Label)
	require.InDelta(t, 0.9, detections[0].Confidence, 1e-6)
	require.InDelta(t, 0.2, detections[0].Box.Y, 1e-6)
}

func TestDetector_BottomLeftOrigin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"scores": [[0.9, 0.0, 0.0, 0.0]],
			"boxes": [[0.1, 0.2, 0.3, 0.3]],
			"origin": "bottom-left"
		}`))
	}))
	defer server.Close()

	d := NewDetector(server.URL, newTestPipeline())

	detections, err := d.Detect(context.Background(), []byte("image-bytes"))
	require.NoError(t, err)
	require.Len(t, detections, 1)
	require.InDelta(t, 0.5, detections[0].Box.Y, 1e-6)
}

func TestDetector_BackendErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	d := NewDetector(server.URL, newTestPipeline())

	_, err := d.Detect(context.Background(), []byte("image-bytes"))
	require.ErrorIs(t, err, port.ErrInferenceUnavailable)
}

func TestDetector_InvalidShapeFromBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"scores": [[0.9]], "boxes": [[0.1, 0.2, 0.3, 0.3]]}`))
	}))
	defer server.Close()

	d := NewDetector(server.URL, newTestPipeline())

	_, err := d.Detect(context.Background(), []byte("image-bytes"))
	require.ErrorIs(t, err, vision.ErrInvalidShape)
}
