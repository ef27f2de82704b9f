package vision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gear-scan-bot/internal/domain/entity"
)

func TestIoU_SelfIsOne(t *testing.T) {
	r := entity.NormalizedRect{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.3}
	require.InDelta(t, 1.0, IoU(r, r), 1e-9)
}

func TestIoU_Symmetry(t *testing.T) {
	a := entity.NormalizedRect{X: 0.1, Y: 0.1, Width: 0.4, Height: 0.4}
	b := entity.NormalizedRect{X: 0.3, Y: 0.3, Width: 0.4, Height: 0.4}
	require.InDelta(t, IoU(a, b), IoU(b, a), 1e-9)
	require.Greater(t, IoU(a, b), 0.0)
}

func TestIoU_DisjointIsExactlyZero(t *testing.T) {
	a := entity.NormalizedRect{X: 0.0, Y: 0.0, Width: 0.2, Height: 0.2}
	b := entity.NormalizedRect{X: 0.5, Y: 0.5, Width: 0.2, Height: 0.2}
	require.Equal(t, 0.0, IoU(a, b))

	// Касание по грани — тоже ноль.
	c := entity.NormalizedRect{X: 0.2, Y: 0.0, Width: 0.2, Height: 0.2}
	require.Equal(t, 0.0, IoU(a, c))
}

func TestSuppressor_ConfidenceFilter(t *testing.T) {
	s := NewSuppressor(0.25, 0.45, nil)

	candidates := []Candidate{
		{Class: 1, Confidence: 0.9, Box: entity.NormalizedRect{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2}},
		{Class: 1, Confidence: 0.2, Box: entity.NormalizedRect{X: 0.6, Y: 0.6, Width: 0.2, Height: 0.2}},
	}

	detections := s.Suppress(candidates)
	require.Len(t, detections, 1)
	require.Equal(t, "helmet", detections[0].Label)
}

func TestSuppressor_ThresholdMonotonicity(t *testing.T) {
	candidates := []Candidate{
		{Class: 0, Confidence: 0.3, Box: entity.NormalizedRect{X: 0.0, Y: 0.0, Width: 0.1, Height: 0.1}},
		{Class: 1, Confidence: 0.5, Box: entity.NormalizedRect{X: 0.3, Y: 0.3, Width: 0.1, Height: 0.1}},
		{Class: 2, Confidence: 0.8, Box: entity.NormalizedRect{X: 0.6, Y: 0.6, Width: 0.1, Height: 0.1}},
	}

	prev := len(NewSuppressor(0.0, 0.45, nil).Suppress(candidates))
	for _, threshold := range []float64{0.25, 0.45, 0.6, 0.9} {
		count := len(NewSuppressor(threshold, 0.45, nil).Suppress(candidates))
		require.LessOrEqual(t, count, prev)
		prev = count
	}
}

func TestSuppressor_OverlapKeepsStrongest(t *testing.T) {
	s := NewSuppressor(0.25, 0.45, nil)

	box := entity.NormalizedRect{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.3}
	shifted := entity.NormalizedRect{X: 0.12, Y: 0.12, Width: 0.3, Height: 0.3}

	candidates := []Candidate{
		{Class: 3, Confidence: 0.6, Box: shifted},
		{Class: 3, Confidence: 0.9, Box: box},
	}

	detections := s.Suppress(candidates)
	require.Len(t, detections, 1)
	require.InDelta(t, 0.9, detections[0].Confidence, 1e-9)
	require.Equal(t, "boots", detections[0].Label)
}

func TestSuppressor_NMSIsClassScoped(t *testing.T) {
	s := NewSuppressor(0.25, 0.45, nil)

	box := entity.NormalizedRect{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.3}
	candidates := []Candidate{
		{Class: 1, Confidence: 0.9, Box: box},
		{Class: 2, Confidence: 0.8, Box: box},
	}

	detections := s.Suppress(candidates)
	require.Len(t, detections, 2)
}

func TestSuppressor_Idempotence(t *testing.T) {
	s := NewSuppressor(0.25, 0.45, nil)

	candidates := []Candidate{
		{Class: 0, Confidence: 0.9, Box: entity.NormalizedRect{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.3}},
		{Class: 0, Confidence: 0.6, Box: entity.NormalizedRect{X: 0.12, Y: 0.12, Width: 0.3, Height: 0.3}},
		{Class: 1, Confidence: 0.7, Box: entity.NormalizedRect{X: 0.6, Y: 0.6, Width: 0.2, Height: 0.2}},
	}

	first := s.Suppress(candidates)

	again := make([]Candidate, 0, len(first))
	for _, det := range first {
		again = append(again, Candidate{
			Class:      labelIndex(t, det.Label),
			Confidence: det.Confidence,
			Box:        det.Box,
		})
	}

	second := s.Suppress(again)
	require.Equal(t, first, second)
}

func TestSuppressor_UnknownClassLabel(t *testing.T) {
	s := NewSuppressor(0.25, 0.45, nil)

	candidates := []Candidate{
		{Class: 9, Confidence: 0.9, Box: entity.NormalizedRect{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2}},
	}

	detections := s.Suppress(candidates)
	require.Len(t, detections, 1)
	require.Equal(t, "class_9", detections[0].Label)
}

func labelIndex(t *testing.T, label string) int {
	t.Helper()
	for i, name := range DefaultLabels {
		if name == label {
			return i
		}
	}
	t.Fatalf("unknown label %q", label)
	return -1
}
