package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPipeline_RunFused(t *testing.T) {
	p := NewPipeline(DecoderConfig{Layout: LayoutFused, NumClasses: 2}, 0.25, 0.45, DefaultLabels)

	data := []float32{0.5, 0.5, 0.2, 0.2, 0.1, 0.9}

	detections, err := p.Run(RawOutput{Fused: data})
	require.NoError(t, err)
	require.Len(t, detections, 1)
	require.Equal(t, "helmet", detections[0].Label)
	require.InDelta(t, 0.4, detections[0].Box.X, 1e-6)
}

func TestPipeline_RunAppliesBottomLeftOrigin(t *testing.T) {
	p := NewPipeline(DecoderConfig{Layout: LayoutFused, NumClasses: 1}, 0.25, 0.45, DefaultLabels)

	// Центр (0.5, 0.3): в канонической системе верх рамки был бы y=0.2.
	data := []float32{0.5, 0.3, 0.2, 0.2, 0.9}

	detections, err := p.Run(RawOutput{Fused: data, BottomLeftOrigin: true})
	require.NoError(t, err)
	require.Len(t, detections, 1)
	require.InDelta(t, 0.6, detections[0].Box.Y, 1e-6)
}

func TestPipeline_RunPropagatesShapeError(t *testing.T) {
	p := NewPipeline(DecoderConfig{Layout: LayoutFused, NumClasses: 2}, 0.25, 0.45, DefaultLabels)

	_, err := p.Run(RawOutput{Fused: []float32{1, 2, 3}})
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestPipeline_EmptyResultIsValid(t *testing.T) {
	p := NewPipeline(DecoderConfig{Layout: LayoutSplit, NumClasses: 2}, 0.25, 0.45, DefaultLabels)

	detections, err := p.Run(RawOutput{
		Scores: [][]float64{{0.1, 0.05}},
		Boxes:  [][]float64{{0.1, 0.1, 0.2, 0.2}},
	})
	require.NoError(t, err)
	require.Empty(t, detections)
}
