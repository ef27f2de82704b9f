//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"gear-scan-bot/internal/domain/entity"
	"gear-scan-bot/internal/domain/port"
)

// YOLODetector заглушка локального детектора (сборка без OpenCV).
type YOLODetector struct {
	pipeline  *Pipeline
	inputSize int
}

// NewYOLODetector создаёт детектор-заглушку (без OpenCV).
func NewYOLODetector(modelPath string, pipeline *Pipeline, inputSize int) (*YOLODetector, error) {
	_ = modelPath
	return &YOLODetector{
		pipeline:  pipeline,
		inputSize: inputSize,
	}, nil
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error) {
	_ = ctx
	_ = imageData
	return nil, port.ErrInferenceUnavailable
}

// Close ничего не освобождает в сборке без тега gocv.
func (d *YOLODetector) Close() error {
	return nil
}

// Проверка реализации интерфейса
var _ port.Detector = (*YOLODetector)(nil)
