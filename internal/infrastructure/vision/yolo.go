//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"gear-scan-bot/internal/domain/entity"
	"gear-scan-bot/internal/domain/port"
)

// YOLODetector запускает локальную YOLO-модель через OpenCV DNN.
type YOLODetector struct {
	net       gocv.Net
	pipeline  *Pipeline
	inputSize int
}

// NewYOLODetector загружает модель и подготавливает пайплайн разбора.
func NewYOLODetector(modelPath string, pipeline *Pipeline, inputSize int) (*YOLODetector, error) {
	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model from %s", modelPath)
	}
	return &YOLODetector{
		net:       net,
		pipeline:  pipeline,
		inputSize: inputSize,
	}, nil
}

// Detect прогоняет изображение через модель и возвращает детекции.
func (d *YOLODetector) Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	blob := gocv.BlobFromImage(mat, 1.0/255.0,
		image.Pt(d.inputSize, d.inputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("failed to read model output: %w", err)
	}

	// Копируем буфер: после Close данные Mat недействительны.
	fused := make([]float32, len(data))
	copy(fused, data)

	return d.pipeline.Run(RawOutput{Fused: fused})
}

// Close освобождает ресурсы модели.
func (d *YOLODetector) Close() error {
	return d.net.Close()
}

// Проверка реализации интерфейса
var _ port.Detector = (*YOLODetector)(nil)
