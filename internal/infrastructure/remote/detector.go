package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"gear-scan-bot/internal/domain/entity"
	"gear-scan-bot/internal/domain/port"
	"gear-scan-bot/internal/infrastructure/vision"
)

// inferenceResponse ответ удалённого бэкенда: раздельные таблицы
// оценок и боксов плюс метаданные системы координат.
type inferenceResponse struct {
	Scores      [][]float64 `json:"scores"`
	Boxes       [][]float64 `json:"boxes"`
	Origin      string      `json:"origin"`
	Orientation int         `json:"orientation"`
}

// Detector отправляет кадр на удалённый inference-сервис и прогоняет
// ответ через общий пайплайн разбора.
type Detector struct {
	client   *http.Client
	url      string
	pipeline *vision.Pipeline
}

// NewDetector создаёт удалённый детектор.
func NewDetector(url string, pipeline *vision.Pipeline) *Detector {
	return &Detector{
		client:   &http.Client{Timeout: 30 * time.Second},
		url:      url,
		pipeline: pipeline,
	}
}

// Detect загружает кадр и возвращает детекции.
func (d *Detector) Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", "capture.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrInferenceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", port.ErrInferenceUnavailable, resp.StatusCode)
	}

	var parsed inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse inference response: %w", err)
	}

	return d.pipeline.Run(vision.RawOutput{
		Scores:           parsed.Scores,
		Boxes:            parsed.Boxes,
		BottomLeftOrigin: parsed.Origin == "bottom-left",
		Orientation:      entity.Orientation(parsed.Orientation),
	})
}

// Проверка реализации интерфейса
var _ port.Detector = (*Detector)(nil)
