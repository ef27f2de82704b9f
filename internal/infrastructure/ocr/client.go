package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"gear-scan-bot/internal/domain/port"
)

// ocrResponse ответ OCR-сервиса: распознанные строки сверху вниз.
type ocrResponse struct {
	Lines []string `json:"lines"`
}

// Client отправляет кадр на OCR-сервис и возвращает строки текста.
type Client struct {
	client *http.Client
	url    string
}

// NewClient создаёт клиент OCR-сервиса.
func NewClient(url string) *Client {
	return &Client{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    url,
	}
}

// RecognizeLines возвращает строки в порядке чтения.
// Строки обрезаются по пробелам, пустые отбрасываются.
func (c *Client) RecognizeLines(ctx context.Context, imageData []byte) ([]string, error) {
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

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr request failed: status %d", resp.StatusCode)
	}

	var parsed ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse ocr response: %w", err)
	}

	lines := make([]string, 0, len(parsed.Lines))
	for _, line := range parsed.Lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// Проверка реализации интерфейса
var _ port.TextRecognizer = (*Client)(nil)
