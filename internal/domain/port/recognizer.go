package port

import "context"

// TextRecognizer интерфейс распознавателя текста
type TextRecognizer interface {
	// RecognizeLines возвращает строки текста в порядке следования на снимке.
	// Строки уже обрезаны от пробелов, пустые строки исключены.
	RecognizeLines(ctx context.Context, imageData []byte) ([]string, error)
}
