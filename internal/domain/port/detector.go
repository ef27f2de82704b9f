package port

import (
	"context"
	"errors"

	"gear-scan-bot/internal/domain/entity"
)

// ErrInferenceUnavailable возвращается, когда модель или её бэкенд недоступны.
// Контроллер превращает эту ошибку в сообщение на экране проверки,
// а не в падение сценария.
var ErrInferenceUnavailable = errors.New("inference backend is not available")

// Detector интерфейс детектора объектов
type Detector interface {
	// Detect анализирует изображение и возвращает итоговые детекции
	// в каноническом нормализованном пространстве.
	// Пустой список — корректный результат, а не ошибка.
	Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error)
}
