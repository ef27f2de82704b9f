package vision

import (
	"fmt"
	"math"
	"sort"

	"gear-scan-bot/internal/domain/entity"
)

// DefaultLabels словарь классов модели в порядке обучения.
var DefaultLabels = []string{"flip-flops", "helmet", "glove", "boots"}

// Suppressor фильтрует кандидатов по уверенности и подавляет дубли
// жадным NMS в пределах одного класса.
type Suppressor struct {
	ConfThreshold float64
	IoUThreshold  float64
	Labels        []string
}

// NewSuppressor создаёт подавитель с порогами и таблицей имён классов.
func NewSuppressor(confThreshold, iouThreshold float64, labels []string) *Suppressor {
	if labels == nil {
		labels = DefaultLabels
	}
	return &Suppressor{
		ConfThreshold: confThreshold,
		IoUThreshold:  iouThreshold,
		Labels:        labels,
	}
}

// Suppress возвращает итоговые детекции. Пустой список — валидный результат.
func (s *Suppressor) Suppress(candidates []Candidate) []entity.Detection {
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Confidence >= s.ConfThreshold {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Confidence > kept[j].Confidence
	})

	suppressed := make([]bool, len(kept))
	detections := make([]entity.Detection, 0, len(kept))
	for i := range kept {
		if suppressed[i] {
			continue
		}
		detections = append(detections, entity.Detection{
			Label:      s.label(kept[i].Class),
			Confidence: kept[i].Confidence,
			Box:        kept[i].Box,
		})
		for j := i + 1; j < len(kept); j++ {
			if suppressed[j] || kept[j].Class != kept[i].Class {
				continue
			}
			if IoU(kept[i].Box, kept[j].Box) > s.IoUThreshold {
				suppressed[j] = true
			}
		}
	}

	return detections
}

func (s *Suppressor) label(class int) string {
	if class >= 0 && class < len(s.Labels) {
		return s.Labels[class]
	}
	return fmt.Sprintf("class_%d", class)
}

// IoU считает пересечение-над-объединением двух прямоугольников.
// Для непересекающихся боксов результат строго 0.
func IoU(a, b entity.NormalizedRect) float64 {
	left := math.Max(a.X, b.X)
	top := math.Max(a.Y, b.Y)
	right := math.Min(a.X+a.Width, b.X+b.Width)
	bottom := math.Min(a.Y+a.Height, b.Y+b.Height)

	if right <= left || bottom <= top {
		return 0
	}

	inter := (right - left) * (bottom - top)
	union := a.Width*a.Height + b.Width*b.Height - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
