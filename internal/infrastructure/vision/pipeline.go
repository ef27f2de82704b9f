package vision

import (
	"gear-scan-bot/internal/domain/entity"
)

// Pipeline собирает полный проход по сырому выходу модели:
// разбор, приведение координат, подавление дублей.
// Наружу уходят только готовые детекции.
type Pipeline struct {
	decoder    *Decoder
	suppressor *Suppressor
}

// NewPipeline создаёт пайплайн для заданного формата выхода и порогов.
func NewPipeline(cfg DecoderConfig, confThreshold, iouThreshold float64, labels []string) *Pipeline {
	return &Pipeline{
		decoder:    NewDecoder(cfg),
		suppressor: NewSuppressor(confThreshold, iouThreshold, labels),
	}
}

// Run выполняет проход и возвращает итоговые детекции.
func (p *Pipeline) Run(out RawOutput) ([]entity.Detection, error) {
	candidates, err := p.decoder.Decode(out)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		box := candidates[i].Box
		if out.BottomLeftOrigin {
			box = FromBottomLeft(box)
		}
		box = ApplyOrientation(box, out.Orientation).Clamped()
		candidates[i].Box = box
	}

	return p.suppressor.Suppress(candidates), nil
}
