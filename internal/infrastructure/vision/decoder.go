package vision

import (
	"errors"
	"math"

	"gear-scan-bot/internal/domain/entity"
)

// ErrInvalidShape возвращается, когда размер выхода модели не согласуется
// с конфигурацией декодера. Жёсткая ошибка, частичный разбор не выполняется.
var ErrInvalidShape = errors.New("model output has invalid shape")

// Layout описывает формат выхода модели. Выбирается один раз при настройке.
type Layout int

const (
	// LayoutFused — один буфер [1, 4+C, A]: координаты центра и сырые
	// оценки классов вперемешку, как отдаёт YOLO.
	LayoutFused Layout = iota
	// LayoutSplit — отдельные таблицы оценок [A][C] и боксов [A][4]
	// с уже нормализованными top-left координатами.
	LayoutSplit
)

// DecoderConfig параметры разбора выхода модели.
type DecoderConfig struct {
	Layout     Layout
	NumClasses int
	// InputSize — сторона входа модели в пикселях (например 640).
	// Ноль означает, что координаты уже нормализованы.
	InputSize int
	// RawLogits — оценки fused-буфера не прошли активацию,
	// перед сравнением к ним применяется сигмоида.
	RawLogits bool
}

// RawOutput сырой выход модели до какой-либо фильтрации.
type RawOutput struct {
	Fused  []float32
	Scores [][]float64
	Boxes  [][]float64
	// BottomLeftOrigin — источник считает координаты от нижнего левого угла.
	BottomLeftOrigin bool
	// Orientation кадра, как его сообщил источник.
	Orientation entity.Orientation
}

// Candidate кандидат детекции до подавления. Не выходит за пределы пакета
// vision иначе как через Suppressor.
type Candidate struct {
	Anchor     int
	Class      int
	Confidence float64
	Box        entity.NormalizedRect
}

// Decoder разбирает сырой выход модели в список кандидатов.
type Decoder struct {
	cfg DecoderConfig
}

// NewDecoder создаёт декодер для заданного формата выхода.
func NewDecoder(cfg DecoderConfig) *Decoder {
	return &Decoder{cfg: cfg}
}

// Decode превращает сырой выход в неотфильтрованных кандидатов.
// Кандидаты с вырожденным боксом после клампа молча отбрасываются.
func (d *Decoder) Decode(out RawOutput) ([]Candidate, error) {
	switch d.cfg.Layout {
	case LayoutFused:
		return d.decodeFused(out.Fused)
	case LayoutSplit:
		return d.decodeSplit(out.Scores, out.Boxes)
	default:
		return nil, ErrInvalidShape
	}
}

func (d *Decoder) decodeFused(data []float32) ([]Candidate, error) {
	channels := 4 + d.cfg.NumClasses
	if d.cfg.NumClasses <= 0 || len(data) == 0 || len(data)%channels != 0 {
		return nil, ErrInvalidShape
	}
	anchors := len(data) / channels

	// value(ch, a): буфер лежит каналами подряд, якоря — внутри канала.
	value := func(ch, a int) float64 {
		return float64(data[ch*anchors+a])
	}

	scale := 1.0
	if d.cfg.InputSize > 0 {
		scale = 1.0 / float64(d.cfg.InputSize)
	}

	candidates := make([]Candidate, 0, anchors)
	for a := 0; a < anchors; a++ {
		bestClass := 0
		bestScore := value(4, a)
		for c := 1; c < d.cfg.NumClasses; c++ {
			if s := value(4+c, a); s > bestScore {
				bestScore = s
				bestClass = c
			}
		}
		if d.cfg.RawLogits {
			bestScore = sigmoid(bestScore)
		}

		cx := value(0, a) * scale
		cy := value(1, a) * scale
		w := value(2, a) * scale
		h := value(3, a) * scale

		box := entity.NormalizedRect{
			X:      cx - w/2,
			Y:      cy - h/2,
			Width:  w,
			Height: h,
		}.Clamped()
		if !box.Valid() {
			continue
		}

		candidates = append(candidates, Candidate{
			Anchor:     a,
			Class:      bestClass,
			Confidence: bestScore,
			Box:        box,
		})
	}

	return candidates, nil
}

func (d *Decoder) decodeSplit(scores, boxes [][]float64) ([]Candidate, error) {
	if len(scores) == 0 || len(scores) != len(boxes) {
		return nil, ErrInvalidShape
	}

	candidates := make([]Candidate, 0, len(scores))
	for a := range scores {
		if len(scores[a]) != d.cfg.NumClasses || len(boxes[a]) != 4 {
			return nil, ErrInvalidShape
		}

		bestClass := 0
		bestScore := scores[a][0]
		for c := 1; c < d.cfg.NumClasses; c++ {
			if scores[a][c] > bestScore {
				bestScore = scores[a][c]
				bestClass = c
			}
		}

		box := entity.NormalizedRect{
			X:      boxes[a][0],
			Y:      boxes[a][1],
			Width:  boxes[a][2],
			Height: boxes[a][3],
		}.Clamped()
		if !box.Valid() {
			continue
		}

		candidates = append(candidates, Candidate{
			Anchor:     a,
			Class:      bestClass,
			Confidence: bestScore,
			Box:        box,
		})
	}

	return candidates, nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
