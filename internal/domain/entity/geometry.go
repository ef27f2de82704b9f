package entity

// NormalizedRect представляет прямоугольник в нормализованных координатах [0,1]
// с началом в левом верхнем углу изображения.
type NormalizedRect struct {
	X      float64 // координата X левого верхнего угла
	Y      float64 // координата Y левого верхнего угла
	Width  float64 // ширина, доля от ширины изображения
	Height float64 // высота, доля от высоты изображения
}

// Clamped обрезает прямоугольник по границам единичного квадрата.
func (r NormalizedRect) Clamped() NormalizedRect {
	out := r
	if out.X < 0 {
		out.Width += out.X
		out.X = 0
	}
	if out.Y < 0 {
		out.Height += out.Y
		out.Y = 0
	}
	if out.X+out.Width > 1 {
		out.Width = 1 - out.X
	}
	if out.Y+out.Height > 1 {
		out.Height = 1 - out.Y
	}
	return out
}

// Valid сообщает, остался ли прямоугольник корректным после обрезки.
func (r NormalizedRect) Valid() bool {
	return r.Width > 0 && r.Height > 0 &&
		r.X >= 0 && r.Y >= 0 &&
		r.X+r.Width <= 1 && r.Y+r.Height <= 1
}

// Center возвращает координаты центра прямоугольника.
func (r NormalizedRect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Detection представляет одно подтверждённое срабатывание детектора.
type Detection struct {
	Label      string         // имя класса из словаря модели
	Confidence float64        // уверенность в диапазоне [0,1]
	Box        NormalizedRect // рамка в каноническом пространстве
}

// Orientation — одна из восьми канонических ориентаций кадра,
// которую сообщает слой инференса.
type Orientation int

const (
	OrientationUp Orientation = iota
	OrientationUpMirrored
	OrientationDown
	OrientationDownMirrored
	OrientationLeft
	OrientationLeftMirrored
	OrientationRight
	OrientationRightMirrored
)
