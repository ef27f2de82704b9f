package vision

import (
	"gear-scan-bot/internal/domain/entity"
)

// FromBottomLeft переводит прямоугольник из системы с началом в нижнем
// левом углу в каноническую (верхний левый угол). Применяется ровно один
// раз на границе адаптера, если источник так отдаёт координаты.
func FromBottomLeft(r entity.NormalizedRect) entity.NormalizedRect {
	r.Y = 1 - r.Y - r.Height
	return r
}

// ApplyOrientation приводит прямоугольник, найденный в сыром кадре,
// к ориентации отображения. Повороты на 90° меняют ширину и высоту местами.
func ApplyOrientation(r entity.NormalizedRect, o entity.Orientation) entity.NormalizedRect {
	switch o {
	case entity.OrientationUpMirrored:
		return entity.NormalizedRect{X: 1 - r.X - r.Width, Y: r.Y, Width: r.Width, Height: r.Height}
	case entity.OrientationDown:
		return entity.NormalizedRect{X: 1 - r.X - r.Width, Y: 1 - r.Y - r.Height, Width: r.Width, Height: r.Height}
	case entity.OrientationDownMirrored:
		return entity.NormalizedRect{X: r.X, Y: 1 - r.Y - r.Height, Width: r.Width, Height: r.Height}
	case entity.OrientationLeftMirrored:
		return entity.NormalizedRect{X: r.Y, Y: r.X, Width: r.Height, Height: r.Width}
	case entity.OrientationRight:
		return entity.NormalizedRect{X: 1 - r.Y - r.Height, Y: r.X, Width: r.Height, Height: r.Width}
	case entity.OrientationRightMirrored:
		return entity.NormalizedRect{X: 1 - r.Y - r.Height, Y: 1 - r.X - r.Width, Width: r.Height, Height: r.Width}
	case entity.OrientationLeft:
		return entity.NormalizedRect{X: r.Y, Y: 1 - r.X - r.Width, Width: r.Height, Height: r.Width}
	default:
		return r
	}
}
