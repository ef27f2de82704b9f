package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	// Декодеры входных форматов для image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"gear-scan-bot/internal/domain/entity"
)

// Overlay рисует рамки детекций поверх исходного кадра.
type Overlay struct {
	Stroke int
}

// NewOverlay создаёт рендерер рамок.
func NewOverlay() *Overlay {
	return &Overlay{Stroke: 3}
}

// Draw возвращает JPEG с зелёными рамками вокруг детекций.
func (o *Overlay) Draw(imageData []byte, detections []entity.Detection) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	nrgba := imaging.Clone(img)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	green := color.NRGBA{G: 255, A: 255}
	for _, det := range detections {
		drawBox(nrgba, det.Box, w, h, green, o.Stroke)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, nrgba, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	return buf.Bytes(), nil
}

func boxToPixels(box entity.NormalizedRect, w, h int) (int, int, int, int) {
	x0 := int(box.X*float64(w) + 0.5)
	y0 := int(box.Y*float64(h) + 0.5)
	x1 := int((box.X+box.Width)*float64(w) + 0.5)
	y1 := int((box.Y+box.Height)*float64(h) + 0.5)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func drawBox(img *image.NRGBA, box entity.NormalizedRect, w, h int, c color.NRGBA, stroke int) {
	x0, y0, x1, y1 := boxToPixels(box, w, h)
	for s := 0; s < stroke; s++ {
		drawHLine(img, y0+s, x0, x1, c)
		drawHLine(img, y1-1-s, x0, x1, c)
		drawVLine(img, x0+s, y0, y1, c)
		drawVLine(img, x1-1-s, y0, y1, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	for y := y0; y < y1; y++ {
		i := y*img.Stride + x*4
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}
