package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"

	"mask-labeler/internal/domain/entity"
)

// Штрихи курсора: 4 пикселя штрих, 2 пробел
const (
	cursorDash = 4.0
	cursorGap  = 2.0
)

var (
	ringWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ringBlack = color.RGBA{A: 255}
)

// Overlay сглаженные пометки поверх кадра. Они рисуются на прозрачном слое gg
// и накладываются на кадр в Apply; пиксели вне пометок не меняются.
type Overlay struct {
	dst *image.RGBA
	dc  *gg.Context
	err error
}

// NewOverlay создаёт слой размером с кадр
func NewOverlay(dst *image.RGBA) *Overlay {
	b := dst.Bounds()
	return &Overlay{dst: dst, dc: gg.NewContext(b.Dx(), b.Dy())}
}

// Segment отрезок шириной width
func (o *Overlay) Segment(a, b entity.Point, width float64, c color.Color) {
	if width <= 0 {
		return
	}
	o.dc.SetColor(c)
	o.dc.SetLineWidth(width)
	o.dc.SetLineCap(gg.LineCapRound)
	o.dc.DrawLine(a.X+halfPixel, a.Y+halfPixel, b.X+halfPixel, b.Y+halfPixel)
	o.keep(o.dc.Stroke())
}

// Disc закрашенный круг диаметра diameter с центром в p
func (o *Overlay) Disc(p entity.Point, diameter float64, c color.Color) {
	if diameter <= 0 {
		return
	}
	o.dc.SetColor(c)
	o.dc.DrawCircle(p.X+halfPixel, p.Y+halfPixel, diameter/2)
	o.keep(o.dc.Fill())
}

// CursorRing кольцо курсора толщиной 1px: белое сплошное и поверх чёрное
// пунктирное, чтобы кольцо было видно на любом фоне.
func (o *Overlay) CursorRing(center image.Point, size int) {
	if size <= 0 {
		return
	}
	cx, cy := float64(center.X)+halfPixel, float64(center.Y)+halfPixel
	r := float64(size) / 2

	o.dc.SetLineWidth(1)
	o.dc.SetColor(ringWhite)
	o.dc.DrawCircle(cx, cy, r)
	o.keep(o.dc.Stroke())

	// программный растеризатор gg не режет путь на штрихи,
	// поэтому каждый штрих шаблона рисуется отдельной дугой
	dash := gg.NewDash(cursorDash, cursorGap)
	circumference := 2 * math.Pi * r
	o.dc.SetColor(ringBlack)
	for s, i := dash.NormalizedOffset(), 0; s < circumference; i++ {
		length := dash.Array[i%len(dash.Array)]
		if i%2 == 0 {
			end := math.Min(s+length, circumference)
			o.dc.DrawArc(cx, cy, r, s/r, end/r)
			o.keep(o.dc.Stroke())
		}
		s += length
	}
}

// keep запоминает первую ошибку отрисовки
func (o *Overlay) keep(err error) {
	if err != nil && o.err == nil {
		o.err = err
	}
}

// Apply накладывает слой на кадр и освобождает контекст
func (o *Overlay) Apply() error {
	defer o.dc.Close()
	if o.err != nil {
		return fmt.Errorf("draw overlay: %w", o.err)
	}
	if err := o.dc.FlushGPU(); err != nil {
		return fmt.Errorf("draw overlay: %w", err)
	}

	layer, ok := o.dc.Image().(*image.RGBA)
	if !ok {
		return fmt.Errorf("draw overlay: unexpected layer type %T", o.dc.Image())
	}
	// пиксели gg хранятся без предумножения альфы
	src := &image.NRGBA{Pix: layer.Pix, Stride: layer.Stride, Rect: layer.Rect}
	draw.Draw(o.dst, o.dst.Bounds(), src, image.Point{}, draw.Over)
	return nil
}
