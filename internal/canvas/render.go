package canvas

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/infrastructure/raster"
)

// Веса смешивания изображения и маски в режиме рисования
const (
	ImageAlpha = 0.8
	MaskAlpha  = 0.2
)

// Оформление четырёхугольника в режиме кропа
const (
	EdgeWidth      = 3
	MarkerDiameter = 6
)

var (
	edgeColor   = color.RGBA{R: 255, A: 255}
	markerColor = color.RGBA{B: 255, A: 255}
)

// RenderFrame собирает кадр в координатах изображения
func (e *Engine) RenderFrame() (*image.RGBA, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.source == nil {
		return nil, entity.ErrNoDocument
	}
	if e.appMode == entity.ModeSplitting {
		return e.renderSplitting()
	}
	return e.renderDrawing()
}

func (e *Engine) renderDrawing() (*image.RGBA, error) {
	frame := e.mask.Composite(e.display, ImageAlpha, MaskAlpha)
	if e.effectiveTool() == entity.ToolNone {
		return frame, nil
	}

	overlay := raster.NewOverlay(frame)
	overlay.CursorRing(e.cursor.Image(), e.brushSize)
	if err := overlay.Apply(); err != nil {
		return nil, err
	}
	return frame, nil
}

func (e *Engine) renderSplitting() (*image.RGBA, error) {
	frame := raster.CloneImage(e.source)
	quad := e.quad.Quad()

	overlay := raster.NewOverlay(frame)
	for _, edge := range quad.Edges() {
		overlay.Segment(toPoint(edge[0]), toPoint(edge[1]), EdgeWidth, edgeColor)
	}
	for _, p := range quad {
		overlay.Disc(toPoint(p), MarkerDiameter, markerColor)
	}
	if err := overlay.Apply(); err != nil {
		return nil, err
	}
	return frame, nil
}

// RenderDisplay кадр, масштабированный под экран
func (e *Engine) RenderDisplay() (*image.RGBA, error) {
	frame, err := e.RenderFrame()
	if err != nil {
		return nil, err
	}

	scale := e.Scale()
	if scale == 1 {
		return frame, nil
	}

	b := frame.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), frame, b, xdraw.Src, nil)
	return out, nil
}

func toPoint(p image.Point) entity.Point {
	return entity.Pt(float64(p.X), float64(p.Y))
}
