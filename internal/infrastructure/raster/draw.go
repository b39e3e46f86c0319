// Package raster реализует маску и геометрию кадра на чистом Go.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"mask-labeler/internal/domain/entity"
)

// kappa коэффициент приближения четверти окружности кубической кривой
const kappa = 0.5522847498

// halfPixel точки задают центры пикселей
const halfPixel = 0.5

// capsuleBounds область, которую может задеть отрезок толщины diameter
func capsuleBounds(a, b entity.Point, diameter float64) image.Rectangle {
	r := diameter / 2
	minX := math.Floor(math.Min(a.X, b.X)+halfPixel-r) - 1
	minY := math.Floor(math.Min(a.Y, b.Y)+halfPixel-r) - 1
	maxX := math.Ceil(math.Max(a.X, b.X)+halfPixel+r) + 1
	maxY := math.Ceil(math.Max(a.Y, b.Y)+halfPixel+r) + 1
	return image.Rect(int(minX), int(minY), int(maxX), int(maxY))
}

// rasterizeCapsule строит путь отрезка с круглыми концами в растеризаторе,
// начало которого совпадает с точкой origin изображения.
func rasterizeCapsule(a, b entity.Point, diameter float64, clip image.Rectangle) *vector.Rasterizer {
	z := vector.NewRasterizer(clip.Dx(), clip.Dy())
	r := diameter / 2

	ox, oy := float64(clip.Min.X)-halfPixel, float64(clip.Min.Y)-halfPixel
	ax, ay := a.X-ox, a.Y-oy
	bx, by := b.X-ox, b.Y-oy

	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		dx, dy = 1, 0
	} else {
		dx, dy = dx/length, dy/length
	}
	// нормаль и направление, уже умноженные на радиус
	nx, ny := -dy*r, dx*r
	tx, ty := dx*r, dy*r

	arc := func(cx, cy, ux, uy, vx, vy float64) {
		z.CubeTo(
			float32(cx+ux+kappa*vx), float32(cy+uy+kappa*vy),
			float32(cx+vx+kappa*ux), float32(cy+vy+kappa*uy),
			float32(cx+vx), float32(cy+vy),
		)
	}

	z.MoveTo(float32(ax+nx), float32(ay+ny))
	z.LineTo(float32(bx+nx), float32(by+ny))
	arc(bx, by, nx, ny, tx, ty)
	arc(bx, by, tx, ty, -nx, -ny)
	z.LineTo(float32(ax-nx), float32(ay-ny))
	arc(ax, ay, -nx, -ny, -tx, -ty)
	arc(ax, ay, -tx, -ty, nx, ny)
	z.ClosePath()
	return z
}

// PaintSegment закрашивает отрезок без сглаживания: пиксель меняется целиком,
// если покрыт хотя бы наполовину. Одинаковые отрезки всегда дают один и тот же набор пикселей.
func PaintSegment(dst *image.RGBA, a, b entity.Point, diameter int, c color.RGBA) {
	if diameter <= 0 {
		return
	}
	// направление не должно влиять на набор пикселей
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	clip := capsuleBounds(a, b, float64(diameter)).Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}

	z := rasterizeCapsule(a, b, float64(diameter), clip)
	coverage := image.NewAlpha(image.Rect(0, 0, clip.Dx(), clip.Dy()))
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < clip.Dy(); y++ {
		for x := 0; x < clip.Dx(); x++ {
			if coverage.Pix[y*coverage.Stride+x] < 0x80 {
				continue
			}
			i := dst.PixOffset(clip.Min.X+x, clip.Min.Y+y)
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = c.A
		}
	}
}
