package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
)

var (
	// DefectColor цвет кисти: зелёный, синий канал равен нулю
	DefectColor = color.RGBA{G: 255, A: 255}
	// NormalColor цвет ластика и пустой маски
	NormalColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// MaskLayer маска в памяти процесса
type MaskLayer struct {
	img *image.RGBA
}

// NewMaskLayer создаёт маску размера size. Если src != nil, маска копируется из src.
func NewMaskLayer(size image.Point, src image.Image) (*MaskLayer, error) {
	img := image.NewRGBA(image.Rectangle{Max: size})
	if src == nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(NormalColor), image.Point{}, draw.Src)
		return &MaskLayer{img: img}, nil
	}

	if src.Bounds().Size() != size {
		return nil, fmt.Errorf("%w: mask %v, image %v", entity.ErrMaskSizeMismatch, src.Bounds().Size(), size)
	}
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return &MaskLayer{img: img}, nil
}

// NewMask фабрика для port.MaskFactory
func NewMask(size image.Point, src image.Image) (port.MaskLayer, error) {
	return NewMaskLayer(size, src)
}

// Bounds возвращает размеры маски
func (m *MaskLayer) Bounds() image.Rectangle {
	return m.img.Bounds()
}

// Stroke рисует отрезок кистью или ластиком
func (m *MaskLayer) Stroke(from, to entity.Point, diameter int, tool entity.DrawingTool) {
	switch tool {
	case entity.ToolBrush:
		PaintSegment(m.img, from, to, diameter, DefectColor)
	case entity.ToolEraser:
		PaintSegment(m.img, from, to, diameter, NormalColor)
	}
}

// IsDefect проверяет синий канал (нулевой в порядке BGR) на ноль
func (m *MaskLayer) IsDefect(region image.Rectangle) bool {
	r := region.Intersect(m.img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := m.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.img.Pix[i+2] == 0 {
				return true
			}
			i += 4
		}
	}
	return false
}

// Composite смешивает base и маску с насыщением, как addWeighted в OpenCV
func (m *MaskLayer) Composite(base image.Image, alphaImage, alphaMask float64) *image.RGBA {
	b := ToRGBA(base)
	out := image.NewRGBA(m.img.Bounds())
	r := out.Bounds().Intersect(b.Bounds())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		bi := b.PixOffset(r.Min.X, y)
		mi := m.img.PixOffset(r.Min.X, y)
		oi := out.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			for c := 0; c < 3; c++ {
				out.Pix[oi+c] = saturate(alphaImage*float64(b.Pix[bi+c]) + alphaMask*float64(m.img.Pix[mi+c]))
			}
			out.Pix[oi+3] = 0xff
			bi += 4
			mi += 4
			oi += 4
		}
	}
	return out
}

// Image возвращает копию маски
func (m *MaskLayer) Image() *image.RGBA {
	return cloneRGBA(m.img)
}

// Clone возвращает независимую копию слоя
func (m *MaskLayer) Clone() port.MaskLayer {
	return &MaskLayer{img: cloneRGBA(m.img)}
}

// Close ничего не освобождает: память управляется сборщиком мусора
func (m *MaskLayer) Close() error {
	return nil
}

func saturate(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// ToRGBA приводит изображение к *image.RGBA с началом в (0,0)
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	return CloneImage(img)
}

// CloneImage копирует изображение в новый *image.RGBA с началом в (0,0)
func CloneImage(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

var _ port.MaskLayer = (*MaskLayer)(nil)
