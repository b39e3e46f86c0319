//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
	"mask-labeler/internal/infrastructure/raster"
)

var (
	defectColor = color.RGBA{G: 255, A: 255}
	normalColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// MaskLayer маска в gocv.Mat (8UC3, порядок каналов BGR)
type MaskLayer struct {
	mat gocv.Mat
}

// NewMaskLayer создаёт маску размера size, копируя src если он задан
func NewMaskLayer(size image.Point, src image.Image) (*MaskLayer, error) {
	if src == nil {
		mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), size.Y, size.X, gocv.MatTypeCV8UC3)
		return &MaskLayer{mat: mat}, nil
	}

	if src.Bounds().Size() != size {
		return nil, fmt.Errorf("%w: mask %v, image %v", entity.ErrMaskSizeMismatch, src.Bounds().Size(), size)
	}
	mat, err := gocv.ImageToMatRGB(src)
	if err != nil {
		return nil, fmt.Errorf("convert mask: %w", err)
	}
	return &MaskLayer{mat: mat}, nil
}

// NewMask фабрика для port.MaskFactory
func NewMask(size image.Point, src image.Image) (port.MaskLayer, error) {
	return NewMaskLayer(size, src)
}

// Bounds возвращает размеры маски
func (m *MaskLayer) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.mat.Cols(), m.mat.Rows())
}

// Stroke рисует отрезок толщиной diameter (концы у cv::line круглые)
func (m *MaskLayer) Stroke(from, to entity.Point, diameter int, tool entity.DrawingTool) {
	var c color.RGBA
	switch tool {
	case entity.ToolBrush:
		c = defectColor
	case entity.ToolEraser:
		c = normalColor
	default:
		return
	}
	gocv.Line(&m.mat, from.Image(), to.Image(), c, diameter)
}

// IsDefect ищет ноль в канале 0 (синий в BGR) внутри области
func (m *MaskLayer) IsDefect(region image.Rectangle) bool {
	r := region.Intersect(m.Bounds())
	if r.Empty() {
		return false
	}

	roi := m.mat.Region(r)
	defer roi.Close()

	blue := gocv.NewMat()
	defer blue.Close()
	gocv.ExtractChannel(roi, &blue, 0)

	minVal, _, _, _ := gocv.MinMaxLoc(blue)
	return minVal == 0
}

// Composite смешивает base и маску через addWeighted
func (m *MaskLayer) Composite(base image.Image, alphaImage, alphaMask float64) *image.RGBA {
	src, err := gocv.ImageToMatRGB(base)
	if err != nil {
		return raster.CloneImage(base)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.AddWeighted(src, alphaImage, m.mat, alphaMask, 0, &dst)

	return matToRGBA(dst)
}

// Image возвращает копию маски в RGB
func (m *MaskLayer) Image() *image.RGBA {
	return matToRGBA(m.mat)
}

// Clone возвращает независимую копию слоя
func (m *MaskLayer) Clone() port.MaskLayer {
	return &MaskLayer{mat: m.mat.Clone()}
}

// Close освобождает память OpenCV
func (m *MaskLayer) Close() error {
	return m.mat.Close()
}

// matToRGBA переводит BGR Mat в *image.RGBA; пустой Mat даёт пустое изображение
func matToRGBA(mat gocv.Mat) *image.RGBA {
	img, err := mat.ToImage()
	if err != nil {
		return image.NewRGBA(image.Rect(0, 0, mat.Cols(), mat.Rows()))
	}
	return raster.ToRGBA(img)
}

// errEmptyMat OpenCV вернул пустую матрицу
var errEmptyMat = errors.New("empty mat")

var _ port.MaskLayer = (*MaskLayer)(nil)
