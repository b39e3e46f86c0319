package port

import (
	"image"

	"mask-labeler/internal/domain/entity"
)

// DefectOracle отвечает, есть ли дефект в прямоугольной области
type DefectOracle interface {
	// IsDefect true, если хотя бы один пиксель области помечен как дефект
	IsDefect(region image.Rectangle) bool
}

// MaskLayer интерфейс битовой маски поверх изображения
type MaskLayer interface {
	DefectOracle

	// Bounds возвращает размеры маски
	Bounds() image.Rectangle

	// Stroke рисует отрезок кистью заданного диаметра прямо в маске
	Stroke(from, to entity.Point, diameter int, tool entity.DrawingTool)

	// Composite смешивает базовое изображение и маску: alphaImage*base + alphaMask*mask
	Composite(base image.Image, alphaImage, alphaMask float64) *image.RGBA

	// Image возвращает копию маски в RGB
	Image() *image.RGBA

	// Clone возвращает независимую копию слоя
	Clone() MaskLayer

	// Close освобождает ресурсы слоя
	Close() error
}

// MaskFactory создаёт слой маски. Если src == nil, маска заполняется нормой.
type MaskFactory func(size image.Point, src image.Image) (MaskLayer, error)
