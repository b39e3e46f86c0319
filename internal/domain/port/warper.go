package port

import (
	"image"

	"mask-labeler/internal/domain/entity"
)

// Warper интерфейс перспективного преобразования
type Warper interface {
	// WarpPerspective отображает четырёхугольник src в dst и возвращает кадр размера size
	WarpPerspective(img image.Image, src, dst [4]entity.Point, size image.Point) (*image.RGBA, error)
}
