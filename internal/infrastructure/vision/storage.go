//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	"gocv.io/x/gocv"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
)

// Storage чтение и запись через imread/imwrite
type Storage struct{}

// NewStorage создаёт Storage
func NewStorage() *Storage {
	return &Storage{}
}

// Load читает цветное изображение
func (s *Storage) Load(path string) (*image.RGBA, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", entity.ErrMissingFile, path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("%w: %s", entity.ErrImageDecode, path)
	}
	return matToRGBA(mat), nil
}

// Write сохраняет изображение, формат по расширению
func (s *Storage) Write(path string, img image.Image) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", entity.ErrWrite, path, err)
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("%w: %s", entity.ErrWrite, path)
	}
	return nil
}

var _ port.ImageStorage = (*Storage)(nil)
