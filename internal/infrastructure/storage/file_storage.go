package storage

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
	"mask-labeler/internal/infrastructure/raster"
)

// FileImageStorage читает и пишет изображения на диске.
// Формат записи выбирается по расширению файла.
type FileImageStorage struct{}

// NewFileImageStorage создаёт файловое хранилище изображений
func NewFileImageStorage() *FileImageStorage {
	return &FileImageStorage{}
}

// Load читает изображение и приводит его к RGB
func (s *FileImageStorage) Load(path string) (*image.RGBA, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", entity.ErrMissingFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", entity.ErrImageDecode, path)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrImageDecode, path, err)
	}
	return raster.CloneImage(img), nil
}

// Write сохраняет изображение. Родительский каталог должен существовать.
func (s *FileImageStorage) Write(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("%w: %s: %v", entity.ErrWrite, path, err)
	}
	return nil
}

// Exists проверяет, что по пути лежит обычный файл
func (s *FileImageStorage) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Проверка реализации интерфейса
var _ port.ImageStorage = (*FileImageStorage)(nil)
