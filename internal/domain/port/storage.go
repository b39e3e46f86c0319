package port

import "image"

// ImageLoader читает изображения с диска
type ImageLoader interface {
	// Load возвращает RGB-изображение. entity.ErrMissingFile если файла нет,
	// entity.ErrImageDecode если файл не декодируется.
	Load(path string) (*image.RGBA, error)
}

// ImageWriter записывает изображения, не создавая родительские каталоги
type ImageWriter interface {
	Write(path string, img image.Image) error
}

// ImageStorage загрузка и запись вместе
type ImageStorage interface {
	ImageLoader
	ImageWriter
}
