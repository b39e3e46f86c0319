package entity

import "errors"

var (
	// ErrImageDecode файл существует, но не декодируется
	ErrImageDecode = errors.New("image decode failed")
	// ErrMissingFile файла нет по указанному пути
	ErrMissingFile = errors.New("file does not exist")
	// ErrDirectoryCreate не удалось создать выходной каталог
	ErrDirectoryCreate = errors.New("cannot create output directory")
	// ErrWrite не удалось записать патч, кроп или маску
	ErrWrite = errors.New("image write failed")
	// ErrMaskSizeMismatch размеры маски и изображения различаются
	ErrMaskSizeMismatch = errors.New("mask size does not match image size")
	// ErrNoDocument на холсте нет загруженного изображения
	ErrNoDocument = errors.New("no image loaded")
	// ErrInvalidScale масштаб отображения должен быть больше нуля
	ErrInvalidScale = errors.New("display scale must be positive")
)
