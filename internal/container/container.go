package container

import (
	"log"

	app "mask-labeler/internal/application"
	"mask-labeler/internal/domain/port"
	"mask-labeler/internal/infrastructure/raster"
	"mask-labeler/internal/infrastructure/storage"
	"mask-labeler/internal/infrastructure/vision"
)

type Container struct {
	Backend         string
	UserService     *app.UserService
	LabelingService *app.LabelingService
}

// RasterBackend реализации портов на чистом Go
func RasterBackend() *vision.Backend {
	return &vision.Backend{
		Name:    "raster",
		NewMask: raster.NewMask,
		Warper:  raster.NewWarper(),
		Storage: storage.NewFileImageStorage(),
	}
}

// SelectBackend возвращает OpenCV-реализацию, если она запрошена и собрана, иначе чистый Go
func SelectBackend(name string) *vision.Backend {
	if name != "gocv" {
		return RasterBackend()
	}

	backend, err := vision.NewBackend()
	if err != nil {
		log.Printf("Backend gocv unavailable, falling back to raster: %v", err)
		return RasterBackend()
	}
	return backend
}

func New(userRepo port.UserRepository, sessions port.SessionRepository, backend *vision.Backend, opts app.LabelingOptions) *Container {
	userService := app.NewUserService(userRepo)
	labelingService := app.NewLabelingService(backend.Storage, backend.NewMask, backend.Warper, sessions, opts)

	return &Container{
		Backend:         backend.Name,
		UserService:     userService,
		LabelingService: labelingService,
	}
}
