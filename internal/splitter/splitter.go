// Package splitter нарезает изображение на размеченные патчи и делает
// перспективный кроп по четырёхугольнику.
package splitter

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
)

// Options параметры нарезки
type Options struct {
	Size            int  // сторона патча
	Stride          int  // шаг между началами патчей
	Augment         bool // дополнительно писать повороты на 90, 180 и 270 градусов
	ContinueOnError bool // не прерываться на первой ошибке записи
}

// Validate проверяет, что нарезка конечна
func (o Options) Validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("patch size must be positive, got %d", o.Size)
	}
	if o.Stride <= 0 {
		return fmt.Errorf("stride must be positive, got %d", o.Stride)
	}
	return nil
}

// rotations повороты по часовой стрелке для аугментации
var rotations = []struct {
	degrees int
	apply   func(image.Image) *image.NRGBA
}{
	{90, imaging.Rotate270},
	{180, imaging.Rotate180},
	{270, imaging.Rotate90},
}

// Splitter пишет патчи и кропы через ImageWriter
type Splitter struct {
	writer port.ImageWriter
	warper port.Warper
}

// New создаёт Splitter
func New(writer port.ImageWriter, warper port.Warper) *Splitter {
	return &Splitter{writer: writer, warper: warper}
}

// Grid раскладка патчей для изображения размера size без меток.
// Патчи у правого и нижнего края обрезаются границей изображения.
func Grid(size image.Point, patchSize, stride int) []entity.Patch {
	if patchSize <= 0 || stride <= 0 {
		return nil
	}
	bounds := image.Rectangle{Max: size}
	patches := make([]entity.Patch, 0, ceilDiv(size.Y, stride)*ceilDiv(size.X, stride))
	for i := 0; i < size.Y; i += stride {
		for j := 0; j < size.X; j += stride {
			patches = append(patches, entity.Patch{
				X:      j,
				Y:      i,
				Size:   patchSize,
				Bounds: image.Rect(j, i, j+patchSize, i+patchSize).Intersect(bounds),
			})
		}
	}
	return patches
}

// EnsureLabelDirs создаёт каталоги defect и normal внутри dir (повторный вызов не ошибка)
func EnsureLabelDirs(dir string) error {
	for _, label := range entity.Labels {
		path := filepath.Join(dir, string(label))
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %v", entity.ErrDirectoryCreate, path, err)
		}
	}
	return nil
}

// SplitPatches нарезает img на патчи, метит их по mask и пишет в dir/{defect|normal}.
// По умолчанию первая ошибка записи прерывает нарезку; уже записанные патчи остаются в результате.
func (s *Splitter) SplitPatches(filename string, img image.Image, mask port.DefectOracle, opts Options, dir string) (*entity.SplitResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := EnsureLabelDirs(dir); err != nil {
		return nil, err
	}

	size := img.Bounds().Size()
	base := entity.PatchBase(filename)
	result := &entity.SplitResult{ImageWidth: size.X, ImageHeight: size.Y}

	var errs []error
	for _, patch := range Grid(size, opts.Size, opts.Stride) {
		patch.Label = entity.LabelNormal
		if mask.IsDefect(patch.Bounds) {
			patch.Label = entity.LabelDefect
		}

		crop := imaging.Crop(img, patch.Bounds.Add(img.Bounds().Min))
		if err := s.write(result, patch, crop, base, dir); err != nil {
			if !opts.ContinueOnError {
				return result, err
			}
			errs = append(errs, err)
		}

		if !opts.Augment {
			continue
		}
		for _, rot := range rotations {
			rotated := patch
			rotated.Rotation = rot.degrees
			if err := s.write(result, rotated, rot.apply(crop), base, dir); err != nil {
				if !opts.ContinueOnError {
					return result, err
				}
				errs = append(errs, err)
			}
		}
	}
	return result, errors.Join(errs...)
}

func (s *Splitter) write(result *entity.SplitResult, patch entity.Patch, img image.Image, base, dir string) error {
	patch.Path = filepath.Join(dir, string(patch.Label), patch.FileName(base))
	if err := s.writer.Write(patch.Path, img); err != nil {
		return fmt.Errorf("write patch %s: %w", patch.Path, err)
	}
	result.Add(patch)
	return nil
}

// CropQuad выпрямляет четырёхугольник и пишет один кроп {dir}/{имя}.png.
// Если dir пуст или не существует, кроп пишется рядом с исходным файлом.
func (s *Splitter) CropQuad(filename string, img image.Image, quad entity.Quad, dir string) (*entity.CropResult, error) {
	src, dst, size := quad.PerspectiveTarget()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("degenerate quadrilateral %v", quad)
	}

	out, err := s.warper.WarpPerspective(img, src, dst, size)
	if err != nil {
		return nil, fmt.Errorf("warp perspective: %w", err)
	}

	path := filepath.Join(cropDir(filename, dir), entity.CropFileName(filename))
	if err := s.writer.Write(path, out); err != nil {
		return nil, fmt.Errorf("write crop %s: %w", path, err)
	}
	return &entity.CropResult{Path: path, Width: size.X, Height: size.Y}, nil
}

func cropDir(filename, dir string) string {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return filepath.Dir(filename)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
