package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"mask-labeler/internal/canvas"
	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
	"mask-labeler/internal/splitter"
)

// LabelingOptions каталоги и параметры разметки
type LabelingOptions struct {
	MaskDir   string // каталог масок, пустой означает каталог изображения
	SplitDir  string // каталог патчей и кропов
	BrushSize int
	Patches   splitter.Options
}

// Document открытое изображение вместе с холстом
type Document struct {
	Path     string
	MaskPath string
	Engine   *canvas.Engine
}

// Close освобождает маску холста
func (d *Document) Close() {
	d.Engine.Reset()
}

// SplitOutput результат нарезки: патчи в режиме рисования или кроп в режиме выделения
type SplitOutput struct {
	Mode    entity.AppMode
	Patches *entity.SplitResult
	Crop    *entity.CropResult
}

type LabelingService struct {
	storage  port.ImageStorage
	newMask  port.MaskFactory
	sessions port.SessionRepository
	splitter *splitter.Splitter
	opts     LabelingOptions
}

// NewLabelingService создаёт сервис загрузки, сохранения и нарезки изображений.
func NewLabelingService(storage port.ImageStorage, newMask port.MaskFactory, warper port.Warper, sessions port.SessionRepository, opts LabelingOptions) *LabelingService {
	return &LabelingService{
		storage:  storage,
		newMask:  newMask,
		sessions: sessions,
		splitter: splitter.New(storage, warper),
		opts:     opts,
	}
}

// Options возвращает текущие параметры
func (s *LabelingService) Options() LabelingOptions {
	return s.opts
}

// Open загружает изображение и его маску из каталога масок (если она есть).
func (s *LabelingService) Open(ctx context.Context, path string) (*Document, error) {
	maskPath := entity.MaskPath(path, s.opts.MaskDir)
	if _, err := os.Stat(maskPath); err != nil {
		return s.open(ctx, path, "", maskPath)
	}
	return s.open(ctx, path, maskPath, maskPath)
}

// OpenWithMask загружает изображение с маской из явно указанного файла.
// Пустой maskPath означает чистую маску. Маска сохраняется по обычному пути.
func (s *LabelingService) OpenWithMask(ctx context.Context, path, maskPath string) (*Document, error) {
	return s.open(ctx, path, maskPath, entity.MaskPath(path, s.opts.MaskDir))
}

func (s *LabelingService) open(ctx context.Context, path, maskSource, maskTarget string) (*Document, error) {
	img, err := s.storage.Load(path)
	if err != nil {
		return nil, err
	}

	var mask image.Image
	if maskSource != "" {
		m, err := s.storage.Load(maskSource)
		if err != nil {
			return nil, fmt.Errorf("load mask: %w", err)
		}
		mask = m
	}

	engine := canvas.NewEngine(s.opts.BrushSize, canvas.WithMaskFactory(s.newMask))
	if err := engine.Load(img, mask); err != nil {
		return nil, err
	}

	// Восстанавливаем масштаб, яркость и контраст, заданные для файла ранее
	session, err := s.sessions.Get(ctx, path)
	if err != nil {
		engine.Reset()
		return nil, err
	}
	if session.Zoom > 0 {
		if err := engine.SetScale(session.Scale()); err != nil {
			engine.Reset()
			return nil, err
		}
	}
	if session.Adjusted() {
		if err := engine.Adjust(session.Brightness, session.Contrast); err != nil {
			engine.Reset()
			return nil, err
		}
	}

	size := engine.Size()
	log.Printf("opened %s (%dx%d), mask: %t", path, size.X, size.Y, mask != nil)
	return &Document{Path: path, MaskPath: maskTarget, Engine: engine}, nil
}

// SaveMask записывает маску документа, создавая каталог масок при необходимости.
func (s *LabelingService) SaveMask(ctx context.Context, doc *Document) error {
	mask, err := doc.Engine.MaskImage()
	if err != nil {
		return err
	}

	dir := filepath.Dir(doc.MaskPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", entity.ErrDirectoryCreate, dir, err)
	}
	if err := s.storage.Write(doc.MaskPath, mask); err != nil {
		return err
	}

	doc.Engine.MarkClean()
	log.Printf("saved mask %s", doc.MaskPath)
	return nil
}

// Split в режиме рисования режет изображение на патчи по маске,
// в режиме выделения пишет перспективный кроп четырёхугольника.
func (s *LabelingService) Split(ctx context.Context, doc *Document) (*SplitOutput, error) {
	snap, err := doc.Engine.Snapshot()
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	out := &SplitOutput{Mode: snap.AppMode}
	switch snap.AppMode {
	case entity.ModeSplitting:
		crop, err := s.splitter.CropQuad(doc.Path, snap.Image, snap.Quad, s.opts.SplitDir)
		if err != nil {
			return nil, err
		}
		out.Crop = crop
		log.Printf("cropped %s -> %s (%dx%d)", doc.Path, crop.Path, crop.Width, crop.Height)
	default:
		result, err := s.splitter.SplitPatches(doc.Path, snap.Image, snap.Mask, s.opts.Patches, s.opts.SplitDir)
		out.Patches = result
		if err != nil {
			if result != nil {
				log.Printf("split %s failed after %d patches: %v", doc.Path, len(result.Patches), err)
			}
			return out, err
		}
		log.Printf("split %s: %d patches (%d defect, %d normal)", doc.Path, len(result.Patches), result.Defects, result.Normals)
	}
	return out, nil
}

// Crop задаёт четырёхугольник, переключает документ в режим выделения и пишет кроп.
func (s *LabelingService) Crop(ctx context.Context, doc *Document, quad entity.Quad) (*entity.CropResult, error) {
	doc.Engine.SetAppMode(entity.ModeSplitting)
	doc.Engine.SetQuad(quad)

	out, err := s.Split(ctx, doc)
	if err != nil {
		return nil, err
	}
	return out.Crop, nil
}

// Adjust меняет яркость и контраст отображения и запоминает их для файла.
func (s *LabelingService) Adjust(ctx context.Context, doc *Document, brightness, contrast int) error {
	if err := validateAdjustment(brightness); err != nil {
		return err
	}
	if err := validateAdjustment(contrast); err != nil {
		return err
	}

	if err := doc.Engine.Adjust(brightness, contrast); err != nil {
		return err
	}

	session, err := s.sessions.Get(ctx, doc.Path)
	if err != nil {
		return err
	}
	session.Brightness = brightness
	session.Contrast = contrast
	return s.sessions.Save(ctx, session)
}

// SetZoom задаёт масштаб отображения в процентах и запоминает его для файла.
func (s *LabelingService) SetZoom(ctx context.Context, doc *Document, percent int) error {
	if percent <= 0 {
		return fmt.Errorf("%w: %d%%", entity.ErrInvalidScale, percent)
	}
	if err := doc.Engine.SetScale(float64(percent) / 100); err != nil {
		return err
	}

	session, err := s.sessions.Get(ctx, doc.Path)
	if err != nil {
		return err
	}
	session.ZoomMode = entity.ZoomManual
	session.Zoom = percent
	return s.sessions.Save(ctx, session)
}

// SetScroll запоминает положение прокрутки для файла
func (s *LabelingService) SetScroll(ctx context.Context, doc *Document, horizontal, vertical int) error {
	if horizontal < 0 || vertical < 0 {
		return fmt.Errorf("%w: %d,%d", errScrollRange, horizontal, vertical)
	}

	session, err := s.sessions.Get(ctx, doc.Path)
	if err != nil {
		return err
	}
	session.ScrollH = horizontal
	session.ScrollV = vertical
	return s.sessions.Save(ctx, session)
}

var errScrollRange = errors.New("negative scroll position")

// maxAdjustment верхняя граница ползунков яркости и контраста
const maxAdjustment = 150

var errAdjustmentRange = errors.New("adjustment out of range")

func validateAdjustment(v int) error {
	if v < 0 || v > maxAdjustment {
		return fmt.Errorf("%w: %d not in [0,%d]", errAdjustmentRange, v, maxAdjustment)
	}
	return nil
}
