// Package canvas содержит состояние холста разметки: изображение, маску,
// четырёхугольник кропа, масштаб и режимы, а также обработку событий указателя.
package canvas

import (
	"fmt"
	"image"
	"sync"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
	"mask-labeler/internal/infrastructure/raster"
)

// Engine холст одного открытого документа.
// Все методы безопасны для вызова из разных горутин: штрихи и снимки
// для нарезки сериализуются одним мьютексом.
type Engine struct {
	mu sync.Mutex

	newMask port.MaskFactory
	source  *image.RGBA // исходное изображение, не меняется до следующей загрузки
	display *image.RGBA // изображение с яркостью/контрастом, только для показа
	mask    port.MaskLayer
	quad    *QuadEditor

	scale     float64
	tool      entity.DrawingTool // последний выбранный инструмент
	appMode   entity.AppMode
	brushSize int

	drawing   bool
	lastPoint entity.Point
	cursor    entity.Point
	dirty     bool

	onLocation func(x, y int)
	onDirty    func()
}

// Option настройка Engine
type Option func(*Engine)

// WithMaskFactory задаёт реализацию маски
func WithMaskFactory(f port.MaskFactory) Option {
	return func(e *Engine) {
		e.newMask = f
	}
}

// WithLocationListener вызывается при каждом движении указателя (координаты изображения)
func WithLocationListener(fn func(x, y int)) Option {
	return func(e *Engine) {
		e.onLocation = fn
	}
}

// WithDirtyListener вызывается после каждого применённого штриха
func WithDirtyListener(fn func()) Option {
	return func(e *Engine) {
		e.onDirty = fn
	}
}

// NewEngine создаёт пустой холст
func NewEngine(brushSize int, opts ...Option) *Engine {
	e := &Engine{
		newMask:   raster.NewMask,
		quad:      NewQuadEditor(),
		scale:     1.0,
		tool:      entity.ToolBrush,
		appMode:   entity.ModeDrawing,
		brushSize: brushSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load открывает изображение. mask == nil означает пустую (нормальную) маску.
func (e *Engine) Load(img image.Image, mask image.Image) error {
	source := raster.CloneImage(img)
	size := source.Bounds().Size()

	layer, err := e.newMask(size, mask)
	if err != nil {
		return fmt.Errorf("load mask: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.closeMask()
	e.source = source
	e.display = source
	e.mask = layer
	e.quad.Reset(size)
	e.drawing = false
	e.dirty = false
	return nil
}

// Reset закрывает документ
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closeMask()
	e.source = nil
	e.display = nil
	e.drawing = false
	e.dirty = false
}

func (e *Engine) closeMask() {
	if e.mask != nil {
		_ = e.mask.Close()
		e.mask = nil
	}
}

// Loaded true, если изображение открыто
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source != nil
}

// Size размер открытого изображения
func (e *Engine) Size() image.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return image.Point{}
	}
	return e.source.Bounds().Size()
}

// Tool действующий инструмент: ToolNone, пока изображение не открыто
func (e *Engine) Tool() entity.DrawingTool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.effectiveTool()
}

func (e *Engine) effectiveTool() entity.DrawingTool {
	if e.source == nil {
		return entity.ToolNone
	}
	return e.tool
}

// SelectTool выбирает кисть или ластик
func (e *Engine) SelectTool(tool entity.DrawingTool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tool == entity.ToolBrush || tool == entity.ToolEraser {
		e.tool = tool
	}
}

// ToggleTool переключает кисть и ластик и возвращает новый инструмент
func (e *Engine) ToggleTool() entity.DrawingTool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tool = e.tool.Toggle()
	return e.tool
}

// AppMode текущий режим
func (e *Engine) AppMode() entity.AppMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.appMode
}

// SetAppMode задаёт режим
func (e *Engine) SetAppMode(mode entity.AppMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.appMode = mode
	e.drawing = false
	e.quad.Release()
}

// ToggleAppMode переключает рисование и кроп
func (e *Engine) ToggleAppMode() entity.AppMode {
	e.mu.Lock()
	mode := e.appMode.Toggle()
	e.mu.Unlock()

	e.SetAppMode(mode)
	return mode
}

// BrushSize диаметр кисти
func (e *Engine) BrushSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.brushSize
}

// SetBrushSize задаёт диаметр кисти
func (e *Engine) SetBrushSize(size int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.brushSize = size
}

// Scale масштаб отображения
func (e *Engine) Scale() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scale
}

// SetScale задаёт масштаб отображения, он должен быть больше нуля
func (e *Engine) SetScale(scale float64) error {
	if !(scale > 0) {
		return fmt.Errorf("%w: %v", entity.ErrInvalidScale, scale)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scale = scale
	return nil
}

// Quad вершины четырёхугольника
func (e *Engine) Quad() entity.Quad {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quad.Quad()
}

// SetQuad задаёт вершины четырёхугольника
func (e *Engine) SetQuad(q entity.Quad) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.quad.SetQuad(q)
}

// SelectedPoint индекс перетаскиваемой вершины, -1 если нет
func (e *Engine) SelectedPoint() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quad.Selected()
}

// Cursor последняя позиция указателя в координатах изображения
func (e *Engine) Cursor() entity.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Dirty true, если маска менялась после загрузки или сохранения
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// MarkClean сбрасывает признак изменений (после сохранения)
func (e *Engine) MarkClean() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dirty = false
}

// PointerDown нажатие кнопки в координатах экрана
func (e *Engine) PointerDown(pos entity.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := entity.ToImageSpace(pos, e.scale)
	e.lastPoint = p
	e.drawing = true

	if e.appMode == entity.ModeSplitting {
		e.quad.BeginSelect(p)
	}
}

// PointerMove движение указателя. buttonHeld true, если левая кнопка зажата.
func (e *Engine) PointerMove(pos entity.Point, buttonHeld bool) {
	e.mu.Lock()

	p := entity.ToImageSpace(pos, e.scale)
	e.cursor = p
	stroked := false

	if e.source != nil {
		switch e.appMode {
		case entity.ModeDrawing:
			tool := e.effectiveTool()
			if buttonHeld && e.drawing && tool != entity.ToolNone {
				e.mask.Stroke(e.lastPoint, p, e.brushSize, tool)
				e.lastPoint = p
				e.dirty = true
				stroked = true
			}
		case entity.ModeSplitting:
			e.quad.DragTo(p, e.source.Bounds().Size())
		}
	}

	onLocation, onDirty := e.onLocation, e.onDirty
	e.mu.Unlock()

	// обработчики вызываются без блокировки: они могут обращаться к холсту
	if onLocation != nil {
		onLocation(int(p.X), int(p.Y))
	}
	if stroked && onDirty != nil {
		onDirty()
	}
}

// PointerUp отпускание кнопки
func (e *Engine) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.drawing = false
	if e.appMode == entity.ModeSplitting {
		e.quad.Release()
	}
}

// PointerLeave указатель ушёл с холста
func (e *Engine) PointerLeave() {
	e.PointerUp()
}

// Adjust применяет яркость и контраст (0..150, 50 без изменений) к показываемому изображению.
// Маска и нарезка используют исходное изображение.
func (e *Engine) Adjust(brightness, contrast int) error {
	e.mu.Lock()
	source := e.source
	e.mu.Unlock()
	if source == nil {
		return entity.ErrNoDocument
	}

	adjusted := raster.AdjustBrightnessContrast(source, brightness, contrast)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source != source {
		return entity.ErrNoDocument
	}
	e.display = adjusted
	return nil
}

// MaskImage копия маски для сохранения
func (e *Engine) MaskImage() (*image.RGBA, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mask == nil {
		return nil, entity.ErrNoDocument
	}
	return e.mask.Image(), nil
}

// Snapshot неизменяемая копия состояния для нарезки
type Snapshot struct {
	Image   *image.RGBA
	Mask    port.MaskLayer
	Quad    entity.Quad
	AppMode entity.AppMode
}

// Close освобождает копию маски
func (s *Snapshot) Close() error {
	if s.Mask == nil {
		return nil
	}
	return s.Mask.Close()
}

// Snapshot снимает копию под тем же мьютексом, что и штрихи
func (e *Engine) Snapshot() (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return nil, entity.ErrNoDocument
	}
	return &Snapshot{
		Image:   e.source,
		Mask:    e.mask.Clone(),
		Quad:    e.quad.Quad(),
		AppMode: e.appMode,
	}, nil
}
