package entity

// DrawingTool инструмент рисования маски
type DrawingTool string

const (
	ToolNone   DrawingTool = "none"   // Нет активного инструмента (изображение не загружено)
	ToolBrush  DrawingTool = "brush"  // Кисть: отмечает дефект
	ToolEraser DrawingTool = "eraser" // Ластик: возвращает норму
)

var toolToggles = map[DrawingTool]DrawingTool{
	ToolBrush:  ToolEraser,
	ToolEraser: ToolBrush,
	ToolNone:   ToolNone,
}

// Toggle переключает кисть и ластик. ToolNone остаётся ToolNone.
func (t DrawingTool) Toggle() DrawingTool {
	if next, ok := toolToggles[t]; ok {
		return next
	}
	return ToolNone
}

// AppMode режим работы холста
type AppMode string

const (
	ModeDrawing   AppMode = "drawing"   // Рисование маски
	ModeSplitting AppMode = "splitting" // Редактирование четырёхугольника
)

var modeToggles = map[AppMode]AppMode{
	ModeDrawing:   ModeSplitting,
	ModeSplitting: ModeDrawing,
}

// Toggle переключает режим. Неизвестное значение сбрасывается в ModeDrawing.
func (m AppMode) Toggle() AppMode {
	if next, ok := modeToggles[m]; ok {
		return next
	}
	return ModeDrawing
}
