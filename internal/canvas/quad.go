package canvas

import (
	"image"

	"mask-labeler/internal/domain/entity"
)

// SearchArea полуширина квадрата захвата вершины
const SearchArea = 6

// noSelection вершина не выбрана
const noSelection = -1

// QuadEditor перетаскиваемый четырёхугольник
type QuadEditor struct {
	quad     entity.Quad
	selected int
}

// NewQuadEditor создаёт редактор с квадратом по умолчанию
func NewQuadEditor() *QuadEditor {
	return &QuadEditor{quad: entity.DefaultQuad(), selected: noSelection}
}

// Reset ставит квадрат по центру изображения и снимает выбор
func (q *QuadEditor) Reset(size image.Point) {
	q.quad = entity.CenteredQuad(size)
	q.selected = noSelection
}

// Quad возвращает текущие вершины
func (q *QuadEditor) Quad() entity.Quad {
	return q.quad
}

// SetQuad заменяет вершины целиком
func (q *QuadEditor) SetQuad(quad entity.Quad) {
	q.quad = quad
	q.selected = noSelection
}

// Selected индекс выбранной вершины, -1 если нет
func (q *QuadEditor) Selected() int {
	return q.selected
}

// BeginSelect выбирает первую по порядку вершину рядом с pos.
// Если ни одна не задета, выбор не меняется.
func (q *QuadEditor) BeginSelect(pos entity.Point) bool {
	for i, p := range q.quad {
		if entity.InProximity(entity.Pt(float64(p.X), float64(p.Y)), pos, SearchArea) {
			q.selected = i
			return true
		}
	}
	return false
}

// DragTo переносит выбранную вершину, если pos внутри изображения
func (q *QuadEditor) DragTo(pos entity.Point, size image.Point) bool {
	if q.selected == noSelection || !entity.InBounds(pos, size) {
		return false
	}
	q.quad[q.selected] = pos.Image()
	return true
}

// Release снимает выбор
func (q *QuadEditor) Release() {
	q.selected = noSelection
}
