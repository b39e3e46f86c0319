package entity

import "image"

// DefaultQuadSide сторона квадрата по умолчанию
const DefaultQuadSide = 200

// Quad четыре упорядоченные вершины в координатах изображения.
// Порядок задаёт вызывающий код, выпуклость не проверяется.
type Quad [4]image.Point

// DefaultQuad квадрат до загрузки изображения
func DefaultQuad() Quad {
	return Quad{{200, 200}, {400, 200}, {400, 400}, {200, 400}}
}

// CenteredQuad квадрат по центру изображения размера size
func CenteredQuad(size image.Point) Quad {
	side := min(DefaultQuadSide, size.X/2, size.Y/2)
	x0 := (size.X - side) / 2
	y0 := (size.Y - side) / 2
	return Quad{
		{x0, y0},
		{x0 + side, y0},
		{x0 + side, y0 + side},
		{x0, y0 + side},
	}
}

// Edges стороны P0-P1, P1-P2, P2-P3, P3-P0
func (q Quad) Edges() [4][2]image.Point {
	return [4][2]image.Point{
		{q[0], q[1]},
		{q[1], q[2]},
		{q[2], q[3]},
		{q[3], q[0]},
	}
}

// BoundingBox габариты по осям (не длины сторон)
func (q Quad) BoundingBox() (width, height int) {
	minX, maxX := q[0].X, q[0].X
	minY, maxY := q[0].Y, q[0].Y
	for _, p := range q[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return maxX - minX, maxY - minY
}

// PerspectiveTarget исходные точки, целевые точки и размер кадра для кропа.
// Целевой порядок (0,0), (w,0), (h,w), (0,h) сохранён для совместимости с уже
// нарезанными кропами: ширина кадра равна h, высота равна w.
func (q Quad) PerspectiveTarget() (src, dst [4]Point, size image.Point) {
	w, h := q.BoundingBox()
	fw, fh := float64(w), float64(h)
	for i, p := range q {
		src[i] = Pt(float64(p.X), float64(p.Y))
	}
	dst = [4]Point{Pt(0, 0), Pt(fw, 0), Pt(fh, fw), Pt(0, fh)}
	return src, dst, image.Pt(h, w)
}
