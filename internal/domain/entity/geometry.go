package entity

import (
	"image"
	"math"
)

// Point точка в пространстве указателя или изображения
type Point struct {
	X float64
	Y float64
}

// Pt сокращённый конструктор точки
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Image возвращает целочисленную точку (отбрасывая дробную часть)
func (p Point) Image() image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// Scale умножает координаты на коэффициент
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// ToImageSpace переводит позицию указателя в координаты изображения.
func ToImageSpace(p Point, scale float64) Point {
	return Point{X: p.X / scale, Y: p.Y / scale}
}

// InProximity проверка попадания в квадрат со стороной 2*eps (не евклидово расстояние).
func InProximity(a, b Point, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

// InBounds true, если точка лежит внутри изображения размера size.
func InBounds(p Point, size image.Point) bool {
	return p.X >= 0 && p.X <= float64(size.X-1) && p.Y >= 0 && p.Y <= float64(size.Y-1)
}
