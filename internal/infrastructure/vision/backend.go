// Package vision реализация маски, перспективного кропа и ввода-вывода на OpenCV.
// Без тега сборки gocv доступна только заглушка NewBackend.
package vision

import "mask-labeler/internal/domain/port"

// Backend набор реализаций портов одного движка
type Backend struct {
	Name    string
	NewMask port.MaskFactory
	Warper  port.Warper
	Storage port.ImageStorage
}
