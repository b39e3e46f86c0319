//go:build !gocv
// +build !gocv

package vision

import "errors"

// NewBackend возвращает ошибку, если сборка без тега gocv.
func NewBackend() (*Backend, error) {
	return nil, errors.New("gocv build tag is not enabled")
}
