//go:build gocv
// +build gocv

package vision

// NewBackend собирает OpenCV-реализации портов
func NewBackend() (*Backend, error) {
	return &Backend{
		Name:    "gocv",
		NewMask: NewMask,
		Warper:  NewWarper(),
		Storage: NewStorage(),
	}, nil
}
