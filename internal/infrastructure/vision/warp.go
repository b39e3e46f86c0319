//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
)

// Warper перспективное преобразование через OpenCV
type Warper struct{}

// NewWarper создаёт Warper
func NewWarper() *Warper {
	return &Warper{}
}

// WarpPerspective getPerspectiveTransform + warpPerspective с выходным кадром size
func (w *Warper) WarpPerspective(img image.Image, src, dst [4]entity.Point, size image.Point) (*image.RGBA, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("warp perspective: invalid output size %v", size)
	}

	in, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("warp perspective: %w", err)
	}
	defer in.Close()

	srcVec := gocv.NewPoint2fVectorFromPoints(toPoint2f(src))
	defer srcVec.Close()
	dstVec := gocv.NewPoint2fVectorFromPoints(toPoint2f(dst))
	defer dstVec.Close()

	m := gocv.GetPerspectiveTransform2f(srcVec, dstVec)
	defer m.Close()
	if m.Empty() {
		return nil, fmt.Errorf("warp perspective: %w", errEmptyMat)
	}

	out := gocv.NewMat()
	defer out.Close()
	gocv.WarpPerspective(in, &out, m, size)

	return matToRGBA(out), nil
}

func toPoint2f(points [4]entity.Point) []gocv.Point2f {
	out := make([]gocv.Point2f, len(points))
	for i, p := range points {
		out[i] = gocv.Point2f{X: float32(p.X), Y: float32(p.Y)}
	}
	return out
}

var _ port.Warper = (*Warper)(nil)
