package raster

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
)

// Homography матрица 3x3 перспективного преобразования (h33 = 1)
type Homography [9]float64

// Apply применяет преобразование к точке
func (h Homography) Apply(p entity.Point) entity.Point {
	w := h[6]*p.X + h[7]*p.Y + h[8]
	return entity.Point{
		X: (h[0]*p.X + h[1]*p.Y + h[2]) / w,
		Y: (h[3]*p.X + h[4]*p.Y + h[5]) / w,
	}
}

// Inverse возвращает обратное преобразование
func (h Homography) Inverse() (Homography, error) {
	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(3, 3, h[:])); err != nil {
		return Homography{}, fmt.Errorf("invert homography: %w", err)
	}
	var out Homography
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = inv.At(r, c) / inv.At(2, 2)
		}
	}
	return out, nil
}

// PerspectiveTransform решает систему 8x8 для четырёх пар точек (как getPerspectiveTransform).
func PerspectiveTransform(src, dst [4]entity.Point) (Homography, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y
		a.SetRow(i, []float64{x, y, 1, 0, 0, 0, -x * u, -y * u})
		a.SetRow(i+4, []float64{0, 0, 0, x, y, 1, -x * v, -y * v})
		b.SetVec(i, u)
		b.SetVec(i+4, v)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return Homography{}, fmt.Errorf("solve perspective transform: %w", err)
	}

	var out Homography
	for i := 0; i < 8; i++ {
		out[i] = h.AtVec(i)
	}
	out[8] = 1
	for _, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Homography{}, errors.New("solve perspective transform: degenerate points")
		}
	}
	return out, nil
}

// Warper перспективное преобразование на чистом Go:
// обратное отображение и билинейная интерполяция, за краем чёрный цвет.
type Warper struct{}

// NewWarper создаёт Warper
func NewWarper() *Warper {
	return &Warper{}
}

// WarpPerspective возвращает кадр size, в котором точки src оказываются в dst
func (w *Warper) WarpPerspective(img image.Image, src, dst [4]entity.Point, size image.Point) (*image.RGBA, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("warp perspective: invalid output size %v", size)
	}

	h, err := PerspectiveTransform(src, dst)
	if err != nil {
		return nil, err
	}
	inv, err := h.Inverse()
	if err != nil {
		return nil, err
	}

	in := ToRGBA(img)
	out := image.NewRGBA(image.Rectangle{Max: size})
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			s := inv.Apply(entity.Pt(float64(x), float64(y)))
			i := out.PixOffset(x, y)
			bilinear(in, s.X, s.Y, out.Pix[i:i+4])
		}
	}
	return out, nil
}

// bilinear пишет в px интерполированный цвет в точке (sx, sy)
func bilinear(img *image.RGBA, sx, sy float64, px []uint8) {
	px[3] = 0xff
	if math.IsNaN(sx) || math.IsNaN(sy) {
		px[0], px[1], px[2] = 0, 0, 0
		return
	}
	x0, y0 := math.Floor(sx), math.Floor(sy)
	fx, fy := sx-x0, sy-y0
	ix, iy := int(x0), int(y0)

	b := img.Bounds()
	sample := func(x, y, c int) float64 {
		if x < b.Min.X || y < b.Min.Y || x >= b.Max.X || y >= b.Max.Y {
			return 0
		}
		return float64(img.Pix[img.PixOffset(x, y)+c])
	}

	for c := 0; c < 3; c++ {
		top := sample(ix, iy, c)*(1-fx) + sample(ix+1, iy, c)*fx
		bottom := sample(ix, iy+1, c)*(1-fx) + sample(ix+1, iy+1, c)*fx
		px[c] = saturate(top*(1-fy) + bottom*fy)
	}
}

var _ port.Warper = (*Warper)(nil)
