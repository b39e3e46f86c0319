package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"mask-labeler/internal/domain/entity"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8((x + y) / 2), A: 255})
		}
	}
	return img
}

func square(x, y, side float64) [4]entity.Point {
	return [4]entity.Point{
		entity.Pt(x, y), entity.Pt(x+side, y), entity.Pt(x+side, y+side), entity.Pt(x, y+side),
	}
}

func TestPerspectiveTransform_Identity(t *testing.T) {
	h, err := PerspectiveTransform(square(0, 0, 100), square(0, 0, 100))
	require.NoError(t, err)

	want := Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i := range want {
		require.InDelta(t, want[i], h[i], 1e-9)
	}
}

func TestPerspectiveTransform_MapsCorners(t *testing.T) {
	src := [4]entity.Point{entity.Pt(12, 7), entity.Pt(90, 15), entity.Pt(80, 70), entity.Pt(5, 60)}
	dst := square(0, 0, 64)

	h, err := PerspectiveTransform(src, dst)
	require.NoError(t, err)
	for i := range src {
		p := h.Apply(src[i])
		require.InDelta(t, dst[i].X, p.X, 1e-6)
		require.InDelta(t, dst[i].Y, p.Y, 1e-6)
	}

	inv, err := h.Inverse()
	require.NoError(t, err)
	back := inv.Apply(dst[2])
	require.InDelta(t, src[2].X, back.X, 1e-6)
	require.InDelta(t, src[2].Y, back.Y, 1e-6)
}

func TestPerspectiveTransform_Degenerate(t *testing.T) {
	p := entity.Pt(5, 5)
	_, err := PerspectiveTransform([4]entity.Point{p, p, p, p}, square(0, 0, 10))
	require.Error(t, err)
}

func TestWarper_IdentityCrop(t *testing.T) {
	img := gradient(100, 100)

	out, err := NewWarper().WarpPerspective(img, square(0, 0, 100), square(0, 0, 100), image.Pt(100, 100))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 100, 100), out.Bounds())

	for _, p := range []image.Point{{0, 0}, {50, 20}, {99, 99}, {13, 77}} {
		want, got := img.RGBAAt(p.X, p.Y), out.RGBAAt(p.X, p.Y)
		require.InDelta(t, want.R, got.R, 1)
		require.InDelta(t, want.G, got.G, 1)
		require.InDelta(t, want.B, got.B, 1)
	}
}

func TestWarper_Translation(t *testing.T) {
	img := gradient(120, 120)

	out, err := NewWarper().WarpPerspective(img, square(10, 20, 50), square(0, 0, 50), image.Pt(50, 50))
	require.NoError(t, err)

	got := out.RGBAAt(5, 5)
	require.InDelta(t, 15, got.R, 1)
	require.InDelta(t, 25, got.G, 1)
}

func TestWarper_OutsideIsBlack(t *testing.T) {
	img := gradient(20, 20)
	for i := range img.Pix {
		img.Pix[i] = 200
	}

	out, err := NewWarper().WarpPerspective(img, square(0, 0, 20), square(10, 10, 20), image.Pt(40, 40))
	require.NoError(t, err)
	require.Equal(t, color.RGBA{A: 255}, out.RGBAAt(2, 2))
	require.Equal(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, out.RGBAAt(20, 20))
}

func TestWarper_InvalidSize(t *testing.T) {
	_, err := NewWarper().WarpPerspective(gradient(4, 4), square(0, 0, 4), square(0, 0, 4), image.Pt(0, 4))
	require.Error(t, err)
}
