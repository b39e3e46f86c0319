//go:build gocv
// +build gocv

package vision

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mask-labeler/internal/domain/entity"
)

func TestMaskLayer_StrokeAndErase(t *testing.T) {
	mask, err := NewMaskLayer(image.Pt(40, 40), nil)
	require.NoError(t, err)
	defer mask.Close()

	require.False(t, mask.IsDefect(mask.Bounds()))

	mask.Stroke(entity.Pt(5, 20), entity.Pt(35, 20), 4, entity.ToolBrush)
	require.True(t, mask.IsDefect(image.Rect(18, 18, 22, 22)))
	require.False(t, mask.IsDefect(image.Rect(0, 0, 10, 10)))

	mask.Stroke(entity.Pt(5, 20), entity.Pt(35, 20), 4, entity.ToolEraser)
	require.False(t, mask.IsDefect(mask.Bounds()))
}

func TestMaskLayer_Composite(t *testing.T) {
	mask, err := NewMaskLayer(image.Pt(4, 4), nil)
	require.NoError(t, err)
	defer mask.Close()

	out := mask.Composite(image.NewRGBA(image.Rect(0, 0, 4, 4)), 0.8, 0.2)
	px := out.RGBAAt(1, 1)
	require.Equal(t, uint8(51), px.R)
	require.Equal(t, uint8(51), px.B)
}

func TestWarper_Identity(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 200, 255
	}
	quad := entity.Quad{{10, 10}, {110, 10}, {110, 110}, {10, 110}}
	src, dst, size := quad.PerspectiveTarget()

	out, err := NewWarper().WarpPerspective(img, src, dst, size)
	require.NoError(t, err)
	require.Equal(t, image.Pt(100, 100), out.Bounds().Size())
	require.Equal(t, uint8(200), out.RGBAAt(50, 50).R)
}

func TestStorage_RoundTrip(t *testing.T) {
	s := NewStorage()
	path := filepath.Join(t.TempDir(), "m.png")

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Pix[0], img.Pix[3] = 255, 255
	require.NoError(t, s.Write(path, img))

	loaded, err := s.Load(path)
	require.NoError(t, err)
	require.Equal(t, uint8(255), loaded.RGBAAt(0, 0).R)

	_, err = s.Load(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, entity.ErrMissingFile)
}
