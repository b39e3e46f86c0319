package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjustBrightnessContrast_Neutral(t *testing.T) {
	img := gradient(16, 16)
	out := AdjustBrightnessContrast(img, 50, 50)
	require.Equal(t, img.Pix, out.Pix)

	out.Pix[0] = 7
	require.NotEqual(t, img.Pix[0], out.Pix[0])
}

func TestAdjustBrightnessContrast_Brightness(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 60, 100, 200, 255
	}

	out := AdjustBrightnessContrast(img, 100, 50)
	require.Equal(t, color.RGBA{R: 120, G: 200, B: 255, A: 255}, out.RGBAAt(1, 1))

	dark := AdjustBrightnessContrast(img, 0, 50)
	require.Equal(t, color.RGBA{A: 255}, dark.RGBAAt(0, 0))
}

func TestAdjustBrightnessContrast_ZeroContrastIsMean(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	out := AdjustBrightnessContrast(img, 50, 0)
	require.Equal(t, color.RGBA{R: 100, G: 100, B: 100, A: 255}, out.RGBAAt(0, 0))
	require.Equal(t, out.RGBAAt(0, 0), out.RGBAAt(1, 0))
}
