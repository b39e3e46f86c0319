package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"mask-labeler/internal/domain/entity"
)

// AdjustBrightnessContrast меняет яркость и контраст как ползунки 0..150 (50 без изменений).
// Яркость умножает каналы на v/50, контраст растягивает каналы от среднего серого.
func AdjustBrightnessContrast(img image.Image, brightness, contrast int) *image.RGBA {
	if brightness == entity.NeutralAdjustment && contrast == entity.NeutralAdjustment {
		return CloneImage(img)
	}

	bf := float64(brightness) / entity.NeutralAdjustment
	cf := float64(contrast) / entity.NeutralAdjustment

	bright := imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: saturate(float64(c.R) * bf),
			G: saturate(float64(c.G) * bf),
			B: saturate(float64(c.B) * bf),
			A: c.A,
		}
	})

	mean := math.Round(meanLuma(bright))
	out := imaging.AdjustFunc(bright, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: saturate(mean + cf*(float64(c.R)-mean)),
			G: saturate(mean + cf*(float64(c.G)-mean)),
			B: saturate(mean + cf*(float64(c.B)-mean)),
			A: c.A,
		}
	})
	return ToRGBA(out)
}

// meanLuma средняя яркость по формуле ITU-R 601
func meanLuma(img *image.NRGBA) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl := int(img.Pix[i]), int(img.Pix[i+1]), int(img.Pix[i+2])
			sum += float64((r*299 + g*587 + bl*114) / 1000)
			i += 4
		}
	}
	return sum / float64(n)
}
