package entity

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatchCenter(t *testing.T) {
	p := Patch{X: 48, Y: 96, Size: 128}
	x, y := p.Center()
	require.Equal(t, 112, x)
	require.Equal(t, 160, y)
}

func TestPatchFileName(t *testing.T) {
	p := Patch{X: 128, Y: 0, Size: 128}
	require.Equal(t, "board-0064-0192-000.png", p.FileName("board"))

	p.Rotation = 90
	require.Equal(t, "board-0064-0192-090.png", p.FileName("board"))

	odd := Patch{X: 0, Y: 0, Size: 51}
	require.Equal(t, "b-0025-0025-000.png", odd.FileName("b"))
}

func TestPatchBase_CutsAtFirstDot(t *testing.T) {
	require.Equal(t, "img", PatchBase("/data/set/img.png"))
	require.Equal(t, "img", PatchBase("img.v2.jpg"))
	require.Equal(t, "noext", PatchBase("noext"))
}

func TestCropFileName_ForcesPNG(t *testing.T) {
	require.Equal(t, "img.v2.png", CropFileName("/data/img.v2.jpg"))
	require.Equal(t, "scan.png", CropFileName("scan.bmp"))
}

func TestMaskPath(t *testing.T) {
	require.Equal(t, filepath.Join("mask", "img-m.png"), MaskPath("/data/img.jpg", "mask"))
	require.Equal(t, "/data/img-m.png", MaskPath("/data/img.jpg", ""))
}
