package app

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/infrastructure/raster"
	"mask-labeler/internal/infrastructure/storage"
	"mask-labeler/internal/splitter"
)

type labelingFixture struct {
	svc      *LabelingService
	files    *storage.FileImageStorage
	sessions *storage.MemorySessionRepository
	imageDir string
	maskDir  string
	splitDir string
}

func newLabelingFixture(t *testing.T) *labelingFixture {
	t.Helper()
	root := t.TempDir()
	f := &labelingFixture{
		files:    storage.NewFileImageStorage(),
		sessions: storage.NewMemorySessionRepository(),
		imageDir: filepath.Join(root, "images"),
		maskDir:  filepath.Join(root, "mask"),
		splitDir: filepath.Join(root, "split"),
	}
	require.NoError(t, os.MkdirAll(f.imageDir, 0o755))

	opts := LabelingOptions{
		MaskDir:   f.maskDir,
		SplitDir:  f.splitDir,
		BrushSize: 6,
		Patches:   splitter.Options{Size: 128, Stride: 128},
	}
	f.svc = NewLabelingService(f.files, raster.NewMask, raster.NewWarper(), f.sessions, opts)
	return f
}

// writeImage пишет однотонное изображение в каталог изображений
func (f *labelingFixture) writeImage(t *testing.T, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 100, 100, 100, 255
	}
	path := filepath.Join(f.imageDir, name)
	require.NoError(t, f.files.Write(path, img))
	return path
}

func paint(doc *Document, from, to entity.Point) {
	doc.Engine.PointerDown(from)
	doc.Engine.PointerMove(to, true)
	doc.Engine.PointerUp()
}

func TestLabelingService_OpenWithoutMask(t *testing.T) {
	f := newLabelingFixture(t)
	path := f.writeImage(t, "X.png", 64, 32)

	doc, err := f.svc.Open(context.Background(), path)
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, filepath.Join(f.maskDir, "X-m.png"), doc.MaskPath)
	require.Equal(t, image.Pt(64, 32), doc.Engine.Size())
	require.False(t, doc.Engine.Dirty())

	snap, err := doc.Engine.Snapshot()
	require.NoError(t, err)
	defer snap.Close()
	require.False(t, snap.Mask.IsDefect(snap.Mask.Bounds()))
}

func TestLabelingService_OpenMissing(t *testing.T) {
	f := newLabelingFixture(t)

	_, err := f.svc.Open(context.Background(), filepath.Join(f.imageDir, "nope.png"))
	require.ErrorIs(t, err, entity.ErrMissingFile)
}

func TestLabelingService_SaveMaskAndReopen(t *testing.T) {
	f := newLabelingFixture(t)
	ctx := context.Background()
	path := f.writeImage(t, "X.png", 64, 64)

	doc, err := f.svc.Open(ctx, path)
	require.NoError(t, err)
	paint(doc, entity.Pt(10, 10), entity.Pt(30, 10))
	require.True(t, doc.Engine.Dirty())

	require.NoError(t, f.svc.SaveMask(ctx, doc))
	require.False(t, doc.Engine.Dirty())
	require.True(t, f.files.Exists(filepath.Join(f.maskDir, "X-m.png")))
	doc.Close()

	reopened, err := f.svc.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	snap, err := reopened.Engine.Snapshot()
	require.NoError(t, err)
	defer snap.Close()
	require.True(t, snap.Mask.IsDefect(image.Rect(18, 8, 22, 12)))
	require.False(t, snap.Mask.IsDefect(image.Rect(0, 40, 64, 64)))
}

func TestLabelingService_OpenWithMaskSizeMismatch(t *testing.T) {
	f := newLabelingFixture(t)
	path := f.writeImage(t, "X.png", 64, 64)
	maskPath := f.writeImage(t, "other.png", 32, 32)

	_, err := f.svc.OpenWithMask(context.Background(), path, maskPath)
	require.ErrorIs(t, err, entity.ErrMaskSizeMismatch)
}

func TestLabelingService_SplitPatches(t *testing.T) {
	f := newLabelingFixture(t)
	ctx := context.Background()
	path := f.writeImage(t, "X.png", 256, 256)

	doc, err := f.svc.Open(ctx, path)
	require.NoError(t, err)
	defer doc.Close()
	paint(doc, entity.Pt(190, 20), entity.Pt(200, 20))

	out, err := f.svc.Split(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, entity.ModeDrawing, out.Mode)
	require.Nil(t, out.Crop)
	require.Len(t, out.Patches.Patches, 4)
	require.Equal(t, 1, out.Patches.Defects)

	require.True(t, f.files.Exists(filepath.Join(f.splitDir, "defect", "X-0064-0192-000.png")))
	for _, name := range []string{"X-0064-0064-000.png", "X-0192-0064-000.png", "X-0192-0192-000.png"} {
		require.True(t, f.files.Exists(filepath.Join(f.splitDir, "normal", name)))
	}
}

func TestLabelingService_Crop(t *testing.T) {
	f := newLabelingFixture(t)
	ctx := context.Background()
	path := f.writeImage(t, "scan.v1.png", 200, 200)
	require.NoError(t, os.MkdirAll(f.splitDir, 0o755))

	doc, err := f.svc.Open(ctx, path)
	require.NoError(t, err)
	defer doc.Close()

	crop, err := f.svc.Crop(ctx, doc, entity.Quad{{10, 10}, {110, 10}, {110, 110}, {10, 110}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(f.splitDir, "scan.v1.png"), crop.Path)
	require.Equal(t, entity.ModeSplitting, doc.Engine.AppMode())

	written, err := f.files.Load(crop.Path)
	require.NoError(t, err)
	require.Equal(t, image.Pt(100, 100), written.Bounds().Size())
	require.Equal(t, color.RGBA{R: 100, G: 100, B: 100, A: 255}, written.RGBAAt(50, 50))
}

func TestLabelingService_AdjustIsRemembered(t *testing.T) {
	f := newLabelingFixture(t)
	ctx := context.Background()
	path := f.writeImage(t, "X.png", 16, 16)

	doc, err := f.svc.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, f.svc.Adjust(ctx, doc, 100, 50))
	doc.Close()

	session, err := f.sessions.Get(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 100, session.Brightness)
	require.Equal(t, 50, session.Contrast)

	reopened, err := f.svc.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	// 0.8*200 + 0.2*255
	frame, err := reopened.Engine.RenderFrame()
	require.NoError(t, err)
	require.Equal(t, uint8(211), frame.RGBAAt(0, 0).R)
}

func TestLabelingService_AdjustOutOfRange(t *testing.T) {
	f := newLabelingFixture(t)
	ctx := context.Background()
	path := f.writeImage(t, "X.png", 16, 16)

	doc, err := f.svc.Open(ctx, path)
	require.NoError(t, err)
	defer doc.Close()

	require.Error(t, f.svc.Adjust(ctx, doc, 151, 50))
	require.Error(t, f.svc.Adjust(ctx, doc, 50, -1))
}

func TestLabelingService_ZoomAndScrollAreRemembered(t *testing.T) {
	f := newLabelingFixture(t)
	ctx := context.Background()
	path := f.writeImage(t, "X.png", 40, 20)

	doc, err := f.svc.Open(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 1.0, doc.Engine.Scale())
	require.NoError(t, f.svc.SetZoom(ctx, doc, 250))
	require.NoError(t, f.svc.SetScroll(ctx, doc, 12, 7))
	require.Equal(t, 2.5, doc.Engine.Scale())
	doc.Close()

	session, err := f.sessions.Get(ctx, path)
	require.NoError(t, err)
	require.Equal(t, entity.ZoomManual, session.ZoomMode)
	require.Equal(t, 250, session.Zoom)
	require.Equal(t, 12, session.ScrollH)
	require.Equal(t, 7, session.ScrollV)

	reopened, err := f.svc.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()
	require.Equal(t, 2.5, reopened.Engine.Scale())

	display, err := reopened.Engine.RenderDisplay()
	require.NoError(t, err)
	require.Equal(t, image.Pt(100, 50), display.Bounds().Size())
}

func TestLabelingService_ZoomAndScrollOutOfRange(t *testing.T) {
	f := newLabelingFixture(t)
	ctx := context.Background()
	path := f.writeImage(t, "X.png", 16, 16)

	doc, err := f.svc.Open(ctx, path)
	require.NoError(t, err)
	defer doc.Close()

	require.ErrorIs(t, f.svc.SetZoom(ctx, doc, 0), entity.ErrInvalidScale)
	require.Error(t, f.svc.SetScroll(ctx, doc, -1, 0))
	require.Equal(t, 1.0, doc.Engine.Scale())

	session, err := f.sessions.Get(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 100, session.Zoom)
	require.Equal(t, entity.ZoomFitWindow, session.ZoomMode)
}
