package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCenteredQuad(t *testing.T) {
	q := CenteredQuad(image.Pt(1000, 800))
	require.Equal(t, Quad{{400, 300}, {600, 300}, {600, 500}, {400, 500}}, q)

	small := CenteredQuad(image.Pt(100, 60))
	w, h := small.BoundingBox()
	require.Equal(t, 30, w)
	require.Equal(t, 30, h)
	require.Equal(t, image.Pt(35, 15), small[0])
}

func TestQuadBoundingBox_AxisAligned(t *testing.T) {
	q := Quad{{10, 5}, {90, 20}, {70, 60}, {0, 40}}
	w, h := q.BoundingBox()
	require.Equal(t, 90, w)
	require.Equal(t, 55, h)
}

func TestQuadPerspectiveTarget_SquareIsIdentity(t *testing.T) {
	q := Quad{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	src, dst, size := q.PerspectiveTarget()
	require.Equal(t, src, dst)
	require.Equal(t, image.Pt(100, 100), size)
}

func TestQuadPerspectiveTarget_KeepsSwappedOrder(t *testing.T) {
	q := Quad{{0, 0}, {80, 0}, {80, 30}, {0, 30}}
	_, dst, size := q.PerspectiveTarget()
	require.Equal(t, [4]Point{Pt(0, 0), Pt(80, 0), Pt(30, 80), Pt(0, 30)}, dst)
	require.Equal(t, image.Pt(30, 80), size)
}

func TestQuadEdges(t *testing.T) {
	q := DefaultQuad()
	e := q.Edges()
	require.Equal(t, q[3], e[3][0])
	require.Equal(t, q[0], e[3][1])
}
