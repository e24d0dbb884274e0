package bbox

import (
	"math"
	"testing"

	"github.com/0x0FACED/go-sweepline/pkg/voronoi"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"
)

func threeSites(t *testing.T) *voronoi.Diagram {
	t.Helper()
	d, err := voronoi.Build([]voronoi.Point{{X: 110, Y: 150}, {X: 130, Y: 160}, {X: 170, Y: 140}})
	require.NoError(t, err)
	return d
}

func requireInside(t *testing.T, box BoundingBox, p r2.Point) {
	t.Helper()
	require.True(t, box.X.Lo-epsilon <= p.X && p.X <= box.X.Hi+epsilon &&
		box.Y.Lo-epsilon <= p.Y && p.Y <= box.Y.Hi+epsilon, "%v outside %v", p, box.Rect)
}

func TestClip(t *testing.T) {
	d := threeSites(t)
	box := FromSize(300, 300)
	segs := Clip(d, box)
	require.Len(t, segs, 3)

	for _, seg := range segs {
		requireInside(t, box, seg.A)
		requireInside(t, box, seg.B)
		require.Equal(t, seg.Edge.Left, seg.Left)
		require.Equal(t, seg.Edge.Right, seg.Right)
	}

	// луч, приходящий в вершину сверху слева
	first := segs[0]
	require.Equal(t, r2.Point{X: 136, Y: 121}, first.B)
	require.InDelta(t, 46.5, first.A.X, 1e-9)
	require.InDelta(t, 300, first.A.Y, 1e-9)
}

func TestClipOutside(t *testing.T) {
	d := threeSites(t)
	require.Empty(t, Clip(d, New(1000, 1100, 1000, 1100)))
}

func TestClipFullLine(t *testing.T) {
	d, err := voronoi.Build([]voronoi.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	require.NoError(t, err)

	segs := Clip(d, New(0, 10, -5, 5))
	require.Len(t, segs, 1)
	require.Equal(t, r2.Point{X: 5, Y: -5}, segs[0].A)
	require.Equal(t, r2.Point{X: 5, Y: 5}, segs[0].B)

	cells := Cells(d, segs)
	require.Len(t, cells, 2)
	require.Equal(t, voronoi.Point{X: 0, Y: 0}, cells[0].Site)
	require.Len(t, cells[0].Segments, 1)
	require.Len(t, cells[1].Segments, 1)

	rev := cells[1].Segments[0]
	require.Equal(t, voronoi.Point{X: 10, Y: 0}, rev.Left)
	require.Equal(t, r2.Point{X: 5, Y: 5}, rev.A)
	require.Same(t, segs[0].Edge.Twin, rev.Edge)
}

func TestCells(t *testing.T) {
	d, err := voronoi.Build([]voronoi.Point{{X: 50, Y: 50}, {X: 20, Y: 20}, {X: 80, Y: 20}, {X: 20, Y: 80}, {X: 80, Y: 80}})
	require.NoError(t, err)
	cells := Cells(d, Clip(d, FromSize(100, 100)))
	require.Len(t, cells, 5)

	center := cells[0]
	require.Equal(t, voronoi.Point{X: 50, Y: 50}, center.Site)
	require.Len(t, center.Segments, 4)

	prev := math.Inf(-1)
	for _, seg := range center.Segments {
		require.Equal(t, center.Site, seg.Left)
		angle := math.Atan2(float64(seg.Right.Y-center.Site.Y), float64(seg.Right.X-center.Site.X))
		require.GreaterOrEqual(t, angle, prev)
		prev = angle
	}

	for _, c := range cells[1:] {
		for _, seg := range c.Segments {
			require.Equal(t, c.Site, seg.Left)
		}
	}
}

func TestClipT(t *testing.T) {
	t0, t1 := math.Inf(-1), math.Inf(1)
	require.True(t, clipT(-1, 3, &t0, &t1))
	require.Equal(t, -3.0, t0)
	require.True(t, clipT(2, 4, &t0, &t1))
	require.Equal(t, 2.0, t1)
	require.False(t, clipT(1, -10, &t0, &t1))
	require.False(t, clipT(0, -1, &t0, &t1))
	require.True(t, clipT(0, 0, &t0, &t1))
}
