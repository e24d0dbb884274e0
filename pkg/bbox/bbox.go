// Package bbox обрезает полуребра диаграммы по прямоугольнику и собирает ячейки.
// Ядро выдает ребра, у которых может не быть одного или обоих концов; здесь они
// превращаются в отрезки, которые можно рисовать.
package bbox

import (
	"math"
	"sort"

	"github.com/0x0FACED/go-sweepline/pkg/voronoi"
	"github.com/golang/geo/r2"
)

const epsilon = 1e-9

// BoundingBox - прямоугольник обрезки.
type BoundingBox struct {
	r2.Rect
}

// New создает прямоугольник [xl, xr] x [yb, yt].
func New(xl, xr, yb, yt float64) BoundingBox {
	return BoundingBox{r2.RectFromPoints(r2.Point{X: xl, Y: yb}, r2.Point{X: xr, Y: yt})}
}

// FromSize - прямоугольник [0, width] x [0, height].
func FromSize(width, height int) BoundingBox {
	return New(0, float64(width), 0, float64(height))
}

// Segment - обрезанное ребро. Ячейка Left лежит слева от направления A -> B.
type Segment struct {
	A, B  r2.Point
	Left  voronoi.Point
	Right voronoi.Point
	// полуребро диаграммы, из которого получен отрезок
	Edge *voronoi.HalfEdge
}

func (s Segment) reversed() Segment {
	edge := s.Edge
	if edge != nil {
		edge = edge.Twin
	}
	return Segment{A: s.B, B: s.A, Left: s.Right, Right: s.Left, Edge: edge}
}

func toR2(p voronoi.Point) r2.Point {
	return r2.Point{X: float64(p.X), Y: float64(p.Y)}
}

// Clip обрезает каждое ребро диаграммы (одно полуребро из пары близнецов) по
// прямоугольнику. Ребра вне прямоугольника и выродившиеся в точку отбрасываются.
func Clip(d *voronoi.Diagram, box BoundingBox) []Segment {
	var segs []Segment
	for _, h := range d.Edges() {
		if seg, ok := clipHalfEdge(h, box); ok {
			segs = append(segs, seg)
		}
	}
	return segs
}

// clipHalfEdge строит параметрическую прямую полуребра: отрезок, если известны оба
// конца, луч при одном конце и всю биссектрису, если концов нет.
func clipHalfEdge(h *voronoi.HalfEdge, box BoundingBox) (Segment, bool) {
	dx, dy := h.Direction()
	dir := r2.Point{X: float64(dx), Y: float64(dy)}
	t0, t1 := math.Inf(-1), math.Inf(1)

	var origin r2.Point
	switch {
	case h.Start != nil && h.End != nil:
		origin = toR2(*h.Start)
		dir = toR2(*h.End).Sub(origin)
		t0, t1 = 0, 1
	case h.Start != nil:
		origin = toR2(*h.Start)
		t0 = 0
	case h.End != nil:
		origin = toR2(*h.End)
		t1 = 0
	default:
		origin = toR2(h.Left).Add(toR2(h.Right)).Mul(0.5)
	}

	if dir.Norm() < epsilon {
		return Segment{}, false
	}
	if !clipLine(origin, dir, box, &t0, &t1) {
		return Segment{}, false
	}

	a := origin.Add(dir.Mul(t0))
	b := origin.Add(dir.Mul(t1))
	if math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon {
		return Segment{}, false
	}
	return Segment{A: a, B: b, Left: h.Left, Right: h.Right, Edge: h}, true
}

// clipLine - Лянг-Барски для origin + t*dir, t в [t0, t1]; границы могут быть бесконечными.
func clipLine(origin, dir r2.Point, box BoundingBox, t0, t1 *float64) bool {
	xl, xr := box.X.Lo, box.X.Hi
	yb, yt := box.Y.Lo, box.Y.Hi

	// left, right, bottom, top
	return clipT(-dir.X, origin.X-xl, t0, t1) &&
		clipT(dir.X, xr-origin.X, t0, t1) &&
		clipT(-dir.Y, origin.Y-yb, t0, t1) &&
		clipT(dir.Y, yt-origin.Y, t0, t1)
}

// clipT сужает [t0, t1] ограничением p*t <= q.
func clipT(p, q float64, t0, t1 *float64) bool {
	if p == 0 {
		return q >= 0
	}
	r := q / p
	if p < 0 {
		if r > *t1 {
			return false
		}
		if r > *t0 {
			*t0 = r
		}
	} else {
		if r < *t0 {
			return false
		}
		if r < *t1 {
			*t1 = r
		}
	}
	return true
}

// Cell - обрезанные ребра вокруг одного сайта, каждое ориентировано так, что сайт слева.
type Cell struct {
	Site     voronoi.Point
	Segments []Segment
}

type segmentsByAngle struct {
	site voronoi.Point
	segs []Segment
}

func (s segmentsByAngle) Len() int      { return len(s.segs) }
func (s segmentsByAngle) Swap(i, j int) { s.segs[i], s.segs[j] = s.segs[j], s.segs[i] }
func (s segmentsByAngle) Less(i, j int) bool {
	return s.angle(s.segs[i]) < s.angle(s.segs[j])
}

// angle - направление на соседний сайт.
func (s segmentsByAngle) angle(seg Segment) float64 {
	return math.Atan2(float64(seg.Right.Y-s.site.Y), float64(seg.Right.X-s.site.X))
}

// Cells раскладывает отрезки по ячейкам сайтов диаграммы и упорядочивает их
// против часовой стрелки вокруг сайта.
func Cells(d *voronoi.Diagram, segs []Segment) []Cell {
	index := make(map[voronoi.Point]int, len(d.Sites))
	cells := make([]Cell, len(d.Sites))
	for i, s := range d.Sites {
		cells[i].Site = s.Point
		index[s.Point] = i
	}

	for _, seg := range segs {
		if i, ok := index[seg.Left]; ok {
			cells[i].Segments = append(cells[i].Segments, seg)
		}
		if i, ok := index[seg.Right]; ok {
			cells[i].Segments = append(cells[i].Segments, seg.reversed())
		}
	}

	for i := range cells {
		sort.Sort(segmentsByAngle{site: cells[i].Site, segs: cells[i].Segments})
	}
	return cells
}
