package voronoi

import "fmt"

// Kind - тип геометрического объекта диаграммы.
type Kind int

const (
	KindSite Kind = iota + 1
	KindVertex
	KindHalfEdge
)

func (k Kind) String() string {
	switch k {
	case KindSite:
		return "site"
	case KindVertex:
		return "vertex"
	case KindHalfEdge:
		return "half-edge"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Geometry - любой объект, попадающий в диаграмму.
type Geometry interface {
	Kind() Kind
	// Anchor - опорная точка объекта; у полуребра это начало, если оно уже известно.
	Anchor() (Point, bool)
}

// Site - входная точка алгоритма.
type Site struct {
	Point
}

func (s Site) Kind() Kind            { return KindSite }
func (s Site) Anchor() (Point, bool) { return s.Point, true }
func (s Site) String() string        { return "site " + s.Point.String() }

// Vertex - вершина диаграммы, появляется только из события круга.
type Vertex struct {
	Point
}

func (v Vertex) Kind() Kind            { return KindVertex }
func (v Vertex) Anchor() (Point, bool) { return v.Point, true }
func (v Vertex) String() string        { return "vertex " + v.Point.String() }

// HalfEdge - направленная половина ребра. Ячейка сайта Left лежит слева от направления
// Start -> End, ячейка Right - справа. Start/End равны nil, пока конец не известен
// (ребро уходит в бесконечность).
type HalfEdge struct {
	ID    int
	Left  Point
	Right Point
	Start *Point
	End   *Point
	Twin  *HalfEdge
}

func newHalfEdgePair(left, right Point) (*HalfEdge, *HalfEdge) {
	h := &HalfEdge{Left: left, Right: right}
	twin := &HalfEdge{Left: right, Right: left, Twin: h}
	h.Twin = twin
	return h, twin
}

func (h *HalfEdge) Kind() Kind { return KindHalfEdge }

func (h *HalfEdge) Anchor() (Point, bool) {
	if h.Start == nil {
		return Point{}, false
	}
	return *h.Start, true
}

// Direction возвращает направление от Start к End: серединный перпендикуляр к Left-Right,
// повернутый так, что Left остается слева.
func (h *HalfEdge) Direction() (dx, dy int) {
	return h.Left.Y - h.Right.Y, h.Right.X - h.Left.X
}

// Bounded - известны оба конца.
func (h *HalfEdge) Bounded() bool {
	return h.Start != nil && h.End != nil
}

// setStart закрывает полуребро в вершине; у близнеца эта же вершина становится концом.
func (h *HalfEdge) setStart(v Point) {
	p := v
	h.Start = &p
	if h.Twin != nil {
		q := v
		h.Twin.End = &q
	}
}

func (h *HalfEdge) String() string {
	end := func(p *Point) string {
		if p == nil {
			return "inf"
		}
		return p.String()
	}
	return fmt.Sprintf("half-edge #%d %s|%s %s -> %s", h.ID, h.Left, h.Right, end(h.Start), end(h.End))
}

// Diagram - результат построения: сайты, вершины и полуребра в порядке появления.
// Грани не собираются, это работа потребителя (см. пакет bbox).
type Diagram struct {
	Sites      []Site
	Vertices   []Vertex
	HalfEdges  []*HalfEdge
	Geometries []Geometry
}

func (d *Diagram) add(g Geometry) {
	switch v := g.(type) {
	case Site:
		d.Sites = append(d.Sites, v)
	case Vertex:
		d.Vertices = append(d.Vertices, v)
	case *HalfEdge:
		v.ID = len(d.HalfEdges)
		d.HalfEdges = append(d.HalfEdges, v)
	default:
		panic(fmt.Sprintf("voronoi: unexpected geometry %T", g))
	}
	d.Geometries = append(d.Geometries, g)
}

// Edges возвращает по одному полуребру из каждой пары близнецов.
func (d *Diagram) Edges() []*HalfEdge {
	edges := make([]*HalfEdge, 0, len(d.HalfEdges)/2)
	for _, h := range d.HalfEdges {
		if h.Twin == nil || h.ID < h.Twin.ID {
			edges = append(edges, h)
		}
	}
	return edges
}
