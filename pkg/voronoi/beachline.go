package voronoi

import (
	"github.com/cockroachdb/errors"
)

// Пляжная линия - двоичное дерево: листья - дуги, внутренние узлы - точки излома.
// Узлы лежат в арене и адресуются индексами, поэтому перестройка дерева - это
// переприсваивание индексов, а не правка указателей на родителя.
type nodeID int32

const nilNode nodeID = -1

type nodeKind uint8

const (
	freeNode nodeKind = iota
	arcNode
	breakpointNode
)

type beachNode struct {
	kind   nodeKind
	parent nodeID
	left   nodeID
	right  nodeID

	// дуга: сайт и ее живое событие круга
	site  Point
	event *CircleEvent

	// точка излома: пара сайтов (левая дуга, правая дуга) и полуребро, которое она чертит
	leftSite  Point
	rightSite Point
	edge      *HalfEdge
}

type beachLine struct {
	nodes []beachNode
	free  []nodeID
	root  nodeID
}

func newBeachLine() *beachLine {
	return &beachLine{root: nilNode}
}

func (b *beachLine) alloc(n beachNode) nodeID {
	if k := len(b.free); k > 0 {
		id := b.free[k-1]
		b.free = b.free[:k-1]
		b.nodes[id] = n
		return id
	}
	b.nodes = append(b.nodes, n)
	return nodeID(len(b.nodes) - 1)
}

func (b *beachLine) newArc(site Point) nodeID {
	return b.alloc(beachNode{kind: arcNode, parent: nilNode, left: nilNode, right: nilNode, site: site})
}

func (b *beachLine) newBreakpoint(leftSite, rightSite Point, edge *HalfEdge, left, right nodeID) nodeID {
	id := b.alloc(beachNode{
		kind:      breakpointNode,
		parent:    nilNode,
		left:      left,
		right:     right,
		leftSite:  leftSite,
		rightSite: rightSite,
		edge:      edge,
	})
	b.nodes[left].parent = id
	b.nodes[right].parent = id
	return id
}

func (b *beachLine) release(id nodeID) {
	b.nodes[id] = beachNode{kind: freeNode, parent: nilNode, left: nilNode, right: nilNode}
	b.free = append(b.free, id)
}

// replace ставит узел with на место old в родителе parent (или в корень).
func (b *beachLine) replace(parent, old, with nodeID) {
	b.nodes[with].parent = parent
	if parent == nilNode {
		b.root = with
		return
	}
	if b.nodes[parent].left == old {
		b.nodes[parent].left = with
	} else {
		b.nodes[parent].right = with
	}
}

func (b *beachLine) empty() bool {
	return b.root == nilNode
}

func (b *beachLine) mustArc(id nodeID) *beachNode {
	if id == nilNode || int(id) >= len(b.nodes) || b.nodes[id].kind != arcNode {
		panic(errors.AssertionFailedf("voronoi: beach line node %d is not an arc", id))
	}
	return &b.nodes[id]
}

// arcAbove спускается по дереву, сравнивая X сайта с положением точек излома
// на высоте сайта, и возвращает дугу над ним.
func (b *beachLine) arcAbove(site Point) nodeID {
	x := float64(site.X)
	directrix := float64(site.Y)

	id := b.root
	for id != nilNode {
		n := &b.nodes[id]
		switch n.kind {
		case arcNode:
			return id
		case breakpointNode:
			if x < breakpointX(n.leftSite, n.rightSite, directrix) {
				id = n.left
			} else {
				id = n.right
			}
		default:
			panic(errors.AssertionFailedf("voronoi: freed node %d reachable from beach line root", id))
		}
	}
	return nilNode
}

// findCircleEventAbove возвращает живое событие круга дуги над сайтом.
func (b *beachLine) findCircleEventAbove(site Point) *CircleEvent {
	if b.empty() {
		return nil
	}
	return b.nodes[b.arcAbove(site)].event
}

// insertSite добавляет дугу нового сайта. Дуга над сайтом заменяется поддеревом
// (левая копия, новая дуга, правая копия) с двумя новыми точками излома; обе точки
// излома чертят одно ребро, поэтому открывается пара полуребер-близнецов.
// Если дуга над сайтом лежит на той же высоте (все предыдущие сайты на одной прямой
// сканирования), дуги просто встают рядом через одну точку излома.
func (b *beachLine) insertSite(site Point) (nodeID, []*HalfEdge) {
	if b.empty() {
		b.root = b.newArc(site)
		return b.root, nil
	}

	above := b.arcAbove(site)
	old := *b.mustArc(above)

	var subtree, arc nodeID
	var h, twin *HalfEdge

	if old.site.Y == site.Y {
		leftSite, rightSite := old.site, site
		if site.X < old.site.X {
			leftSite, rightSite = site, old.site
		}
		h, twin = newHalfEdgePair(leftSite, rightSite)
		l := b.newArc(leftSite)
		r := b.newArc(rightSite)
		subtree = b.newBreakpoint(leftSite, rightSite, h, l, r)
		arc = r
		if leftSite == site {
			arc = l
		}
	} else {
		// (A,B) чертит h, (B,A) - его близнеца
		h, twin = newHalfEdgePair(old.site, site)
		l := b.newArc(old.site)
		arc = b.newArc(site)
		r := b.newArc(old.site)
		inner := b.newBreakpoint(site, old.site, twin, arc, r)
		subtree = b.newBreakpoint(old.site, site, h, l, inner)
	}

	b.replace(old.parent, above, subtree)
	b.release(above)
	return arc, []*HalfEdge{h, twin}
}

// leftBreakpoint - точка излома между дугой и ее левой соседкой: первый предок,
// в правом поддереве которого лежит дуга.
func (b *beachLine) leftBreakpoint(id nodeID) nodeID {
	node, parent := id, b.nodes[id].parent
	for parent != nilNode && b.nodes[parent].left == node {
		node, parent = parent, b.nodes[parent].parent
	}
	return parent
}

func (b *beachLine) rightBreakpoint(id nodeID) nodeID {
	node, parent := id, b.nodes[id].parent
	for parent != nilNode && b.nodes[parent].right == node {
		node, parent = parent, b.nodes[parent].parent
	}
	return parent
}

func (b *beachLine) leftmost(id nodeID) nodeID {
	for b.nodes[id].kind == breakpointNode {
		id = b.nodes[id].left
	}
	return id
}

func (b *beachLine) rightmost(id nodeID) nodeID {
	for b.nodes[id].kind == breakpointNode {
		id = b.nodes[id].right
	}
	return id
}

func (b *beachLine) prevArc(id nodeID) nodeID {
	bp := b.leftBreakpoint(id)
	if bp == nilNode {
		return nilNode
	}
	return b.rightmost(b.nodes[bp].left)
}

func (b *beachLine) nextArc(id nodeID) nodeID {
	bp := b.rightBreakpoint(id)
	if bp == nilNode {
		return nilNode
	}
	return b.leftmost(b.nodes[bp].right)
}

type direction int

const (
	// counterClockwise - к левым соседям (убывание X)
	counterClockwise direction = iota
	// clockwise - к правым соседям (возрастание X)
	clockwise
)

// findCircleEventCandidates собирает до count подряд идущих дуг, начиная с arc и
// двигаясь в направлении dir. Результат всегда упорядочен слева направо.
func (b *beachLine) findCircleEventCandidates(arc nodeID, dir direction, count int) []nodeID {
	arcs := make([]nodeID, 1, count)
	arcs[0] = arc
	cur := arc
	for len(arcs) < count {
		if dir == clockwise {
			cur = b.nextArc(cur)
			if cur == nilNode {
				break
			}
			arcs = append(arcs, cur)
		} else {
			cur = b.prevArc(cur)
			if cur == nilNode {
				break
			}
			arcs = append([]nodeID{cur}, arcs...)
		}
	}
	return arcs
}

// removeArc выдавливает дугу в вершине vertex. Родитель дуги удаляется, брат поднимается
// на его место у деда. Вторая точка излома, сходившаяся у дуги, становится объединенной
// точкой излома между бывшими соседями и получает новую пару полуребер.
// Возвращает открытую пару и закрытые полуребра.
func (b *beachLine) removeArc(arc nodeID, vertex Point) (opened []*HalfEdge, closed []*HalfEdge) {
	b.mustArc(arc)

	lbp := b.leftBreakpoint(arc)
	rbp := b.rightBreakpoint(arc)
	if lbp == nilNode || rbp == nilNode {
		panic(errors.AssertionFailedf("voronoi: removing arc %d without two neighbours", arc))
	}

	parent := b.nodes[arc].parent
	var merged nodeID
	switch parent {
	case lbp:
		merged = rbp
	case rbp:
		merged = lbp
	default:
		panic(errors.AssertionFailedf("voronoi: arc %d parent %d is not one of its breakpoints", arc, parent))
	}

	leftEdge := b.nodes[lbp].edge
	rightEdge := b.nodes[rbp].edge
	leftEdge.setStart(vertex)
	rightEdge.setStart(vertex)
	closed = []*HalfEdge{leftEdge, rightEdge}

	sibling := b.nodes[parent].left
	if sibling == arc {
		sibling = b.nodes[parent].right
	}
	b.replace(b.nodes[parent].parent, parent, sibling)

	leftSite := b.nodes[lbp].leftSite
	rightSite := b.nodes[rbp].rightSite
	h, twin := newHalfEdgePair(leftSite, rightSite)
	// новая точка излома выходит из вершины: ее полуребро кончается в ней,
	// а близнец из нее начинается
	end, start := vertex, vertex
	h.End = &end
	twin.Start = &start

	m := &b.nodes[merged]
	m.leftSite = leftSite
	m.rightSite = rightSite
	m.edge = h

	b.release(arc)
	b.release(parent)
	return []*HalfEdge{h, twin}, closed
}

// isLive сообщает, остается ли событие живым событием своей центральной дуги.
func (b *beachLine) isLive(e *CircleEvent) bool {
	id := e.center
	if id == nilNode || int(id) >= len(b.nodes) {
		return false
	}
	n := &b.nodes[id]
	return n.kind == arcNode && n.event == e
}

// detachEvent снимает живое событие с дуги и возвращает его для отмены в очереди.
func (b *beachLine) detachEvent(arc nodeID) *CircleEvent {
	if arc == nilNode {
		return nil
	}
	n := b.mustArc(arc)
	e := n.event
	n.event = nil
	return e
}

// arcs возвращает дуги слева направо.
func (b *beachLine) arcs() []nodeID {
	var out []nodeID
	if b.empty() {
		return out
	}
	for id := b.leftmost(b.root); id != nilNode; id = b.nextArc(id) {
		out = append(out, id)
	}
	return out
}

// check проверяет структурные инварианты дерева.
func (b *beachLine) check() error {
	if b.empty() {
		return nil
	}
	if p := b.nodes[b.root].parent; p != nilNode {
		return errors.AssertionFailedf("voronoi: root %d has parent %d", b.root, p)
	}
	var walk func(id nodeID) error
	walk = func(id nodeID) error {
		n := &b.nodes[id]
		switch n.kind {
		case arcNode:
			return nil
		case breakpointNode:
			if n.left == nilNode || n.right == nilNode {
				return errors.AssertionFailedf("voronoi: breakpoint %d misses a child", id)
			}
			for _, child := range []nodeID{n.left, n.right} {
				if b.nodes[child].parent != id {
					return errors.AssertionFailedf("voronoi: node %d has parent %d, want %d", child, b.nodes[child].parent, id)
				}
				if err := walk(child); err != nil {
					return err
				}
			}
			if l := b.nodes[b.rightmost(n.left)].site; l != n.leftSite {
				return errors.AssertionFailedf("voronoi: breakpoint %d left site %s, arc %s", id, n.leftSite, l)
			}
			if r := b.nodes[b.leftmost(n.right)].site; r != n.rightSite {
				return errors.AssertionFailedf("voronoi: breakpoint %d right site %s, arc %s", id, n.rightSite, r)
			}
			return nil
		default:
			return errors.AssertionFailedf("voronoi: freed node %d is reachable", id)
		}
	}
	return walk(b.root)
}
