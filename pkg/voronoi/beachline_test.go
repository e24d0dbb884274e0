package voronoi

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func arcSites(bl *beachLine) []Point {
	var out []Point
	for _, id := range bl.arcs() {
		out = append(out, bl.nodes[id].site)
	}
	return out
}

func countBreakpoints(bl *beachLine) int {
	n := 0
	var walk func(id nodeID)
	walk = func(id nodeID) {
		if id == nilNode || bl.nodes[id].kind != breakpointNode {
			return
		}
		n++
		walk(bl.nodes[id].left)
		walk(bl.nodes[id].right)
	}
	walk(bl.root)
	return n
}

func requirePanicsWithAssertion(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.IsAssertionFailure(err), "%v", err)
	}()
	f()
}

func TestBeachLineSingleArc(t *testing.T) {
	bl := newBeachLine()
	require.True(t, bl.empty())
	require.Nil(t, bl.findCircleEventAbove(Point{1, 1}))

	arc, edges := bl.insertSite(Point{4, 7})
	require.Empty(t, edges)
	require.Equal(t, bl.root, arc)
	require.Equal(t, []Point{{4, 7}}, arcSites(bl))
	require.Equal(t, nilNode, bl.prevArc(arc))
	require.Equal(t, nilNode, bl.nextArc(arc))
	require.NoError(t, bl.check())
}

func TestBeachLineSplit(t *testing.T) {
	a, b := Point{5, 10}, Point{4, 3}
	bl := newBeachLine()
	bl.insertSite(a)
	arc, edges := bl.insertSite(b)

	// дуга A разрезана на две части с новой дугой посередине
	require.Equal(t, []Point{a, b, a}, arcSites(bl))
	require.Equal(t, 2, countBreakpoints(bl))
	require.Equal(t, b, bl.nodes[arc].site)
	require.NoError(t, bl.check())

	require.Len(t, edges, 2)
	h, twin := edges[0], edges[1]
	require.Same(t, twin, h.Twin)
	require.Same(t, h, twin.Twin)
	require.Equal(t, a, h.Left)
	require.Equal(t, b, h.Right)
	require.Equal(t, b, twin.Left)
	require.Equal(t, a, twin.Right)
	require.Nil(t, h.Start)
	require.Nil(t, h.End)

	// каждая точка излома чертит свою половину ребра
	lbp, rbp := bl.leftBreakpoint(arc), bl.rightBreakpoint(arc)
	require.Same(t, h, bl.nodes[lbp].edge)
	require.Same(t, twin, bl.nodes[rbp].edge)
}

func TestBeachLineSameHeight(t *testing.T) {
	a, b, c := Point{0, 10}, Point{10, 10}, Point{25, 10}
	bl := newBeachLine()
	bl.insertSite(a)
	_, edges := bl.insertSite(b)

	// на одной высоте дуги встают рядом: две дуги, одна точка излома
	require.Equal(t, []Point{a, b}, arcSites(bl))
	require.Equal(t, 1, countBreakpoints(bl))
	require.Len(t, edges, 2)
	require.Equal(t, a, edges[0].Left)
	require.Equal(t, b, edges[0].Right)

	bl.insertSite(c)
	require.Equal(t, []Point{a, b, c}, arcSites(bl))
	require.Equal(t, 2, countBreakpoints(bl))
	require.NoError(t, bl.check())
}

func TestFindCircleEventCandidates(t *testing.T) {
	bl := newBeachLine()
	bl.insertSite(Point{130, 160})
	bl.insertSite(Point{110, 150})
	arc, _ := bl.insertSite(Point{170, 140})

	ids := bl.arcs()
	require.Len(t, ids, 5)
	require.Equal(t, ids[3], arc)

	require.Equal(t, ids[1:4], bl.findCircleEventCandidates(arc, counterClockwise, 3))
	require.Equal(t, ids[3:5], bl.findCircleEventCandidates(arc, clockwise, 3))
	require.Equal(t, ids[0:2], bl.findCircleEventCandidates(ids[1], counterClockwise, 3))
	require.Equal(t, ids[2:4], bl.findCircleEventCandidates(ids[2], clockwise, 2))
	require.Equal(t, []nodeID{arc}, bl.findCircleEventCandidates(arc, clockwise, 1))
}

func TestBeachLineRemoveArc(t *testing.T) {
	a, b, c := Point{110, 150}, Point{130, 160}, Point{170, 140}
	vertex := Point{136, 121}

	bl := newBeachLine()
	bl.insertSite(b)
	bl.insertSite(a)
	bl.insertSite(c)
	require.Equal(t, []Point{b, a, b, c, b}, arcSites(bl))

	middle := bl.arcs()[2]
	opened, closed := bl.removeArc(middle, vertex)
	require.Equal(t, []Point{b, a, c, b}, arcSites(bl))
	require.Equal(t, 3, countBreakpoints(bl))
	require.NoError(t, bl.check())
	require.Equal(t, freeNode, bl.nodes[middle].kind)

	require.Len(t, closed, 2)
	require.Equal(t, a, closed[0].Left)
	require.Equal(t, b, closed[0].Right)
	require.Equal(t, b, closed[1].Left)
	require.Equal(t, c, closed[1].Right)
	for _, h := range closed {
		require.Equal(t, vertex, *h.Start)
		require.Equal(t, vertex, *h.Twin.End)
	}

	require.Len(t, opened, 2)
	h, twin := opened[0], opened[1]
	require.Equal(t, a, h.Left)
	require.Equal(t, c, h.Right)
	require.Equal(t, vertex, *h.End)
	require.Nil(t, h.Start)
	require.Equal(t, vertex, *twin.Start)
	require.Nil(t, twin.End)

	// объединенная точка излома между A и C чертит новое полуребро
	ac := bl.arcs()[1]
	require.Same(t, h, bl.nodes[bl.rightBreakpoint(ac)].edge)
}

func TestBeachLineReusesNodes(t *testing.T) {
	bl := newBeachLine()
	bl.insertSite(Point{130, 160})
	bl.insertSite(Point{110, 150})
	bl.insertSite(Point{170, 140})
	allocated := len(bl.nodes)

	// узел разрезанной дуги уже лежит в списке свободных
	require.Len(t, bl.free, 1)

	bl.removeArc(bl.arcs()[2], Point{136, 121})
	require.Len(t, bl.free, 3)

	bl.insertSite(Point{20, 10})
	require.Len(t, bl.nodes, allocated+2)
	require.Len(t, bl.free, 1)
	require.NoError(t, bl.check())
}

func TestBeachLineEvents(t *testing.T) {
	bl := newBeachLine()
	arc, _ := bl.insertSite(Point{0, 0})

	e := newCircleEvent(0, -1)
	e.center = arc
	require.False(t, bl.isLive(e))

	bl.nodes[arc].event = e
	require.True(t, bl.isLive(e))
	require.Same(t, e, bl.findCircleEventAbove(Point{3, -2}))

	require.Same(t, e, bl.detachEvent(arc))
	require.False(t, bl.isLive(e))
	require.Nil(t, bl.detachEvent(arc))
	require.Nil(t, bl.detachEvent(nilNode))

	e.center = nilNode
	require.False(t, bl.isLive(e))
}

func TestBeachLineEventOnReusedSlot(t *testing.T) {
	bl := newBeachLine()
	bl.insertSite(Point{130, 160})
	bl.insertSite(Point{110, 150})
	bl.insertSite(Point{170, 140})

	middle := bl.arcs()[2]
	stale := newCircleEvent(136, 83)
	stale.center = middle
	bl.nodes[middle].event = stale
	require.True(t, bl.isLive(stale))

	bl.removeArc(middle, Point{136, 121})
	require.False(t, bl.isLive(stale))

	// слот схлопнутой дуги достается дуге нового сайта
	arc, _ := bl.insertSite(Point{20, 10})
	require.Equal(t, middle, arc)
	require.Equal(t, arcNode, bl.nodes[arc].kind)
	require.Nil(t, bl.nodes[arc].event)
	require.False(t, bl.isLive(stale))

	fresh := newCircleEvent(20, 0)
	fresh.center = arc
	bl.nodes[arc].event = fresh
	require.True(t, bl.isLive(fresh))
	require.False(t, bl.isLive(stale))
	require.NoError(t, bl.check())
}

func TestBeachLineStructuralFaults(t *testing.T) {
	bl := newBeachLine()
	arc, _ := bl.insertSite(Point{0, 0})

	requirePanicsWithAssertion(t, func() { bl.removeArc(arc, Point{}) })
	requirePanicsWithAssertion(t, func() { bl.mustArc(nilNode) })

	_, _ = bl.insertSite(Point{3, -5})
	bp := bl.root
	requirePanicsWithAssertion(t, func() { bl.detachEvent(bp) })

	bl.nodes[bp].leftSite = Point{9, 9}
	err := bl.check()
	require.Error(t, err)
	require.True(t, errors.IsAssertionFailure(err))
}
