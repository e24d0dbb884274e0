package voronoi

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
)

// EventKind - тип события прямой сканирования.
type EventKind int

const (
	SiteEventKind EventKind = iota + 1
	CircleEventKind
)

func (k EventKind) String() string {
	switch k {
	case SiteEventKind:
		return "site"
	case CircleEventKind:
		return "circle"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event - событие очереди. Реализуется только типами этого пакета.
type Event interface {
	Kind() EventKind
	// Point - координата, на которой событие срабатывает (Y - высота прямой сканирования).
	Point() Point
	bindToNode(node *rbtNode)
}

// SiteEvent - прямая сканирования дошла до сайта.
type SiteEvent struct {
	Site Point
	node *rbtNode
}

func (e *SiteEvent) Kind() EventKind          { return SiteEventKind }
func (e *SiteEvent) Point() Point             { return e.Site }
func (e *SiteEvent) bindToNode(node *rbtNode) { e.node = node }

// CircleEvent - предсказанное схлопывание центральной дуги тройки.
type CircleEvent struct {
	// нижняя точка описанной окружности
	At Point
	// будущая вершина диаграммы (центр окружности)
	Vertex Point

	// дуга, которая схлопнется; событие живо, пока дуга держит его у себя
	center nodeID

	node *rbtNode
}

func (e *CircleEvent) Kind() EventKind          { return CircleEventKind }
func (e *CircleEvent) Point() Point             { return e.At }
func (e *CircleEvent) bindToNode(node *rbtNode) { e.node = node }

// queued сообщает, ждет ли событие в очереди.
func (e *CircleEvent) queued() bool {
	return e.node != nil
}

// sweepsBefore - порядок очереди: по убыванию Y; на одной высоте сайты раньше событий круга,
// остальное - в порядке вставки.
func sweepsBefore(a, b Event) bool {
	ay, by := a.Point().Y, b.Point().Y
	if ay != by {
		return ay > by
	}
	return a.Kind() == SiteEventKind && b.Kind() == CircleEventKind
}

// Очередь событий, упорядоченная по убыванию Y.
type eventQueue struct {
	events rbt
}

type sitesByY []Point

func (s sitesByY) Len() int      { return len(s) }
func (s sitesByY) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s sitesByY) Less(i, j int) bool {
	if s[i].Y != s[j].Y {
		return s[i].Y > s[j].Y
	}
	return s[i].X < s[j].X
}

// initialize заменяет содержимое очереди событиями сайтов.
func (q *eventQueue) initialize(sites []Point) error {
	if len(sites) == 0 {
		return errors.WithStack(ErrNoSites)
	}

	sorted := make(sitesByY, len(sites))
	copy(sorted, sites)
	sort.Sort(sorted)

	q.events = rbt{}
	var last *rbtNode
	for _, site := range sorted {
		last = q.events.insertSuccessor(last, &SiteEvent{Site: site})
	}
	return nil
}

func (q *eventQueue) hasEvents() bool {
	return q.events.root != nil
}

func (q *eventQueue) len() int {
	return q.events.size
}

// popNext удаляет и возвращает событие с наибольшим Y, nil если очередь пуста.
func (q *eventQueue) popNext() Event {
	node := q.events.head()
	if node == nil {
		return nil
	}
	q.events.removeNode(node)
	return node.value
}

func (q *eventQueue) insert(e *CircleEvent) {
	if e.queued() {
		return
	}
	q.events.insert(e, sweepsBefore)
}

// cancel убирает событие круга из очереди. Повторный вызов, как и вызов для
// уже обработанного события, ничего не делает.
func (q *eventQueue) cancel(e *CircleEvent) {
	if e == nil || !e.queued() {
		return
	}
	q.events.removeNode(e.node)
}
