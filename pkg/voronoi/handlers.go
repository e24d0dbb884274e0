package voronoi

import (
	"github.com/0x0FACED/go-sweepline/pkg/logger"
	"go.uber.org/zap"
)

// outcome - то, что обработчик события добавил в диаграмму.
type outcome struct {
	vertex *Vertex
	// новые полуребра, их надо добавить в диаграмму
	opened []*HalfEdge
	// полуребра, получившие вершину (уже есть в диаграмме)
	closed    []*HalfEdge
	scheduled int
	cancelled int
	// событие круга оказалось устаревшим
	discarded bool
}

// determineCircleEvent строит событие круга для тройки сайтов в порядке пляжной линии.
// Повторяющиеся, коллинеарные и расходящиеся тройки дают nil.
func determineCircleEvent(left, center, right Point) *CircleEvent {
	if left == center || center == right || left == right {
		return nil
	}
	if !IsValidCircleEvent(left, center, right) {
		return nil
	}
	vertex, ok := Circumcenter(left, center, right)
	if !ok {
		return nil
	}
	return &CircleEvent{
		At:     LowestPointOfCircle(vertex, left),
		Vertex: vertex,
		center: nilNode,
	}
}

// scheduler - общая часть обоих обработчиков: планирование событий круга.
type scheduler struct {
	log *logger.ZapLogger
}

// schedule проверяет тройку дуг и ставит событие круга на центральную дугу.
// Прежнее событие центральной дуги отменяется в любом случае: ее соседи изменились.
func (s scheduler) schedule(q *eventQueue, bl *beachLine, arcs []nodeID, out *outcome) {
	if len(arcs) != 3 {
		return
	}
	center := arcs[1]
	if stale := bl.detachEvent(center); stale != nil {
		q.cancel(stale)
		out.cancelled++
		s.log.Debug("[f-circle] Событие круга отменено", zap.Stringer("at", stale.At))
	}

	l, c, r := bl.nodes[arcs[0]].site, bl.nodes[center].site, bl.nodes[arcs[2]].site
	e := determineCircleEvent(l, c, r)
	if e == nil {
		return
	}
	e.center = center

	bl.nodes[center].event = e
	q.insert(e)
	out.scheduled++
	s.log.Debug("[f-circle] Запланировано событие круга",
		zap.Stringer("left", l), zap.Stringer("center", c), zap.Stringer("right", r),
		zap.Stringer("at", e.At), zap.Stringer("vertex", e.Vertex))
}

// siteEventHandler: вставка дуги, новое ребро, проверка троек по обе стороны новой дуги.
type siteEventHandler struct {
	scheduler
}

func (h siteEventHandler) handle(e *SiteEvent, q *eventQueue, bl *beachLine) outcome {
	var out outcome

	// дуга над сайтом будет разрезана, ее событие больше не имеет смысла
	if stale := bl.findCircleEventAbove(e.Site); stale != nil {
		bl.detachEvent(stale.center)
		q.cancel(stale)
		out.cancelled++
		h.log.Debug("[f-site] Снято событие разрезаемой дуги", zap.Stringer("at", stale.At))
	}

	arc, edges := bl.insertSite(e.Site)
	out.opened = edges
	h.log.Debug("[f-site] Дуга вставлена", zap.Stringer("site", e.Site), zap.Int("edges", len(edges)))

	// новая дуга - правая в тройке слева и левая в тройке справа
	h.schedule(q, bl, bl.findCircleEventCandidates(arc, counterClockwise, 3), &out)
	h.schedule(q, bl, bl.findCircleEventCandidates(arc, clockwise, 3), &out)
	return out
}

// circleEventHandler: вершина, удаление дуги, закрытие ребер, проверка новых троек.
type circleEventHandler struct {
	scheduler
}

func (h circleEventHandler) handle(e *CircleEvent, q *eventQueue, bl *beachLine) outcome {
	if !bl.isLive(e) {
		h.log.Debug("[f-circle] Устаревшее событие круга пропущено", zap.Stringer("at", e.At))
		return outcome{discarded: true}
	}

	var out outcome
	arc := e.center
	left := bl.prevArc(arc)
	right := bl.nextArc(arc)

	// события соседей включают выдавливаемую дугу
	for _, n := range []nodeID{left, right} {
		if stale := bl.detachEvent(n); stale != nil {
			q.cancel(stale)
			out.cancelled++
		}
	}
	bl.detachEvent(arc)

	out.vertex = &Vertex{e.Vertex}
	out.opened, out.closed = bl.removeArc(arc, e.Vertex)
	h.log.Debug("[f-circle] Дуга выдавлена", zap.Stringer("vertex", e.Vertex), zap.Stringer("at", e.At))

	// бывшие соседи теперь рядом: (LL, L, R) и (L, R, RR)
	h.schedule(q, bl, bl.findCircleEventCandidates(right, counterClockwise, 3), &out)
	h.schedule(q, bl, bl.findCircleEventCandidates(left, clockwise, 3), &out)
	return out
}
