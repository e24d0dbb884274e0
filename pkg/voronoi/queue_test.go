package voronoi

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func newCircleEvent(x, y int) *CircleEvent {
	return &CircleEvent{At: Point{x, y}, center: nilNode}
}

// peekEvent возвращает голову очереди, не удаляя ее.
func peekEvent(q *eventQueue) Event {
	node := q.events.head()
	if node == nil {
		return nil
	}
	return node.value
}

func drain(q *eventQueue) []Event {
	var out []Event
	for ev := q.popNext(); ev != nil; ev = q.popNext() {
		out = append(out, ev)
	}
	return out
}

func TestEventQueueSiteOrder(t *testing.T) {
	var q eventQueue
	require.NoError(t, q.initialize([]Point{{1, 1}, {5, 5}, {3, 9}, {4, 5}}))
	require.Equal(t, 4, q.len())
	require.Equal(t, Point{3, 9}, peekEvent(&q).Point())

	var got []Point
	for _, ev := range drain(&q) {
		require.Equal(t, SiteEventKind, ev.Kind())
		got = append(got, ev.Point())
	}
	require.Equal(t, []Point{{3, 9}, {4, 5}, {5, 5}, {1, 1}}, got)
	require.False(t, q.hasEvents())
	require.Nil(t, q.popNext())
	require.Nil(t, peekEvent(&q))
}

func TestEventQueueEmpty(t *testing.T) {
	var q eventQueue
	err := q.initialize(nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoSites))
}

func TestEventQueueCircleEvents(t *testing.T) {
	var q eventQueue
	require.NoError(t, q.initialize([]Point{{0, 10}, {0, 5}, {0, 2}}))

	between := newCircleEvent(7, 6)
	sameY := newCircleEvent(1, 5)
	sameYLater := newCircleEvent(2, 5)
	last := newCircleEvent(0, -4)
	for _, e := range []*CircleEvent{last, sameY, between, sameYLater} {
		q.insert(e)
	}
	require.Equal(t, 7, q.len())

	var got []string
	for _, ev := range drain(&q) {
		got = append(got, ev.Kind().String()+ev.Point().String())
	}
	// на одной высоте сайт идет первым, события круга - в порядке вставки
	require.Equal(t, []string{
		"site(0,10)",
		"circle(7,6)",
		"site(0,5)",
		"circle(1,5)",
		"circle(2,5)",
		"site(0,2)",
		"circle(0,-4)",
	}, got)
}

func TestEventQueueCancel(t *testing.T) {
	var q eventQueue
	require.NoError(t, q.initialize([]Point{{0, 0}}))

	e := newCircleEvent(3, 3)
	q.insert(e)
	q.insert(e)
	require.True(t, e.queued())
	require.Equal(t, 2, q.len())

	q.cancel(e)
	require.False(t, e.queued())
	require.Equal(t, 1, q.len())

	q.cancel(e)
	q.cancel(nil)
	require.Equal(t, 1, q.len())

	ev := q.popNext()
	require.Equal(t, SiteEventKind, ev.Kind())
	require.Nil(t, q.popNext())

	// обработанное событие отменять уже нечего
	q.insert(e)
	require.Equal(t, CircleEventKind, q.popNext().Kind())
	q.cancel(e)
	require.Equal(t, 0, q.len())
}

func TestEventQueueRandomOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("events pop in non-increasing Y", prop.ForAll(
		func(ys []int, cancelEvery int) bool {
			var q eventQueue
			if err := q.initialize([]Point{{0, 0}}); err != nil {
				return false
			}
			events := make([]*CircleEvent, len(ys))
			for i, y := range ys {
				events[i] = newCircleEvent(i, y)
				q.insert(events[i])
			}
			cancelled := 0
			for i := 0; i < len(events); i += cancelEvery {
				q.cancel(events[i])
				cancelled++
			}
			if q.len() != 1+len(ys)-cancelled {
				return false
			}

			prev := Event(nil)
			n := 0
			for ev := q.popNext(); ev != nil; ev = q.popNext() {
				if prev != nil && sweepsBefore(ev, prev) {
					return false
				}
				prev = ev
				n++
			}
			return n == 1+len(ys)-cancelled && q.len() == 0
		},
		gen.SliceOf(gen.IntRange(-50, 50)),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}

func TestEventKindString(t *testing.T) {
	require.Equal(t, "site", SiteEventKind.String())
	require.Equal(t, "circle", CircleEventKind.String())
	require.Equal(t, "EventKind(9)", EventKind(9).String())
}
