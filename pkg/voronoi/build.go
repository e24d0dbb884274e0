package voronoi

import (
	"github.com/0x0FACED/go-sweepline/pkg/logger"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type options struct {
	log *logger.ZapLogger
}

// Option настраивает построение.
type Option func(*options)

// WithLogger включает трассировку построения в переданный логгер.
func WithLogger(l *logger.ZapLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Stats - счетчики одного построения.
type Stats struct {
	SiteEvents      int
	CircleEvents    int
	Discarded       int
	Scheduled       int
	Cancelled       int
	PendingInQueue  int
	ArcsOnBeachLine int
}

// Builder ведет одно построение диаграммы: своя пляжная линия, своя очередь.
// Step обрабатывает ровно одно событие, между шагами вызывающий может
// проверить отмену.
type Builder struct {
	queue   eventQueue
	beach   *beachLine
	diagram *Diagram

	site   siteEventHandler
	circle circleEventHandler

	log   *logger.ZapLogger
	stats Stats
	step  int
	done  bool
	err   error
}

// NewBuilder проверяет сайты и заполняет очередь событиями сайтов.
func NewBuilder(sites []Point, opts ...Option) (*Builder, error) {
	o := options{log: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateSites(sites); err != nil {
		o.log.Error("[f] Некорректные сайты", zap.Error(err))
		return nil, err
	}

	b := &Builder{
		beach:   newBeachLine(),
		diagram: &Diagram{},
		site:    siteEventHandler{scheduler{log: o.log}},
		circle:  circleEventHandler{scheduler{log: o.log}},
		log:     o.log,
	}
	if err := b.queue.initialize(sites); err != nil {
		return nil, err
	}
	for _, s := range sites {
		b.diagram.add(Site{s})
	}

	b.log.Info("[f] Алгоритм Форчуна запущен", zap.Int("sites", len(sites)))
	return b, nil
}

func validateSites(sites []Point) error {
	if len(sites) == 0 {
		return errors.WithStack(ErrNoSites)
	}
	seen := make(map[Point]int, len(sites))
	for i, s := range sites {
		if !inRange(s) {
			return coordinateRangeError(s, i)
		}
		if j, ok := seen[s]; ok {
			return duplicateSiteError(s, j, i)
		}
		seen[s] = i
	}
	return nil
}

// Step обрабатывает следующее событие. done == true, когда очередь опустела.
func (b *Builder) Step() (done bool, err error) {
	if b.err != nil {
		return true, b.err
	}
	if b.done {
		return true, nil
	}

	ev := b.queue.popNext()
	if ev == nil {
		b.done = true
		b.log.Info("[f] Алгоритм завершен",
			zap.Int("vertices", len(b.diagram.Vertices)),
			zap.Int("half-edges", len(b.diagram.HalfEdges)))
		return true, nil
	}

	b.step++
	if err := b.dispatch(ev); err != nil {
		b.err = err
		b.log.Error("[f] Построение прервано", zap.Int("step", b.step), zap.Error(err))
		return true, err
	}
	return false, nil
}

// dispatch передает событие обработчику и переносит результат в диаграмму.
// Нарушения инвариантов дерева приходят паникой с AssertionFailed и превращаются в ошибку.
func (b *Builder) dispatch(ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.IsAssertionFailure(e) {
				err = e
				return
			}
			panic(r)
		}
	}()

	var out outcome
	switch e := ev.(type) {
	case *SiteEvent:
		b.log.Debug("[f-for-site] Событие сайта", zap.Int("step", b.step), zap.Stringer("site", e.Site))
		b.stats.SiteEvents++
		out = b.site.handle(e, &b.queue, b.beach)
	case *CircleEvent:
		b.log.Debug("[f-for-circle] Событие круга", zap.Int("step", b.step), zap.Stringer("at", e.At))
		out = b.circle.handle(e, &b.queue, b.beach)
		if out.discarded {
			b.stats.Discarded++
		} else {
			b.stats.CircleEvents++
		}
	default:
		return errors.AssertionFailedf("voronoi: sweep event %T of kind %s is neither site nor circle", ev, ev.Kind())
	}

	if out.vertex != nil {
		b.diagram.add(*out.vertex)
	}
	for _, h := range out.opened {
		b.diagram.add(h)
	}
	for _, h := range out.closed {
		b.log.Debug("[f-for-circle] Полуребро закрыто", zap.Stringer("edge", h))
	}
	b.stats.Scheduled += out.scheduled
	b.stats.Cancelled += out.cancelled
	return nil
}

// Diagram возвращает накопленную диаграмму. До окончания построения она неполна.
func (b *Builder) Diagram() *Diagram {
	return b.diagram
}

func (b *Builder) Stats() Stats {
	s := b.stats
	s.PendingInQueue = b.queue.len()
	s.ArcsOnBeachLine = len(b.beach.arcs())
	return s
}

// Build строит диаграмму Вороного для сайтов целиком за один вызов.
func Build(sites []Point, opts ...Option) (*Diagram, error) {
	b, err := NewBuilder(sites, opts...)
	if err != nil {
		return nil, err
	}
	for {
		done, err := b.Step()
		if err != nil {
			return nil, err
		}
		if done {
			return b.Diagram(), nil
		}
	}
}
