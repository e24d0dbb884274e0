package main

import (
	"context"

	"github.com/0x0FACED/go-sweepline/pkg/bbox"
	"github.com/0x0FACED/go-sweepline/pkg/config"
	"github.com/0x0FACED/go-sweepline/pkg/logger"
	"github.com/0x0FACED/go-sweepline/pkg/sitegen"
	"github.com/0x0FACED/go-sweepline/pkg/voronoi"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// result - построенная диаграмма вместе с обрезанными ребрами.
type result struct {
	params   config.Diagram
	diagram  *voronoi.Diagram
	segments []bbox.Segment
	stats    voronoi.Stats
}

func generateSites(p config.Diagram) ([]voronoi.Point, error) {
	if p.Random {
		return sitegen.Random(p.Sites, p.Width, p.Height, p.Seed)
	}
	return sitegen.Grid(p.Sites, p.Width, p.Height)
}

// buildDiagram строит диаграмму по шагам, проверяя отмену ctx между событиями.
func buildDiagram(ctx context.Context, p config.Diagram, log *logger.ZapLogger) (*result, error) {
	sites, err := generateSites(p)
	if err != nil {
		return nil, errors.Wrap(err, "generating sites")
	}

	b, err := voronoi.NewBuilder(sites, voronoi.WithLogger(log))
	if err != nil {
		return nil, err
	}
	for {
		if err := ctx.Err(); err != nil {
			log.Warn("[app] Построение отменено", zap.Error(err))
			return nil, errors.Wrap(err, "building diagram")
		}
		done, err := b.Step()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}

	d := b.Diagram()
	segs := bbox.Clip(d, bbox.FromSize(p.Width, p.Height))
	stats := b.Stats()
	log.Info("[app] Диаграмма построена",
		zap.Int("sites", len(d.Sites)),
		zap.Int("vertices", len(d.Vertices)),
		zap.Int("segments", len(segs)),
		zap.Int("circle-events", stats.CircleEvents),
		zap.Int("discarded", stats.Discarded))

	return &result{params: p, diagram: d, segments: segs, stats: stats}, nil
}
