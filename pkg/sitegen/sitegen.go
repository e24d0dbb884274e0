// Package sitegen генерирует наборы сайтов без повторов.
package sitegen

import (
	"math"
	"math/rand"

	"github.com/0x0FACED/go-sweepline/pkg/voronoi"
	"github.com/cockroachdb/errors"
)

// ErrTooManySites - в прямоугольнике не хватает целых точек.
var ErrTooManySites = errors.New("sitegen: not enough distinct points in the area")

func checkArea(n, width, height int) error {
	if n <= 0 {
		return errors.Newf("sitegen: site count must be positive, got %d", n)
	}
	if width <= 0 || height <= 0 {
		return errors.Newf("sitegen: area must be positive, got %dx%d", width, height)
	}
	if int64(n) > int64(width)*int64(height) {
		return errors.Wrapf(ErrTooManySites, "%d sites in %dx%d", n, width, height)
	}
	return nil
}

// Random возвращает n различных сайтов в [0,width) x [0,height). Один seed - один набор.
func Random(n, width, height int, seed int64) ([]voronoi.Point, error) {
	if err := checkArea(n, width, height); err != nil {
		return nil, err
	}

	rnd := rand.New(rand.NewSource(seed))
	seen := make(map[voronoi.Point]struct{}, n)
	sites := make([]voronoi.Point, 0, n)
	for len(sites) < n {
		p := voronoi.Point{X: rnd.Intn(width), Y: rnd.Intn(height)}
		// повтор просто перебрасываем
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		sites = append(sites, p)
	}
	return sites, nil
}

// Grid раскладывает n сайтов по центрам ячеек равномерной сетки.
func Grid(n, width, height int) ([]voronoi.Point, error) {
	if err := checkArea(n, width, height); err != nil {
		return nil, err
	}

	rows := int(math.Sqrt(float64(n)))
	cols := (n + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)
	if xStep < 1 || yStep < 1 {
		return nil, errors.Wrapf(ErrTooManySites, "grid %dx%d in %dx%d", cols, rows, width, height)
	}

	sites := make([]voronoi.Point, 0, n)
	for i := 0; i < rows && len(sites) < n; i++ {
		for j := 0; j < cols && len(sites) < n; j++ {
			sites = append(sites, voronoi.Point{
				X: int(xStep/2 + float64(j)*xStep),
				Y: int(yStep/2 + float64(i)*yStep),
			})
		}
	}
	return sites, nil
}
