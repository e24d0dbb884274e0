package voronoi

import "github.com/cockroachdb/errors"

var (
	// ErrNoSites - пустой или отсутствующий набор сайтов.
	ErrNoSites = errors.New("voronoi: no sites")
	// ErrDuplicateSite - два сайта с одинаковыми координатами.
	ErrDuplicateSite = errors.New("voronoi: duplicate site")
	// ErrCoordinateRange - координата сайта по модулю больше MaxCoordinate.
	ErrCoordinateRange = errors.New("voronoi: site coordinate out of range")
)

func duplicateSiteError(site Point, first, second int) error {
	return errors.Mark(
		errors.Newf("voronoi: site %s passed twice (positions %d and %d)", site, first, second),
		ErrDuplicateSite,
	)
}

func coordinateRangeError(site Point, pos int) error {
	return errors.Mark(
		errors.Newf("voronoi: site %s at position %d exceeds |%d|", site, pos, MaxCoordinate),
		ErrCoordinateRange,
	)
}
