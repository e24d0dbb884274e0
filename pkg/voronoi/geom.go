package voronoi

import (
	"fmt"
	"math"
)

// Point - целочисленная точка плоскости. Сайты, вершины и точки событий круга
// хранятся только в целых координатах.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Less упорядочивает точки по X, при равенстве - по Y.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

func (p Point) sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) norm2() int64 {
	return int64(p.X)*int64(p.X) + int64(p.Y)*int64(p.Y)
}

// MaxCoordinate - наибольший модуль координаты сайта. Числители формулы центра окружности -
// куб разности координат; при |c| <= 1<<19 они помещаются в int64.
const MaxCoordinate = 1 << 19

// maxBisectorSlope ограничивает крутизну биссектрисы, на которую прижимается центр окружности
// после округления X. 6 - наименьший наклон, при котором тройка (110,150), (130,160), (170,140)
// дает вершину (136,121). Для более крутых биссектрис Y округляется независимо.
const maxBisectorSlope = 6

// MaxVertexDrift - наибольшее расстояние от возвращаемого Circumcenter центра до точного:
// полшага по X, сдвиг по биссектрисе до maxBisectorSlope/2 по Y и полшага округления Y.
var MaxVertexDrift = math.Hypot(0.5, maxBisectorSlope/2.0+0.5)

func inRange(p Point) bool {
	return p.X >= -MaxCoordinate && p.X <= MaxCoordinate && p.Y >= -MaxCoordinate && p.Y <= MaxCoordinate
}

// roundHalfAway - округление к ближайшему целому, половина - от нуля (math.Round).
func roundHalfAway(v float64) int {
	return int(math.Round(v))
}

// orientation возвращает удвоенную ориентированную площадь треугольника abc
// (2 * cross(b-a, c-a)), тот же знаменатель, что и в формуле центра окружности.
func orientation(a, b, c Point) int64 {
	ba := b.sub(a)
	ca := c.sub(a)
	return 2 * (int64(ba.X)*int64(ca.Y) - int64(ba.Y)*int64(ca.X))
}

// IsValidCircleEvent проверяет тройку дуг (левая, центральная, правая) в порядке пляжной линии.
// Событие круга возможно только при строго отрицательном знаменателе: при нуле точки коллинеарны,
// при положительном - точки излома расходятся и центральная дуга никогда не схлопнется.
func IsValidCircleEvent(a, b, c Point) bool {
	return orientation(a, b, c) < 0
}

// Circumcenter возвращает центр окружности, проходящей через a, b и c.
// Используется замкнутая формула через векторное произведение, без наклонов
// серединных перпендикуляров. ok == false для коллинеарных точек и для точек дальше
// MaxCoordinate.
//
// Правило округления: X округляется к ближайшему целому (половина от нуля), затем Y
// берется на биссектрисе крайних точек a и c в этом столбце и тоже округляется. Это та
// биссектриса, по которой пойдет новая точка излома после события круга. Если биссектриса
// вертикальна или круче maxBisectorSlope, Y округляется из точного значения. Результат
// отстоит от точного центра не больше чем на MaxVertexDrift (около 3.54).
func Circumcenter(a, b, c Point) (Point, bool) {
	if !inRange(a) || !inRange(b) || !inRange(c) {
		return Point{}, false
	}
	d := orientation(a, b, c)
	if d == 0 {
		return Point{}, false
	}

	ba := b.sub(a)
	ca := c.sub(a)
	baLen := ba.norm2()
	caLen := ca.norm2()

	fd := float64(d)
	ux := float64(a.X) + float64(int64(ca.Y)*baLen-int64(ba.Y)*caLen)/fd
	uy := float64(a.Y) + float64(int64(ba.X)*caLen-int64(ca.X)*baLen)/fd
	if math.IsNaN(ux) || math.IsNaN(uy) || math.IsInf(ux, 0) || math.IsInf(uy, 0) {
		return Point{}, false
	}

	center := Point{X: roundHalfAway(ux), Y: roundHalfAway(uy)}

	dx := int64(c.X - a.X)
	dy := int64(c.Y - a.Y)
	if dy != 0 && abs64(dx) <= maxBisectorSlope*abs64(dy) {
		// |c|^2 - |a|^2 - 2x(c.X - a.X) = 2y(c.Y - a.Y); центр почти коллинеарной тройки
		// может быть порядка 2^60, поэтому произведение считается в float64
		num := float64(c.norm2()-a.norm2()) - 2*float64(center.X)*float64(dx)
		center.Y = roundHalfAway(num / float64(2*dy))
	}
	return center, true
}

// LowestPointOfCircle возвращает нижнюю точку окружности с центром center, проходящей через on.
// Радиус отбрасывает дробную часть, поэтому для целого центра Y равен наименьшей целой высоте
// прямой сканирования, не лежащей ниже точного касания.
func LowestPointOfCircle(center, on Point) Point {
	// в float64: у почти коллинеарных троек радиус так велик, что квадрат не влезает в int64
	dx := float64(on.X - center.X)
	dy := float64(on.Y - center.Y)
	r := math.Sqrt(dx*dx + dy*dy)
	return Point{X: center.X, Y: center.Y - int(r)}
}

// breakpointX возвращает X точки излома между дугой left (слева) и дугой right (справа)
// при прямой сканирования на высоте directrix. Обе параболы открыты вверх, пляжная линия -
// их нижняя огибающая.
func breakpointX(left, right Point, directrix float64) float64 {
	lx, ly := float64(left.X), float64(left.Y)
	rx, ry := float64(right.X), float64(right.Y)

	pl := ly - directrix
	pr := ry - directrix

	switch {
	case pl == 0 && pr == 0:
		return (lx + rx) / 2
	case pl == 0:
		return lx
	case pr == 0:
		return rx
	case ly == ry:
		return (lx + rx) / 2
	}

	// (x-lx)^2/pl - (x-rx)^2/pr + (ly - ry) = 0
	a := 1/pl - 1/pr
	b := -2 * (lx/pl - rx/pr)
	c := lx*lx/pl - rx*rx/pr + ly - ry

	disc := b*b - 4*a*c
	if disc < 0 {
		disc = 0
	}
	// корень, в котором разность парабол возрастает: слева ниже левая, справа - правая
	return (-b + math.Sqrt(disc)) / (2 * a)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
