package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hit - результат пересечения луча со статической геометрией.
// Отсутствие пересечения (открытый воздух, падение за край мира) -
// нормальный отрицательный результат, а не ошибка.
type Hit struct {
	Distance float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
}

// Collider - статическая геометрия, отвечающая на запросы лучей
type Collider interface {
	// RayIntersect пересекает луч (origin, нормализованный dir) с геометрией.
	// Возвращает ближайшее пересечение не дальше maxDist.
	RayIntersect(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool)
}

// Box - статический AABB-коллайдер (стены, фолбэк-пол)
type Box struct {
	Min, Max    mgl64.Vec3
	Friction    float64
	Restitution float64
}

// NewGroundBox создает большой плоский фолбэк-пол под точкой появления
func NewGroundBox(y, size float64) *Box {
	half := size / 2
	return &Box{
		Min:      mgl64.Vec3{-half, y - 1.0, -half},
		Max:      mgl64.Vec3{half, y, half},
		Friction: 0.8,
	}
}

// RayIntersect реализует метод слэбов с нормалью входной грани
func (b *Box) RayIntersect(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	tmin := 0.0
	tmax := maxDist
	entryAxis := -1

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			// Луч параллелен слэбу: либо внутри диапазона, либо мимо
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return Hit{}, false
			}
			continue
		}

		inv := 1.0 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			entryAxis = i
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return Hit{}, false
		}
	}

	if entryAxis < 0 {
		// Начало луча внутри коллайдера: считаем пересечением в нуле,
		// нормаль направлена против движения
		return Hit{Distance: 0, Point: origin, Normal: dir.Mul(-1)}, true
	}

	var normal mgl64.Vec3
	normal[entryAxis] = -math.Copysign(1, dir[entryAxis])

	return Hit{
		Distance: tmin,
		Point:    origin.Add(dir.Mul(tmin)),
		Normal:   normal,
	}, true
}
