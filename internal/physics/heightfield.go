package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Heightfield - коллайдер террейна поверх сетки высот.
// Сетка центрирована вокруг начала координат, как террейн на клиенте.
type Heightfield struct {
	heights []float64
	w, d    int // количество узлов сетки по X и Z

	cellX, cellZ     float64 // мировой размер ячейки
	originX, originZ float64 // мировая координата узла (0,0)
	Friction         float64
}

// NewHeightfield строит коллайдер по данным высот узловой сетки w x d,
// растянутой на sizeX x sizeZ мировых единиц.
func NewHeightfield(heights []float64, w, d int, sizeX, sizeZ float64) *Heightfield {
	if len(heights) != w*d || w < 2 || d < 2 {
		return nil
	}
	return &Heightfield{
		heights:  heights,
		w:        w,
		d:        d,
		cellX:    sizeX / float64(w-1),
		cellZ:    sizeZ / float64(d-1),
		originX:  -sizeX / 2,
		originZ:  -sizeZ / 2,
		Friction: 0.9,
	}
}

// HeightAt возвращает билинейно интерполированную высоту поверхности.
// Второе значение false - точка вне сетки.
func (h *Heightfield) HeightAt(x, z float64) (float64, bool) {
	gx := (x - h.originX) / h.cellX
	gz := (z - h.originZ) / h.cellZ
	if gx < 0 || gz < 0 || gx > float64(h.w-1) || gz > float64(h.d-1) {
		return 0, false
	}

	x0 := int(math.Floor(gx))
	z0 := int(math.Floor(gz))
	if x0 >= h.w-1 {
		x0 = h.w - 2
	}
	if z0 >= h.d-1 {
		z0 = h.d - 2
	}
	fx := gx - float64(x0)
	fz := gz - float64(z0)

	h00 := h.heights[z0*h.w+x0]
	h10 := h.heights[z0*h.w+x0+1]
	h01 := h.heights[(z0+1)*h.w+x0]
	h11 := h.heights[(z0+1)*h.w+x0+1]

	top := h00 + (h10-h00)*fx
	bottom := h01 + (h11-h01)*fx
	return top + (bottom-top)*fz, true
}

// normalAt вычисляет нормаль поверхности центральными разностями
func (h *Heightfield) normalAt(x, z float64) mgl64.Vec3 {
	eps := math.Min(h.cellX, h.cellZ) * 0.5
	hl, okL := h.HeightAt(x-eps, z)
	hr, okR := h.HeightAt(x+eps, z)
	hb, okB := h.HeightAt(x, z-eps)
	hf, okF := h.HeightAt(x, z+eps)
	if !okL || !okR || !okB || !okF {
		return mgl64.Vec3{0, 1, 0}
	}
	n := mgl64.Vec3{(hl - hr) / (2 * eps), 1, (hb - hf) / (2 * eps)}
	return n.Normalize()
}

// RayIntersect марширует вдоль луча с шагом в полъячейки и уточняет
// точку пересечения бисекцией. Для коротких зондов контроллера этого
// достаточно, полноценная трассировка сетки здесь не нужна.
func (h *Heightfield) RayIntersect(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	step := math.Min(h.cellX, h.cellZ) * 0.5
	if step <= 0 {
		return Hit{}, false
	}

	below := func(t float64) (bool, bool) {
		p := origin.Add(dir.Mul(t))
		surf, ok := h.HeightAt(p.X(), p.Z())
		if !ok {
			return false, false
		}
		return p.Y() <= surf, true
	}

	prevT := 0.0
	startBelow, inside := below(0)
	if inside && startBelow {
		// Начало луча под поверхностью
		return Hit{Distance: 0, Point: origin, Normal: h.normalAt(origin.X(), origin.Z())}, true
	}

	for t := step; ; t += step {
		if t > maxDist {
			t = maxDist
		}
		b, ok := below(t)
		if ok && b {
			// Бисекция между prevT и t
			lo, hi := prevT, t
			for i := 0; i < 10; i++ {
				mid := (lo + hi) / 2
				if mb, mok := below(mid); mok && mb {
					hi = mid
				} else {
					lo = mid
				}
			}
			p := origin.Add(dir.Mul(hi))
			return Hit{
				Distance: hi,
				Point:    p,
				Normal:   h.normalAt(p.X(), p.Z()),
			}, true
		}
		prevT = t
		if t >= maxDist {
			break
		}
	}
	return Hit{}, false
}
