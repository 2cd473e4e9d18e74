package physics

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// World - физический мир: гравитация, тела и статическая геометрия.
// Шаг симуляции всегда фиксированный, его вызывает драйвер в internal/sim.
type World struct {
	gravity mgl64.Vec3

	mu        sync.RWMutex
	bodies    map[string]*RigidBody
	colliders []Collider
}

// NewWorld создает мир с заданным вектором гравитации
func NewWorld(gravity mgl64.Vec3) *World {
	return &World{
		gravity: gravity,
		bodies:  make(map[string]*RigidBody),
	}
}

// Gravity возвращает вектор гравитации мира
func (w *World) Gravity() mgl64.Vec3 {
	return w.gravity
}

// AddBody регистрирует тело в мире
func (w *World) AddBody(b *RigidBody) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bodies[b.ID] = b
}

// GetBody возвращает тело по идентификатору
func (w *World) GetBody(id string) (*RigidBody, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies[id]
	return b, ok
}

// RemoveBody удаляет тело из мира
func (w *World) RemoveBody(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.bodies, id)
}

// AddCollider добавляет статическую геометрию
func (w *World) AddCollider(c Collider) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.colliders = append(w.colliders, c)
}

// Colliders возвращает срез статической геометрии (для построения
// wireframe-прокси; содержимое не мутируется после старта)
func (w *World) Colliders() []Collider {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Collider, len(w.colliders))
	copy(out, w.colliders)
	return out
}

// Raycast возвращает ближайшее пересечение луча со статической геометрией.
// Промах - нормальный результат (ok=false), не ошибка.
func (w *World) Raycast(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	best := Hit{Distance: maxDist + 1}
	found := false
	for _, c := range w.colliders {
		if hit, ok := c.RayIntersect(origin, dir, maxDist); ok && hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// Step продвигает симуляцию на один фиксированный тик dt.
// Интегрирует гравитацию и затухание, перемещает динамические тела и
// удерживает капсулы над опорой. Горизонтальные столкновения гасятся
// контроллером до шага (скольжение вдоль стен), здесь остается только
// CCD-ограничение перемещения и вертикальная опора.
func (w *World) Step(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, b := range w.bodies {
		if b.Type != BodyDynamic {
			continue
		}

		b.Velocity = b.Velocity.Add(w.gravity.Mul(dt))
		if b.LinearDamping > 0 {
			b.Velocity = b.Velocity.Mul(1.0 / (1.0 + b.LinearDamping*dt))
		}

		delta := b.Velocity.Mul(dt)
		dist := delta.Len()
		if b.CCD && dist > b.Radius {
			// Быстрое тело: не даем пройти сквозь геометрию за один шаг
			dir := delta.Mul(1.0 / dist)
			if hit, ok := w.raycastLocked(b.Position, dir, dist+b.Radius); ok {
				allowed := hit.Distance - b.Radius
				if allowed < 0 {
					allowed = 0
				}
				if allowed < dist {
					delta = dir.Mul(allowed)
				}
			}
		}
		b.Position = b.Position.Add(delta)

		w.supportBody(b)
	}
}

// raycastLocked - Raycast без захвата мьютекса (вызывается из Step)
func (w *World) raycastLocked(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	best := Hit{Distance: maxDist + 1}
	found := false
	for _, c := range w.colliders {
		if hit, ok := c.RayIntersect(origin, dir, maxDist); ok && hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// supportBody выталкивает капсулу из опоры и гасит вертикальную скорость
// при приземлении (с учетом restitution тела)
func (w *World) supportBody(b *RigidBody) {
	foot := b.FootOffset()
	hit, ok := w.raycastLocked(b.Position, mgl64.Vec3{0, -1, 0}, foot)
	if !ok {
		return
	}
	if hit.Distance < foot {
		b.Position[1] += foot - hit.Distance
		if b.Velocity.Y() < 0 {
			bounced := -b.Velocity.Y() * b.Restitution
			if bounced < 0.05 {
				bounced = 0
			}
			b.Velocity[1] = bounced
		}
	}
}
