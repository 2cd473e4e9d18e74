package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BodyType определяет участие тела в симуляции
type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyFixed
)

// RigidBody - твердое тело с капсульным коллайдером.
// Тело игрока создается один раз при старте мира и живет до остановки
// сервера; каждый тик контроллер перезаписывает его скорость.
type RigidBody struct {
	ID   string
	Type BodyType

	Position mgl64.Vec3
	Velocity mgl64.Vec3
	// Вращение заблокировано: капсула игрока не кувыркается
	Rotation mgl64.Quat

	// Капсула
	Radius     float64
	HalfHeight float64

	Mass          float64
	LinearDamping float64
	Friction      float64
	Restitution   float64

	// Непрерывное обнаружение столкновений: ограничивает перемещение
	// за один шаг, чтобы быстрое тело не проскочило стену
	CCD bool
}

// NewPlayerBody создает динамическую капсулу игрока в точке появления
func NewPlayerBody(id string, spawn mgl64.Vec3, radius, halfHeight float64) *RigidBody {
	return &RigidBody{
		ID:         id,
		Type:       BodyDynamic,
		Position:   spawn,
		Rotation:   mgl64.QuatIdent(),
		Radius:     radius,
		HalfHeight: halfHeight,
		Mass:       80.0,
		CCD:        true,
	}
}

// FootOffset - расстояние от центра тела до нижней точки капсулы
func (b *RigidBody) FootOffset() float64 {
	return b.HalfHeight + b.Radius
}
