package sim

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// LookState - состояние контроллера взгляда (pointer lock на клиенте).
// Ориентация камеры принадлежит клиенту и физикой не трогается;
// сервер хранит только yaw/pitch для расчета направления движения
// и признак захвата указателя.
type LookState struct {
	mu     sync.RWMutex
	yaw    float64 // радианы, 0 = взгляд вдоль -Z
	pitch  float64
	locked bool
}

// NewLookState создает состояние взгляда (указатель не захвачен)
func NewLookState() *LookState {
	return &LookState{}
}

// SetLook обновляет углы взгляда
func (l *LookState) SetLook(yaw, pitch float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.yaw = yaw
	l.pitch = pitch
}

// SetLocked обновляет признак захвата указателя
func (l *LookState) SetLocked(locked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = locked
}

// Locked сообщает, захвачен ли указатель. Пока он не захвачен,
// интегратор движения не активен.
func (l *LookState) Locked() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.locked
}

// Yaw возвращает текущий угол рыскания
func (l *LookState) Yaw() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.yaw
}

// Forward возвращает направление взгляда, спроецированное на
// горизонтальную плоскость и нормализованное
func (l *LookState) Forward() mgl64.Vec3 {
	l.mu.RLock()
	yaw := l.yaw
	l.mu.RUnlock()
	return mgl64.Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}
}
