package sim

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera - синхронизируемая поза камеры. Позиция и признак опоры
// перезаписываются после каждого кадра физики из трансляции тела
// игрока; ориентацией владеет клиентский контроллер взгляда и сюда
// она не попадает. Снимок под мьютексом - единственное, что читают
// горутины стриминга: тело они не трогают.
type Camera struct {
	mu       sync.RWMutex
	position mgl64.Vec3
	grounded bool
	valid    bool
}

// NewCamera создает камеру без валидной позиции
func NewCamera() *Camera {
	return &Camera{}
}

// Position возвращает последнюю синхронизированную позицию камеры
func (c *Camera) Position() (mgl64.Vec3, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position, c.valid
}

// Pose возвращает снимок позы целиком: позиция, признак опоры и
// валидность
func (c *Camera) Pose() (mgl64.Vec3, bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position, c.grounded, c.valid
}

// Sync переносит позу тела игрока на камеру: ноги плюс высота глаз
// и результат зонда земли. Вызывается после шагов физики в каждом
// кадре, в горутине цикла.
func (c *Camera) Sync(ctl *Controller) {
	pos, ok := ctl.CameraPosition()
	if !ok {
		return
	}
	grounded := ctl.Grounded()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pos
	c.grounded = grounded
	c.valid = true
}
