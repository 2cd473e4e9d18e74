package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"splatwalk/internal/physics"
	"splatwalk/internal/world"
)

var up = mgl64.Vec3{0, 1, 0}
var down = mgl64.Vec3{0, -1, 0}

// Controller превращает состояние клавиатуры и взгляда в скорость
// капсулы игрока: ходьба с учетом стен, гравитация, прыжок,
// опционально свободный полет. Работает только когда указатель
// захвачен и тело существует (деградированный режим без физики).
type Controller struct {
	phys *physics.World
	body *physics.RigidBody

	cfg  world.Config
	tune world.Tuning

	Keys *KeyState
	Look *LookState
}

// NewController создает контроллер движения для тела игрока.
// body может быть nil - тогда контроллер бездействует.
func NewController(phys *physics.World, body *physics.RigidBody, cfg world.Config) *Controller {
	return &Controller{
		phys: phys,
		body: body,
		cfg:  cfg,
		tune: world.GetTuning(),
		Keys: NewKeyState(),
		Look: NewLookState(),
	}
}

// Body возвращает тело игрока (nil в деградированном режиме)
func (c *Controller) Body() *physics.RigidBody {
	return c.body
}

// Update - интегратор движения, вызывается раз за кадр до шагов физики.
// Порядок: направление взгляда -> сырое направление по клавишам ->
// нормализация и масштаб скорости -> скольжение вдоль стен ->
// вертикальная скорость -> запись в тело.
func (c *Controller) Update() {
	if c.body == nil || !c.Look.Locked() {
		return
	}

	forward := c.Look.Forward()
	right := forward.Cross(up).Normalize()

	var dir mgl64.Vec3
	if c.Keys.IsPressed(KeyForward) {
		dir = dir.Add(forward)
	}
	if c.Keys.IsPressed(KeyBack) {
		dir = dir.Sub(forward)
	}
	if c.Keys.IsPressed(KeyRight) {
		dir = dir.Add(right)
	}
	if c.Keys.IsPressed(KeyLeft) {
		dir = dir.Sub(right)
	}

	// Противоположные клавиши дают нулевое направление
	horizontal := mgl64.Vec3{}
	if dir.Len() > 1e-9 {
		horizontal = dir.Normalize().Mul(c.cfg.MoveSpeed)
		horizontal = c.adjustForWalls(horizontal)
	}

	// Вертикаль: сохраняем интегрированную гравитацию тела
	vy := c.body.Velocity.Y()
	if c.cfg.FlyEnabled {
		if c.Keys.IsPressed(KeyAscend) {
			vy += c.cfg.FlySpeed
		}
		if c.Keys.IsPressed(KeyDescend) {
			vy -= c.cfg.FlySpeed
		}
	}

	// Прыжок - действие по факту нажатия: фронт клавиши копится
	// обработчиком сообщений, а применяется здесь, в горутине цикла.
	// Нажатие в воздухе сгорает, а не буферизуется до приземления.
	if c.Keys.ConsumePress(KeyJump) && c.Grounded() {
		vy = c.cfg.JumpSpeed
	}

	c.body.Velocity = mgl64.Vec3{horizontal.X(), vy, horizontal.Z()}
}

// adjustForWalls гасит компоненту скорости, направленную в ближайшую
// стену, оставляя скольжение вдоль поверхности. Вертикальная компонента
// входа игнорируется, выходная горизонтальная скорость не превышает
// входную по модулю.
func (c *Controller) adjustForWalls(v mgl64.Vec3) mgl64.Vec3 {
	horizontal := mgl64.Vec3{v.X(), 0, v.Z()}
	if horizontal.Len() < 1e-9 {
		return v
	}

	dir := horizontal.Normalize()
	lookahead := c.body.Radius + c.tune.WallLookahead
	hit, ok := c.phys.Raycast(c.body.Position, dir, lookahead)
	if !ok {
		return v
	}

	// Горизонтальная проекция нормали поверхности
	n := mgl64.Vec3{hit.Normal.X(), 0, hit.Normal.Z()}
	if n.Len() < 1e-9 {
		return v
	}
	n = n.Normalize()

	// Нормаль внешняя: движение в стену дает отрицательную проекцию
	into := v.Dot(n)
	if into < 0 {
		v = v.Sub(n.Mul(into))
	}
	return v
}

// Grounded - зонд земли: луч вниз из центра тела.
// Игрок на земле, если луч попал, дистанция в пределах допуска,
// опора не слишком крутая и тело не летит вверх (фаза прыжка).
func (c *Controller) Grounded() bool {
	if c.body == nil {
		return false
	}

	foot := c.body.FootOffset()
	hit, ok := c.phys.Raycast(c.body.Position, down, foot+c.tune.GroundProbeMargin)
	if !ok {
		// Промах - игрок в воздухе или за краем мира
		return false
	}
	if hit.Distance > foot+c.tune.GroundEpsilon {
		return false
	}
	if hit.Normal.Y() <= c.tune.GroundNormalMinY {
		return false
	}
	if c.body.Velocity.Y() > c.tune.GroundedMaxUpVelocity {
		return false
	}
	return true
}

// HandleKey обрабатывает keydown/keyup из горутины чтения сообщений.
// Тело здесь не трогается: пишется только состояние клавиатуры под
// мьютексом, вся мутация тела принадлежит горутине цикла.
func (c *Controller) HandleKey(code string, pressed bool) {
	c.Keys.Set(code, pressed)
}

// CameraPosition - позиция камеры: ноги тела плюс высота глаз.
// Ориентация камеры не трогается, ею владеет клиентский pointer lock.
func (c *Controller) CameraPosition() (mgl64.Vec3, bool) {
	if c.body == nil {
		return mgl64.Vec3{}, false
	}
	p := c.body.Position
	return mgl64.Vec3{
		p.X(),
		p.Y() - c.body.FootOffset() + c.cfg.EyeHeight,
		p.Z(),
	}, true
}
