package ws

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"splatwalk/internal/physics"
	"splatwalk/internal/sim"
	"splatwalk/internal/world"
)

// Session - подключенный клиент: соединение, тело игрока, контроллер
// движения, камера и состояние отладочного режима
type Session struct {
	ID       string
	ObjectID string
	Conn     *SafeWriter
	JoinTime time.Time

	Controller *sim.Controller
	Camera     *sim.Camera
	Debug      *sim.DebugView

	// Флаг звука - явное состояние сессии, а не глобальная переменная
	muteMu sync.Mutex
	muted  bool

	// Закрывается при отключении клиента, останавливает стриминг и пинг
	done chan struct{}
}

// Muted возвращает текущее состояние звука
func (s *Session) Muted() bool {
	s.muteMu.Lock()
	defer s.muteMu.Unlock()
	return s.muted
}

// ToggleMute переключает звук и возвращает новое состояние
func (s *Session) ToggleMute() bool {
	s.muteMu.Lock()
	defer s.muteMu.Unlock()
	s.muted = !s.muted
	return s.muted
}

// newSession создает сессию с телом игрока в общем физическом мире.
// В деградированном режиме (phys == nil) тело не создается и
// контроллер бездействует.
func (s *WSServer) newSession(conn *SafeWriter) *Session {
	id := fmt.Sprintf("player_%d_%d", time.Now().UnixNano(), rand.IntN(10000))
	objectID := "player_obj_" + id

	var body *physics.RigidBody
	if s.phys != nil {
		// Небольшой случайный разброс, чтобы игроки не появлялись
		// в одной точке
		spawn := mgl64.Vec3{
			s.worldCfg.SpawnX + rand.Float64()*2 - 1,
			s.worldCfg.SpawnHeight,
			s.worldCfg.SpawnZ + rand.Float64()*2 - 1,
		}
		body = physics.NewPlayerBody(objectID, spawn, s.worldCfg.CapsuleRadius, s.worldCfg.CapsuleHalfHeight)
		body.LinearDamping = s.worldCfg.LinearDamping
		body.Friction = s.worldCfg.Friction
		body.Restitution = s.worldCfg.Restitution
		s.phys.AddBody(body)
	}

	scene := world.NewScene()
	session := &Session{
		ID:         id,
		ObjectID:   objectID,
		Conn:       conn,
		JoinTime:   time.Now(),
		Controller: sim.NewController(s.phys, body, s.worldCfg),
		Camera:     sim.NewCamera(),
		Debug:      sim.NewDebugView(scene, s.buildWireframe),
		done:       make(chan struct{}),
	}
	return session
}
