package telemetry

import (
	"splatwalk/internal/sim"
)

// PlayerSystem снимает телеметрию тел игроков раз за кадр.
// Регистрируется в цикле как обычная система.
type PlayerSystem struct {
	manager *Manager
	agents  sim.AgentSource
}

// NewPlayerSystem создает систему телеметрии игроков
func NewPlayerSystem(manager *Manager, agents sim.AgentSource) *PlayerSystem {
	return &PlayerSystem{manager: manager, agents: agents}
}

// Name реализует sim.System
func (s *PlayerSystem) Name() string {
	return "telemetry"
}

// Update реализует sim.System
func (s *PlayerSystem) Update(dt float64) error {
	for _, a := range s.agents() {
		body := a.Controller.Body()
		if body == nil {
			continue
		}
		s.manager.Record(Sample{
			BodyID:   body.ID,
			Position: body.Position,
			Velocity: body.Velocity,
			Grounded: a.Controller.Grounded(),
		})
	}
	return nil
}
