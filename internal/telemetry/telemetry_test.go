package telemetry

import (
	"io"
	"log"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"splatwalk/internal/physics"
	"splatwalk/internal/sim"
	"splatwalk/internal/world"
)

func TestManager_Record(t *testing.T) {
	m := NewManager(log.New(io.Discard, "", 0))

	m.Record(Sample{BodyID: "p1", Velocity: mgl64.Vec3{3, 0, 4}, Grounded: true})
	m.Record(Sample{BodyID: "p1", Velocity: mgl64.Vec3{0, -1, 0}})

	if m.Count("samples") != 2 {
		t.Errorf("Ожидали 2 замера, получили %d", m.Count("samples"))
	}
	if m.Count("grounded") != 1 {
		t.Errorf("Ожидали 1 замер на земле, получили %d", m.Count("grounded"))
	}

	// Скорость и время проставляются при записи
	last := m.samples[len(m.samples)-1]
	if last.Timestamp == 0 {
		t.Error("Timestamp должен быть проставлен")
	}
	first := m.samples[0]
	if first.Speed != 5.0 {
		t.Errorf("Ожидали скорость 5.0, получили %f", first.Speed)
	}
}

func TestManager_Disabled(t *testing.T) {
	m := NewManager(log.New(io.Discard, "", 0))
	m.SetEnabled(false)

	m.Record(Sample{BodyID: "p1"})
	if m.Count("samples") != 0 {
		t.Error("Выключенный менеджер не должен записывать замеры")
	}
}

func TestManager_SampleCap(t *testing.T) {
	m := NewManager(log.New(io.Discard, "", 0))

	for i := 0; i < 500; i++ {
		m.Record(Sample{BodyID: "p1"})
	}

	if len(m.samples) != m.maxSamples {
		t.Errorf("Буфер должен быть ограничен %d замерами, получили %d", m.maxSamples, len(m.samples))
	}
	if m.Count("samples") != 500 {
		t.Errorf("Счетчик должен считать все замеры, получили %d", m.Count("samples"))
	}
}

func TestPlayerSystem_Update(t *testing.T) {
	cfg := world.Config{CapsuleRadius: 0.3, CapsuleHalfHeight: 0.6, EyeHeight: 1.6}
	phys := physics.NewWorld(mgl64.Vec3{0, -9.81, 0})
	phys.AddCollider(physics.NewGroundBox(0, 200))

	body := physics.NewPlayerBody("p1", mgl64.Vec3{0, 0.9, 0}, 0.3, 0.6)
	phys.AddBody(body)
	ctl := sim.NewController(phys, body, cfg)

	m := NewManager(log.New(io.Discard, "", 0))
	system := NewPlayerSystem(m, func() []*sim.Agent {
		return []*sim.Agent{{Controller: ctl, Camera: sim.NewCamera()}}
	})

	if system.Name() != "telemetry" {
		t.Errorf("Неожиданное имя системы: %s", system.Name())
	}
	if err := system.Update(1.0 / 60.0); err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}

	if m.Count("samples") != 1 {
		t.Errorf("Ожидали 1 замер, получили %d", m.Count("samples"))
	}
	if m.Count("grounded") != 1 {
		t.Errorf("Тело на полу должно дать grounded-замер, получили %d", m.Count("grounded"))
	}
}

func TestPlayerSystem_SkipsDegradedAgents(t *testing.T) {
	cfg := world.Config{}
	ctl := sim.NewController(nil, nil, cfg)

	m := NewManager(log.New(io.Discard, "", 0))
	system := NewPlayerSystem(m, func() []*sim.Agent {
		return []*sim.Agent{{Controller: ctl, Camera: sim.NewCamera()}}
	})

	if err := system.Update(1.0 / 60.0); err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if m.Count("samples") != 0 {
		t.Error("Агент без тела не должен давать замеров")
	}
}
