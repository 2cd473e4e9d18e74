package telemetry

import (
	"log"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Sample - один замер состояния тела игрока
type Sample struct {
	Timestamp int64      `json:"timestamp"`
	BodyID    string     `json:"body_id"`
	Position  mgl64.Vec3 `json:"position"`
	Velocity  mgl64.Vec3 `json:"velocity"`
	Speed     float64    `json:"speed"`
	Grounded  bool       `json:"grounded"`
}

// Manager копит последние замеры и периодически печатает сводку.
// Включен по умолчанию, отключается в конфигурации сервера.
type Manager struct {
	mu         sync.Mutex
	enabled    bool
	samples    []Sample
	maxSamples int

	counters      map[string]int
	lastPrint     time.Time
	printInterval time.Duration
	logger        *log.Logger
}

// NewManager создает менеджер телеметрии
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		enabled:       true,
		maxSamples:    200,
		counters:      make(map[string]int),
		lastPrint:     time.Now(),
		printInterval: 2 * time.Second,
		logger:        logger,
	}
}

// SetEnabled включает или выключает сбор телеметрии
func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// Record записывает замер состояния тела
func (m *Manager) Record(s Sample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return
	}

	s.Timestamp = time.Now().UnixMilli()
	s.Speed = s.Velocity.Len()

	m.samples = append(m.samples, s)
	if len(m.samples) > m.maxSamples {
		m.samples = m.samples[len(m.samples)-m.maxSamples:]
	}
	m.counters["samples"]++
	if s.Grounded {
		m.counters["grounded"]++
	}

	if time.Since(m.lastPrint) >= m.printInterval {
		m.printLocked(s)
		m.lastPrint = time.Now()
	}
}

// Count возвращает значение счетчика
func (m *Manager) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

func (m *Manager) printLocked(last Sample) {
	m.logger.Printf("[Telemetry] %s pos=(%.2f, %.2f, %.2f) speed=%.2f grounded=%v (замеров: %d)",
		last.BodyID,
		last.Position.X(), last.Position.Y(), last.Position.Z(),
		last.Speed, last.Grounded, m.counters["samples"])
}
