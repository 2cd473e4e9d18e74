package sim

import (
	"context"
	"log"
	"sync"
	"time"

	"splatwalk/internal/physics"
)

// Agent - пара контроллер+камера одного игрока, обслуживаемая циклом
type Agent struct {
	Controller *Controller
	Camera     *Camera
}

// AgentSource возвращает текущий набор агентов; вызывается раз за кадр.
// Подключения приходят и уходят, цикл каждый кадр берет свежий срез.
type AgentSource func() []*Agent

// System - дополнительная система, выполняемая раз за кадр после
// физики (телеметрия, стриминг состояния)
type System interface {
	Name() string
	Update(dt float64) error
}

// SystemMetrics - метрики производительности одной системы
type SystemMetrics struct {
	LastDuration time.Duration
	MaxDuration  time.Duration
	Runs         uint64
	Errors       uint64
}

// Loop - главный цикл кадров: замер реального времени, интеграторы
// движения агентов, фиксированные шаги физики, синхронизация камер и
// зарегистрированные системы. Вся мутация игрового состояния
// происходит в одной горутине цикла.
type Loop struct {
	frame   time.Duration
	stepper *Stepper
	phys    *physics.World // nil в деградированном режиме
	agents  AgentSource

	systemsMu sync.RWMutex
	systems   []System
	metrics   map[string]*SystemMetrics

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	logger        *log.Logger
	warnThreshold time.Duration
	frameCount    uint64
}

// NewLoop создает цикл с целевой частотой кадров targetFPS
func NewLoop(targetFPS int, phys *physics.World, agents AgentSource, logger *log.Logger) *Loop {
	if targetFPS <= 0 {
		targetFPS = 60
	}
	if logger == nil {
		logger = log.Default()
	}
	if agents == nil {
		agents = func() []*Agent { return nil }
	}

	frame := time.Second / time.Duration(targetFPS)
	ctx, cancel := context.WithCancel(context.Background())

	return &Loop{
		frame:         frame,
		stepper:       NewStepper(),
		phys:          phys,
		agents:        agents,
		metrics:       make(map[string]*SystemMetrics),
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
		logger:        logger,
		warnThreshold: frame / 2,
	}
}

// Stepper возвращает драйвер фиксированного шага цикла
func (l *Loop) Stepper() *Stepper {
	return l.stepper
}

// RegisterSystem добавляет систему в цикл (до Start)
func (l *Loop) RegisterSystem(s System) {
	l.systemsMu.Lock()
	defer l.systemsMu.Unlock()
	l.systems = append(l.systems, s)
	l.metrics[s.Name()] = &SystemMetrics{}
}

// Metrics возвращает метрики системы по имени
func (l *Loop) Metrics(name string) (SystemMetrics, bool) {
	l.systemsMu.RLock()
	defer l.systemsMu.RUnlock()
	m, ok := l.metrics[name]
	if !ok {
		return SystemMetrics{}, false
	}
	return *m, true
}

// Start запускает цикл в отдельной горутине
func (l *Loop) Start() {
	if l.phys == nil {
		l.logger.Printf("[Loop] Физический мир недоступен, цикл работает в деградированном режиме")
	}
	l.logger.Printf("[Loop] Запуск цикла кадров: %v на кадр, фиксированный шаг %.4fs",
		l.frame, l.stepper.FixedTimeStep)
	go l.run()
}

// Stop останавливает цикл и дожидается завершения горутины
func (l *Loop) Stop() {
	l.cancel()
	<-l.done
	l.logger.Printf("[Loop] Цикл остановлен (кадров: %d)", l.frameCount)
}

func (l *Loop) run() {
	defer close(l.done)

	ticker := time.NewTicker(l.frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-l.ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			l.runFrame(elapsed)
		}
	}
}

// runFrame - один кадр: интеграторы -> фиксированные шаги -> камеры -> системы
func (l *Loop) runFrame(elapsed float64) {
	l.frameCount++

	agents := l.agents()
	for _, a := range agents {
		a.Controller.Update()
	}

	l.stepper.Advance(elapsed, func(dt float64) {
		if l.phys != nil {
			l.phys.Step(dt)
		}
	})

	for _, a := range agents {
		a.Camera.Sync(a.Controller)
	}

	l.systemsMu.RLock()
	systems := l.systems
	l.systemsMu.RUnlock()

	for _, s := range systems {
		start := time.Now()
		err := s.Update(elapsed)
		took := time.Since(start)

		l.systemsMu.Lock()
		m := l.metrics[s.Name()]
		m.LastDuration = took
		m.Runs++
		if took > m.MaxDuration {
			m.MaxDuration = took
		}
		if err != nil {
			m.Errors++
		}
		l.systemsMu.Unlock()

		if err != nil {
			l.logger.Printf("[Loop] Система %s: ошибка: %v", s.Name(), err)
		} else if took > l.warnThreshold {
			l.logger.Printf("[Loop] Система %s: медленный кадр %v (порог %v)", s.Name(), took, l.warnThreshold)
		}
	}
}
