package sim

// Параметры фиксированного шага по умолчанию
const (
	DefaultFixedTimeStep = 1.0 / 60.0
	DefaultMaxSubsteps   = 6
	DefaultMaxFrameTime  = 0.1 // защита от лавины шагов после возврата вкладки
)

// Stepper - драйвер фиксированного шага физики. Накапливает реальное
// время кадров и продвигает симуляцию порциями по FixedTimeStep,
// отвязывая стабильность симуляции от частоты кадров.
//
// Инвариант: при достаточном MaxSubsteps остаток аккумулятора после
// обработки кадра всегда в [0, FixedTimeStep). Если кадр требует больше
// MaxSubsteps тиков, выполняется ровно MaxSubsteps, остаток переносится
// на следующие кадры - симуляция отстает, но сервер не замирает.
type Stepper struct {
	FixedTimeStep float64
	MaxSubsteps   int
	MaxFrameTime  float64

	accumulator float64
}

// NewStepper создает драйвер с параметрами по умолчанию
func NewStepper() *Stepper {
	return &Stepper{
		FixedTimeStep: DefaultFixedTimeStep,
		MaxSubsteps:   DefaultMaxSubsteps,
		MaxFrameTime:  DefaultMaxFrameTime,
	}
}

// Advance обрабатывает один кадр длительностью elapsed секунд,
// вызывая step для каждого выполненного фиксированного тика.
// Возвращает количество выполненных тиков.
func (s *Stepper) Advance(elapsed float64, step func(dt float64)) int {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > s.MaxFrameTime {
		elapsed = s.MaxFrameTime
	}
	s.accumulator += elapsed

	steps := int(s.accumulator / s.FixedTimeStep)
	if steps > s.MaxSubsteps {
		steps = s.MaxSubsteps
	}

	for i := 0; i < steps; i++ {
		step(s.FixedTimeStep)
	}
	s.accumulator -= float64(steps) * s.FixedTimeStep

	return steps
}

// Accumulator возвращает текущий остаток времени
func (s *Stepper) Accumulator() float64 {
	return s.accumulator
}
