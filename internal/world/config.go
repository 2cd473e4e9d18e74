package world

import "sync"

// Config описывает один мир: ассет облака точек и параметры движения игрока.
// Все значения статичны и задаются при старте сервера.
type Config struct {
	// Идентификатор мира (rome, cooper-station, ancient, mountain, underground)
	Name string
	// Отображаемое название для клиента
	Title string

	// Ассет облака точек (gaussian splats)
	AssetURL   string
	AssetScale float64

	// Параметры движения игрока
	GravityScale float64 // Множитель к базовой гравитации 9.81
	MoveSpeed    float64
	JumpSpeed    float64
	FlySpeed     float64 // Скорость свободного полета (E/Q)
	FlyEnabled   bool

	// Капсула игрока
	CapsuleRadius     float64
	CapsuleHalfHeight float64
	EyeHeight         float64

	// Физические свойства коллайдера игрока
	Restitution   float64
	Friction      float64
	LinearDamping float64

	// Точка появления
	SpawnX, SpawnZ float64
	SpawnHeight    float64

	// Фолбэк-пол под точкой появления
	GroundY    float64
	GroundSize float64

	// Генерировать ли процедурный террейн-коллайдер
	Terrain bool
	// Амплитуда рельефа террейна в мировых единицах
	TerrainAmplitude float64
}

// Tuning содержит эмпирические пороги контроллера движения.
// Значения 0.6/0.12 подобраны вручную, вывода за ними нет - поэтому
// они вынесены в конфигурацию, а не зашиты в код.
type Tuning struct {
	// Дистанция зонда земли сверх halfHeight+radius
	GroundProbeMargin float64
	// Допуск по дистанции при классификации "на земле"
	GroundEpsilon float64
	// Минимальная вертикальная компонента нормали опоры (отсекает крутые стены)
	GroundNormalMinY float64
	// Максимальная положительная вертикальная скорость, при которой
	// игрок еще считается стоящим на земле (отсекает фазу взлета прыжка)
	GroundedMaxUpVelocity float64
	// Дистанция луча перед игроком сверх радиуса капсулы
	WallLookahead float64
}

var (
	tuning   Tuning
	tuningMu sync.RWMutex
)

// Инициализация порогов по умолчанию
func init() {
	tuning = Tuning{
		GroundProbeMargin:     0.6,
		GroundEpsilon:         0.12,
		GroundNormalMinY:      0.3,
		GroundedMaxUpVelocity: 0.6,
		WallLookahead:         0.1,
	}
}

// GetTuning возвращает текущие пороги контроллера
func GetTuning() Tuning {
	tuningMu.RLock()
	defer tuningMu.RUnlock()
	return tuning
}

// SetTuning устанавливает новые пороги контроллера
func SetTuning(t Tuning) {
	tuningMu.Lock()
	defer tuningMu.Unlock()
	tuning = t
}
