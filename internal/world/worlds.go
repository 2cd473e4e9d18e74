package world

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultAssetBase - базовый URL хранилища ассетов облаков точек.
// Переопределяется через SPLATWALK_ASSET_BASE в main.
const DefaultAssetBase = "https://storage.googleapis.com/splatwalk-assets"

var (
	assetBase   = DefaultAssetBase
	assetBaseMu sync.RWMutex
)

// SetAssetBase переопределяет базовый URL хранилища ассетов
func SetAssetBase(base string) {
	assetBaseMu.Lock()
	defer assetBaseMu.Unlock()
	assetBase = strings.TrimRight(base, "/")
}

func assetURL(file string) string {
	assetBaseMu.RLock()
	defer assetBaseMu.RUnlock()
	return assetBase + "/" + file
}

// базовые параметры, одинаковые для всех миров
func baseConfig() Config {
	return Config{
		GravityScale:      1.0,
		MoveSpeed:         4.0,
		JumpSpeed:         5.0,
		FlySpeed:          4.0,
		FlyEnabled:        false,
		CapsuleRadius:     0.3,
		CapsuleHalfHeight: 0.6,
		EyeHeight:         1.6,
		Restitution:       0.0,
		Friction:          0.7,
		LinearDamping:     0.5,
		SpawnHeight:       3.0,
		GroundY:           -2.0,
		GroundSize:        200.0,
	}
}

// Worlds возвращает конфигурации всех миров.
// Раньше каждый мир был отдельным приложением с продублированным циклом
// управления; теперь это один цикл плюс запись конфигурации на мир.
func Worlds() map[string]Config {
	rome := baseConfig()
	rome.Name = "rome"
	rome.Title = "Rome"
	rome.AssetURL = assetURL("rome.splat")
	rome.AssetScale = 1.0

	cooper := baseConfig()
	cooper.Name = "cooper-station"
	cooper.Title = "Cooper Station"
	cooper.AssetURL = assetURL("cooper_station.splat")
	cooper.AssetScale = 1.2
	// Орбитальная станция: пониженная гравитация и разрешен свободный полет
	cooper.GravityScale = 0.4
	cooper.FlyEnabled = true
	cooper.JumpSpeed = 4.0

	ancient := baseConfig()
	ancient.Name = "ancient"
	ancient.Title = "Ancient"
	ancient.AssetURL = assetURL("ancient.splat")
	ancient.AssetScale = 0.8
	ancient.MoveSpeed = 3.5

	mountain := baseConfig()
	mountain.Name = "mountain"
	mountain.Title = "Mountain"
	mountain.AssetURL = assetURL("mountain.splat")
	mountain.AssetScale = 2.0
	mountain.Terrain = true
	mountain.TerrainAmplitude = 50.0
	mountain.SpawnHeight = 40.0
	mountain.GroundY = -55.0
	mountain.GroundSize = 1600.0
	mountain.MoveSpeed = 5.0

	underground := baseConfig()
	underground.Name = "underground"
	underground.Title = "Underground"
	underground.AssetURL = assetURL("underground.splat")
	underground.AssetScale = 1.0
	underground.Terrain = true
	underground.TerrainAmplitude = 1.5
	underground.SpawnHeight = 2.0
	underground.MoveSpeed = 3.0
	underground.FlyEnabled = true

	return map[string]Config{
		rome.Name:        rome,
		cooper.Name:      cooper,
		ancient.Name:     ancient,
		mountain.Name:    mountain,
		underground.Name: underground,
	}
}

// GetWorld возвращает конфигурацию мира по имени
func GetWorld(name string) (Config, error) {
	cfg, ok := Worlds()[name]
	if !ok {
		return Config{}, fmt.Errorf("неизвестный мир %q (доступны: %s)",
			name, strings.Join(WorldNames(), ", "))
	}
	return cfg, nil
}

// WorldNames возвращает отсортированный список имен миров
func WorldNames() []string {
	worlds := Worlds()
	names := make([]string, 0, len(worlds))
	for name := range worlds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
