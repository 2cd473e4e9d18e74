package world

import (
	"math"
	"testing"
)

func terrainConfig() Config {
	cfg := baseConfig()
	cfg.Name = "mountain"
	cfg.Terrain = true
	cfg.TerrainAmplitude = 50.0
	cfg.GroundY = -55.0
	cfg.GroundSize = 1600.0
	return cfg
}

func TestGenerateTerrain_Deterministic(t *testing.T) {
	cfg := terrainConfig()

	// Клиент и сервер генерируют рельеф независимо: результат обязан
	// совпадать от запуска к запуску
	a := GenerateTerrain(cfg)
	b := GenerateTerrain(cfg)

	if len(a) != TerrainGridSize*TerrainGridSize {
		t.Fatalf("Ожидали %d высот, получили %d", TerrainGridSize*TerrainGridSize, len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Генератор недетерминирован: узел %d дал %f и %f", i, a[i], b[i])
		}
	}
}

func TestGenerateTerrain_AmplitudeBounds(t *testing.T) {
	cfg := terrainConfig()
	heights := GenerateTerrain(cfg)

	for i, h := range heights {
		if h < cfg.GroundY-cfg.TerrainAmplitude || h > cfg.GroundY+cfg.TerrainAmplitude {
			t.Fatalf("Узел %d: высота %f вне [%f, %f]", i, h,
				cfg.GroundY-cfg.TerrainAmplitude, cfg.GroundY+cfg.TerrainAmplitude)
		}
	}
}

func TestGenerateTerrain_FlatWithoutTerrain(t *testing.T) {
	cfg := baseConfig()
	cfg.Terrain = false

	heights := GenerateTerrain(cfg)
	for _, h := range heights {
		if h != 0 {
			t.Fatal("Без террейна высоты должны быть нулевыми")
		}
	}
}

func TestGenerateTerrain_SpawnFlattened(t *testing.T) {
	cfg := terrainConfig()
	heights := GenerateTerrain(cfg)

	// Узел сетки под точкой появления сглажен к GroundY, чтобы игрок
	// не оказался внутри склона на первом тике
	n := TerrainGridSize
	cell := cfg.GroundSize / float64(n-1)
	gi := int(math.Round((cfg.SpawnX + cfg.GroundSize/2) / cell))
	gj := int(math.Round((cfg.SpawnZ + cfg.GroundSize/2) / cell))

	h := heights[gj*n+gi]
	if math.Abs(h-cfg.GroundY) > 1.5 {
		t.Errorf("Рельеф у точки появления должен быть сглажен к %f, получили %f", cfg.GroundY, h)
	}

	// А вдали от точки появления рельеф не плоский
	varied := false
	for _, v := range heights {
		if math.Abs(v-cfg.GroundY) > 5.0 {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("Рельеф с амплитудой 50 не должен быть плоским целиком")
	}
}
