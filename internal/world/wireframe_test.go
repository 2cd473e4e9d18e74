package world

import "testing"

func TestBuildWireframe_GroundOnly(t *testing.T) {
	cfg := baseConfig()
	wf := BuildWireframe(cfg, nil)

	// Контур пола (4 отрезка) плюс две диагонали
	if len(wf.Segments) != 6 {
		t.Fatalf("Ожидали 6 отрезков для пола, получили %d", len(wf.Segments))
	}

	half := cfg.GroundSize / 2
	for i, seg := range wf.Segments {
		for _, p := range [2][3]float64{seg.A, seg.B} {
			if p[1] != cfg.GroundY {
				t.Errorf("Отрезок %d: точка пола на высоте %f вместо %f", i, p[1], cfg.GroundY)
			}
			if p[0] < -half || p[0] > half || p[2] < -half || p[2] > half {
				t.Errorf("Отрезок %d: точка %v за пределами пола", i, p)
			}
		}
	}
}

func TestBuildWireframe_WithTerrain(t *testing.T) {
	cfg := terrainConfig()
	heights := GenerateTerrain(cfg)

	wf := BuildWireframe(cfg, heights)
	if len(wf.Segments) <= 6 {
		t.Fatalf("Террейн должен добавить линии сетки, получили %d отрезков", len(wf.Segments))
	}

	// Прореживание: полная сетка дала бы на порядок больше отрезков
	full := 2 * TerrainGridSize * (TerrainGridSize - 1)
	if len(wf.Segments) >= full {
		t.Errorf("Сетка должна быть прорежена: %d отрезков при полной %d", len(wf.Segments), full)
	}
}

func TestBuildWireframe_IgnoresBadHeights(t *testing.T) {
	cfg := terrainConfig()

	// Данные неправильного размера игнорируются, остается только пол
	wf := BuildWireframe(cfg, make([]float64, 10))
	if len(wf.Segments) != 6 {
		t.Errorf("Невалидные высоты должны игнорироваться, получили %d отрезков", len(wf.Segments))
	}
}

func TestScene_DebugToggleInvariant(t *testing.T) {
	s := NewScene()

	s.Attach(NodeSplats)
	if !s.Has(NodeSplats) || s.Attached() != 1 {
		t.Fatal("Ожидали единственный прикрепленный узел splats")
	}

	s.Detach(NodeSplats)
	s.Attach(NodeWireframe)
	if s.Has(NodeSplats) {
		t.Error("Узел splats должен быть откреплен")
	}
	if !s.Has(NodeWireframe) || s.Attached() != 1 {
		t.Error("Ожидали единственный прикрепленный узел wireframe")
	}

	// Повторное прикрепление идемпотентно
	s.Attach(NodeWireframe)
	if s.Attached() != 1 {
		t.Errorf("Повторный Attach не должен дублировать узел, получили %d", s.Attached())
	}
}
