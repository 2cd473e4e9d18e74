package sim

import (
	"testing"

	"splatwalk/internal/world"
)

func testWireframe() *world.Wireframe {
	return &world.Wireframe{Segments: []world.Segment{
		{A: [3]float64{0, 0, 0}, B: [3]float64{1, 0, 0}},
	}}
}

func TestDebugView_NoopBeforeAssetLoaded(t *testing.T) {
	scene := world.NewScene()
	dv := NewDebugView(scene, testWireframe)

	mode, wf, changed := dv.Toggle()
	if changed {
		t.Error("До загрузки ассета переключение должно быть no-op")
	}
	if mode != ViewSplats || wf != nil {
		t.Errorf("Режим должен остаться splats без каркаса, получили %s", mode)
	}
	if scene.Attached() != 0 {
		t.Error("Сцена должна остаться пустой")
	}
}

func TestDebugView_ToggleCycle(t *testing.T) {
	scene := world.NewScene()
	builds := 0
	dv := NewDebugView(scene, func() *world.Wireframe {
		builds++
		return testWireframe()
	})

	dv.OnAssetLoaded()
	if !scene.Has(world.NodeSplats) {
		t.Fatal("После загрузки ассета splats должны быть прикреплены")
	}

	// === splats -> wireframe: каркас строится и отдается один раз ===
	mode, wf, changed := dv.Toggle()
	if !changed || mode != ViewWireframe {
		t.Fatalf("Ожидали переход в wireframe, получили %s (changed=%v)", mode, changed)
	}
	if wf == nil {
		t.Fatal("При первом построении каркас должен вернуться клиенту")
	}
	if scene.Has(world.NodeSplats) || !scene.Has(world.NodeWireframe) {
		t.Error("В режиме wireframe прикреплен должен быть только каркас")
	}

	// === wireframe -> splats ===
	mode, wf, changed = dv.Toggle()
	if !changed || mode != ViewSplats {
		t.Fatalf("Ожидали возврат в splats, получили %s", mode)
	}
	if wf != nil {
		t.Error("Обратное переключение не должно отдавать каркас")
	}
	if !scene.Has(world.NodeSplats) || scene.Has(world.NodeWireframe) {
		t.Error("В режиме splats прикреплено должно быть только облако точек")
	}

	// === повторный заход в wireframe переиспользует построенное ===
	_, wf, _ = dv.Toggle()
	if wf != nil {
		t.Error("Повторное переключение не должно отдавать каркас снова")
	}
	if builds != 1 {
		t.Errorf("Каркас должен строиться ровно один раз, построен %d раз", builds)
	}
}

func TestDebugView_ExclusivityUnderToggleSequence(t *testing.T) {
	scene := world.NewScene()
	dv := NewDebugView(scene, testWireframe)
	dv.OnAssetLoaded()

	// Инвариант: после любого числа переключений прикреплен ровно один узел
	for i := 0; i < 7; i++ {
		dv.Toggle()
		if scene.Attached() != 1 {
			t.Fatalf("Переключение %d: прикреплено %d узлов вместо 1", i, scene.Attached())
		}
	}

	// Нечетное число переключений из splats дает wireframe
	if dv.Mode() != ViewWireframe {
		t.Errorf("После 7 переключений ожидали wireframe, получили %s", dv.Mode())
	}
}
