package sim

import (
	"sync"

	"splatwalk/internal/world"
)

// ViewMode - активное визуальное представление мира
type ViewMode string

const (
	ViewSplats    ViewMode = "splats"
	ViewWireframe ViewMode = "wireframe"
)

// DebugView - переключатель между облаком точек и каркасной
// прокси-геометрией. На физику не влияет. До завершения загрузки
// ассета переключение - no-op. Каркас строится лениво при первом
// переключении и дальше переиспользуется.
type DebugView struct {
	mu    sync.Mutex
	scene *world.Scene
	mode  ViewMode

	loaded    bool
	wireframe *world.Wireframe
	build     func() *world.Wireframe
}

// NewDebugView создает переключатель в режиме splats.
// build вызывается один раз при первом переходе в wireframe.
func NewDebugView(scene *world.Scene, build func() *world.Wireframe) *DebugView {
	return &DebugView{
		scene: scene,
		mode:  ViewSplats,
		build: build,
	}
}

// OnAssetLoaded отмечает завершение загрузки ассета и прикрепляет
// splat-меш к сцене
func (d *DebugView) OnAssetLoaded() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loaded = true
	d.scene.Attach(world.NodeSplats)
}

// Mode возвращает активный режим
func (d *DebugView) Mode() ViewMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Toggle переключает режим. Возвращает новый режим, каркас (не nil
// только при первом построении - клиенту его нужно отправить один раз)
// и признак того, что переключение произошло.
func (d *DebugView) Toggle() (ViewMode, *world.Wireframe, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return d.mode, nil, false
	}

	var firstBuild *world.Wireframe
	switch d.mode {
	case ViewSplats:
		d.scene.Detach(world.NodeSplats)
		if d.wireframe == nil && d.build != nil {
			d.wireframe = d.build()
			firstBuild = d.wireframe
		}
		d.scene.Attach(world.NodeWireframe)
		d.mode = ViewWireframe
	case ViewWireframe:
		d.scene.Detach(world.NodeWireframe)
		d.scene.Attach(world.NodeSplats)
		d.mode = ViewSplats
	}

	return d.mode, firstBuild, true
}
