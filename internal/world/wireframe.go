package world

// Segment - отрезок каркасной геометрии в мировых координатах
type Segment struct {
	A [3]float64 `json:"a"`
	B [3]float64 `json:"b"`
}

// Wireframe - каркасная прокси-геометрия мира для отладочного режима.
// Строится лениво при первом переключении и отправляется клиенту один раз.
type Wireframe struct {
	Segments []Segment `json:"segments"`
}

// Шаг прореживания сетки террейна: полная сетка 128x128 дает слишком
// тяжелое сообщение, для отладки хватает каждой восьмой линии
const wireframeStride = 8

// BuildWireframe строит каркас из фолбэк-пола и (если есть) террейна.
// На физику не влияет: это чисто визуальное представление.
func BuildWireframe(cfg Config, heights []float64) *Wireframe {
	wf := &Wireframe{}

	// Контур фолбэк-пола
	half := cfg.GroundSize / 2
	y := cfg.GroundY
	corners := [4][3]float64{
		{-half, y, -half},
		{half, y, -half},
		{half, y, half},
		{-half, y, half},
	}
	for i := 0; i < 4; i++ {
		wf.Segments = append(wf.Segments, Segment{A: corners[i], B: corners[(i+1)%4]})
	}
	// Диагонали, чтобы плоскость читалась в каркасе
	wf.Segments = append(wf.Segments,
		Segment{A: corners[0], B: corners[2]},
		Segment{A: corners[1], B: corners[3]},
	)

	if cfg.Terrain && len(heights) == TerrainGridSize*TerrainGridSize {
		wf.appendTerrain(cfg, heights)
	}

	return wf
}

// appendTerrain добавляет прореженные линии сетки террейна
func (wf *Wireframe) appendTerrain(cfg Config, heights []float64) {
	n := TerrainGridSize
	cell := cfg.GroundSize / float64(n-1)
	origin := -cfg.GroundSize / 2

	at := func(i, j int) [3]float64 {
		return [3]float64{
			origin + float64(i)*cell,
			heights[j*n+i],
			origin + float64(j)*cell,
		}
	}

	// Линии вдоль X
	for j := 0; j < n; j += wireframeStride {
		for i := 0; i < n-1; i++ {
			wf.Segments = append(wf.Segments, Segment{A: at(i, j), B: at(i+1, j)})
		}
	}
	// Линии вдоль Z
	for i := 0; i < n; i += wireframeStride {
		for j := 0; j < n-1; j++ {
			wf.Segments = append(wf.Segments, Segment{A: at(i, j), B: at(i, j+1)})
		}
	}
}
