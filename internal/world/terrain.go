package world

import "math"

// Размер узловой сетки террейна. Совпадает с детализацией меша на клиенте.
const TerrainGridSize = 128

// valueNoise2D - детерминированный псевдошум для генерации рельефа.
// Настоящий шум Перлина здесь не нужен: рельеф служит коллайдером и
// wireframe-прокси, а не художественным ассетом.
func valueNoise2D(x, y float64) float64 {
	h := x*12.9898 + y*78.233
	s := math.Abs(math.Sin(h) * 43758.5453)
	return s - math.Floor(s)
}

func smoothstep(t float64) float64 {
	return t * t * (3.0 - 2.0*t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// smoothNoise - билинейно сглаженный шум по четырем углам ячейки
func smoothNoise(x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	sx := smoothstep(x - x0)
	sy := smoothstep(y - y0)

	n00 := valueNoise2D(x0, y0)
	n10 := valueNoise2D(x0+1, y0)
	n01 := valueNoise2D(x0, y0+1)
	n11 := valueNoise2D(x0+1, y0+1)

	return lerp(lerp(n00, n10, sx), lerp(n01, n11, sx), sy)
}

// GenerateTerrain строит сетку высот для мира с процедурным террейном.
// Высоты центрированы вокруг cfg.GroundY и ограничены амплитудой мира.
// Генератор детерминирован: клиент и сервер получают один рельеф.
func GenerateTerrain(cfg Config) []float64 {
	w, d := TerrainGridSize, TerrainGridSize
	heights := make([]float64, w*d)
	if !cfg.Terrain || cfg.TerrainAmplitude <= 0 {
		return heights
	}

	// Октавы фрактального шума
	scales := []float64{1.0, 0.5, 0.25, 0.125, 0.0625}
	amplitudes := []float64{0.5, 0.25, 0.125, 0.0625, 0.03125}

	for j := 0; j < d; j++ {
		for i := 0; i < w; i++ {
			nx := float64(i) / float64(w-1)
			nz := float64(j) / float64(d-1)

			noise := 0.0
			for layer := range scales {
				noise += smoothNoise(nx*scales[layer]*10.0, nz*scales[layer]*10.0) * amplitudes[layer]
			}

			// noise примерно в [0..1]; переводим в [-1..1] вокруг нуля
			heights[j*w+i] = cfg.GroundY + (noise*2.0-1.0)*cfg.TerrainAmplitude
		}
	}

	// Ровная площадка вокруг точки появления, чтобы игрок не оказался
	// внутри склона на первом же тике
	flattenSpawn(heights, w, d, cfg)

	return heights
}

// flattenSpawn сглаживает рельеф к GroundY в окрестности точки появления
func flattenSpawn(heights []float64, w, d int, cfg Config) {
	cellX := cfg.GroundSize / float64(w-1)
	cellZ := cfg.GroundSize / float64(d-1)
	gx := (cfg.SpawnX + cfg.GroundSize/2) / cellX
	gz := (cfg.SpawnZ + cfg.GroundSize/2) / cellZ

	const flatRadius = 6.0 // в ячейках сетки
	for j := 0; j < d; j++ {
		for i := 0; i < w; i++ {
			dist := math.Hypot(float64(i)-gx, float64(j)-gz)
			if dist >= flatRadius {
				continue
			}
			t := smoothstep(dist / flatRadius)
			heights[j*w+i] = lerp(cfg.GroundY, heights[j*w+i], t)
		}
	}
}
