package assets

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"
)

// Размер одной записи в .splat файле: позиция 3*float32, масштаб
// 3*float32, цвет RGBA 4 байта, вращение (кватернион) 4 байта
const splatRecordSize = 32

// Asset - загруженное облако точек: количество сплатов для диагностики
// и ограничивающий объем в мировых координатах (с учетом масштаба мира)
type Asset struct {
	URL   string
	Count int

	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Loader загружает splat-ассеты из хранилища по HTTP.
// Повторов нет: одна попытка с таймаутом, дальше деградированный режим.
type Loader struct {
	client *http.Client
	logger *log.Logger
}

// NewLoader создает загрузчик с таймаутом на весь запрос
func NewLoader(timeout time.Duration, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch синхронно загружает и разбирает ассет
func (l *Loader) Fetch(ctx context.Context, url string, scale float64) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("запрос ассета %s: %w", url, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("загрузка ассета %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("загрузка ассета %s: статус %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("чтение ассета %s: %w", url, err)
	}

	asset, err := ParseSplat(data, scale)
	if err != nil {
		return nil, fmt.Errorf("разбор ассета %s: %w", url, err)
	}
	asset.URL = url

	l.logger.Printf("[Assets] Загружен %s: %d сплатов, %d байт", url, asset.Count, len(data))
	return asset, nil
}

// LoadAsync загружает ассет в фоне и вызывает onLoad по завершении.
// Мир рисует пустое/загрузочное состояние, пока колбэк не сработал;
// ошибка уходит в колбэк, ничего деструктивного не происходит.
func (l *Loader) LoadAsync(ctx context.Context, url string, scale float64, onLoad func(*Asset, error)) {
	go func() {
		asset, err := l.Fetch(ctx, url, scale)
		if err != nil {
			l.logger.Printf("[Assets] Ошибка загрузки: %v", err)
		}
		onLoad(asset, err)
	}()
}

// ParseSplat разбирает бинарный .splat: считает записи и ограничивающий
// объем позиций, умноженных на масштаб мира
func ParseSplat(data []byte, scale float64) (*Asset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("пустой ассет")
	}
	if len(data)%splatRecordSize != 0 {
		return nil, fmt.Errorf("размер %d не кратен записи в %d байт", len(data), splatRecordSize)
	}
	if scale == 0 {
		scale = 1.0
	}

	asset := &Asset{
		Count: len(data) / splatRecordSize,
		MinX:  math.Inf(1), MinY: math.Inf(1), MinZ: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1), MaxZ: math.Inf(-1),
	}

	for off := 0; off < len(data); off += splatRecordSize {
		x := float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))) * scale
		y := float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))) * scale
		z := float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:]))) * scale

		asset.MinX = math.Min(asset.MinX, x)
		asset.MinY = math.Min(asset.MinY, y)
		asset.MinZ = math.Min(asset.MinZ, z)
		asset.MaxX = math.Max(asset.MaxX, x)
		asset.MaxY = math.Max(asset.MaxY, y)
		asset.MaxZ = math.Max(asset.MaxZ, z)
	}

	return asset, nil
}
