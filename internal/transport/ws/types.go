package ws

import "splatwalk/internal/world"

// Типы сообщений протокола
const (
	// Клиент -> сервер
	MessageTypeInput      = "input"       // Нажатие/отпускание клавиши
	MessageTypeLook       = "look"        // Углы взгляда и состояние pointer lock
	MessageTypeToggleView = "toggle_view" // Переключение splats/wireframe
	MessageTypeToggleMute = "toggle_mute" // Переключение звука
	MessageTypePing       = "ping"        // Пинг для измерения задержки

	// Сервер -> клиент
	MessageTypeInfo        = "info"         // Информационное сообщение
	MessageTypeWorldInit   = "world_init"   // Конфигурация мира при подключении
	MessageTypeAssetStatus = "asset_status" // Состояние загрузки ассета
	MessageTypeCamera      = "camera"       // Синхронизированная поза камеры
	MessageTypeViewMode    = "view_mode"    // Активный визуальный режим
	MessageTypeMute        = "mute"         // Состояние звука
	MessageTypePong        = "pong"         // Ответ на пинг
)

// InputMessage - изменение состояния клавиши от клиента
type InputMessage struct {
	Type       string `json:"type"`
	Code       string `json:"code"`
	Pressed    bool   `json:"pressed"`
	ClientTime int64  `json:"client_time,omitempty"`
}

// LookMessage - углы взгляда (радианы) и признак захвата указателя
type LookMessage struct {
	Type   string  `json:"type"`
	Yaw    float64 `json:"yaw"`
	Pitch  float64 `json:"pitch"`
	Locked bool    `json:"locked"`
}

// ToggleViewMessage - запрос переключения визуального режима
type ToggleViewMessage struct {
	Type string `json:"type"`
}

// ToggleMuteMessage - запрос переключения звука
type ToggleMuteMessage struct {
	Type string `json:"type"`
}

// PingMessage - пинг от клиента
type PingMessage struct {
	Type       string `json:"type"`
	ClientTime int64  `json:"client_time"`
}

// InfoMessage - информационное сообщение сервера
type InfoMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// WorldInitMessage - все, что клиенту нужно для построения сцены
type WorldInitMessage struct {
	Type       string  `json:"type"`
	World      string  `json:"world"`
	Title      string  `json:"title"`
	AssetURL   string  `json:"asset_url"`
	AssetScale float64 `json:"asset_scale"`
	EyeHeight  float64 `json:"eye_height"`
	SpawnX     float64 `json:"spawn_x"`
	SpawnY     float64 `json:"spawn_y"`
	SpawnZ     float64 `json:"spawn_z"`
	// Статическая геометрия: фолбэк-пол и признак террейна
	GroundY    float64 `json:"ground_y"`
	GroundSize float64 `json:"ground_size"`
	Terrain    bool    `json:"terrain,omitempty"`
	// Физика на сервере недоступна: клиент показывает предупреждение
	Degraded   bool  `json:"degraded,omitempty"`
	ServerTime int64 `json:"server_time"`
}

// AssetStatusMessage - состояние загрузки splat-ассета
type AssetStatusMessage struct {
	Type   string `json:"type"`
	Loaded bool   `json:"loaded"`
	Count  int    `json:"count,omitempty"`
	Error  string `json:"error,omitempty"`
}

// CameraMessage - позиция камеры после шагов физики.
// Ориентация не передается: ею владеет клиентский pointer lock.
type CameraMessage struct {
	Type       string  `json:"type"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Grounded   bool    `json:"grounded"`
	ServerTime int64   `json:"server_time"`
}

// ViewModeMessage - активный визуальный режим; каркасная геометрия
// передается один раз при первом построении
type ViewModeMessage struct {
	Type      string           `json:"type"`
	Mode      string           `json:"mode"`
	Wireframe *world.Wireframe `json:"wireframe,omitempty"`
}

// MuteMessage - текущее состояние звука сессии
type MuteMessage struct {
	Type  string `json:"type"`
	Muted bool   `json:"muted"`
}

// PongMessage - ответ сервера на пинг
type PongMessage struct {
	Type       string `json:"type"`
	ClientTime int64  `json:"client_time"`
	ServerTime int64  `json:"server_time"`
}
