package sim

import "sync"

// Коды клавиш в нотации браузерного KeyboardEvent.code
const (
	KeyForward = "KeyW"
	KeyBack    = "KeyS"
	KeyLeft    = "KeyA"
	KeyRight   = "KeyD"
	KeyJump    = "Space"
	KeyAscend  = "KeyE"
	KeyDescend = "KeyQ"
	KeyToggle  = "KeyT" // переключение splats/wireframe на клиенте
)

// KeyState - состояние клавиатуры: код клавиши -> нажата ли.
// Пишется обработчиками keydown/keyup, читается интегратором движения
// раз за кадр. Повторные keydown при удержании идемпотентны.
// Переходы отпущено -> нажато дополнительно копятся в очереди фронтов:
// обработчики сообщений только пишут сюда под мьютексом, а действия по
// факту нажатия (прыжок) выполняет цикл кадров.
type KeyState struct {
	mu      sync.RWMutex
	pressed map[string]bool
	edges   map[string]bool
}

// NewKeyState создает пустое состояние клавиатуры
func NewKeyState() *KeyState {
	return &KeyState{
		pressed: make(map[string]bool),
		edges:   make(map[string]bool),
	}
}

// Set выставляет состояние клавиши и сообщает, изменилось ли оно.
// Переход в нажатое состояние запоминается до ближайшего ConsumePress.
func (k *KeyState) Set(code string, down bool) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.pressed[code] == down {
		return false
	}
	k.pressed[code] = down
	if down {
		k.edges[code] = true
	}
	return true
}

// ConsumePress возвращает и сбрасывает признак нажатия клавиши с момента
// прошлого опроса. Вызывается интегратором раз за кадр.
func (k *KeyState) ConsumePress(code string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	pressed := k.edges[code]
	delete(k.edges, code)
	return pressed
}

// IsPressed возвращает состояние клавиши; неизвестные коды - false
func (k *KeyState) IsPressed(code string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.pressed[code]
}

// Reset сбрасывает все клавиши и очередь фронтов (потеря pointer lock,
// разрыв соединения)
func (k *KeyState) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressed = make(map[string]bool)
	k.edges = make(map[string]bool)
}
