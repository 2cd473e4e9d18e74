package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Структуры сообщений (зеркало internal/transport/ws/types.go)
type inputMessage struct {
	Type       string `json:"type"`
	Code       string `json:"code"`
	Pressed    bool   `json:"pressed"`
	ClientTime int64  `json:"client_time,omitempty"`
}

type lookMessage struct {
	Type   string  `json:"type"`
	Yaw    float64 `json:"yaw"`
	Pitch  float64 `json:"pitch"`
	Locked bool    `json:"locked"`
}

type toggleViewMessage struct {
	Type string `json:"type"`
}

type cameraMessage struct {
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Grounded bool    `json:"grounded"`
}

// Bot ходит по миру кругами и собирает статистику обновлений камеры
type Bot struct {
	ID       string
	URL      string
	Duration time.Duration

	conn    *websocket.Conn
	writeMu sync.Mutex

	statsMu       sync.Mutex
	sent          int
	cameraUpdates int
	errors        int
	lastCamera    cameraMessage
}

// NewBot создает бота
func NewBot(id, url string, duration time.Duration) *Bot {
	return &Bot{ID: id, URL: url, Duration: duration}
}

// Connect подключается к серверу
func (b *Bot) Connect() error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(b.URL, nil)
	if err != nil {
		return fmt.Errorf("ошибка подключения: %w", err)
	}
	b.conn = conn
	log.Printf("[Bot %s] Подключен к %s", b.ID, b.URL)
	return nil
}

func (b *Bot) send(v interface{}) {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	if err := b.conn.WriteJSON(v); err != nil {
		b.statsMu.Lock()
		b.errors++
		b.statsMu.Unlock()
		return
	}
	b.statsMu.Lock()
	b.sent++
	b.statsMu.Unlock()
}

// readLoop читает сообщения сервера и считает обновления камеры
func (b *Bot) readLoop() {
	for {
		_, data, err := b.conn.ReadMessage()
		if err != nil {
			return
		}
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &base); err != nil {
			continue
		}
		if base.Type != "camera" {
			continue
		}
		var cam cameraMessage
		if err := json.Unmarshal(data, &cam); err != nil {
			continue
		}
		b.statsMu.Lock()
		b.cameraUpdates++
		b.lastCamera = cam
		b.statsMu.Unlock()
	}
}

// walk изображает игрока: захват указателя, поворот по кругу, ходьба
// вперед, иногда прыжок или переключение отладочного вида
func (b *Bot) walk(done <-chan struct{}) {
	b.send(&lookMessage{Type: "look", Locked: true})
	b.send(&inputMessage{Type: "input", Code: "KeyW", Pressed: true})

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	yaw := 0.0
	for {
		select {
		case <-done:
			b.send(&inputMessage{Type: "input", Code: "KeyW", Pressed: false})
			b.send(&lookMessage{Type: "look", Locked: false})
			return
		case <-ticker.C:
			yaw += 0.15
			if yaw > 2*math.Pi {
				yaw -= 2 * math.Pi
			}
			b.send(&lookMessage{Type: "look", Yaw: yaw, Locked: true})

			switch rand.IntN(20) {
			case 0:
				// Прыжок: нажатие и отпускание
				b.send(&inputMessage{Type: "input", Code: "Space", Pressed: true})
				b.send(&inputMessage{Type: "input", Code: "Space", Pressed: false})
			case 1:
				b.send(&toggleViewMessage{Type: "toggle_view"})
			}
		}
	}
}

// Report печатает итоговую статистику
func (b *Bot) Report() {
	b.statsMu.Lock()
	defer b.statsMu.Unlock()
	log.Printf("[Bot %s] Отправлено: %d, обновлений камеры: %d, ошибок: %d",
		b.ID, b.sent, b.cameraUpdates, b.errors)
	log.Printf("[Bot %s] Последняя камера: (%.2f, %.2f, %.2f) grounded=%v",
		b.ID, b.lastCamera.X, b.lastCamera.Y, b.lastCamera.Z, b.lastCamera.Grounded)
}

func main() {
	var (
		url      = flag.String("url", "ws://localhost:8080/ws", "адрес WebSocket сервера")
		duration = flag.Duration("duration", 30*time.Second, "длительность прогулки")
		count    = flag.Int("count", 1, "количество ботов")
	)
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	var wg sync.WaitGroup

	bots := make([]*Bot, 0, *count)
	for i := 0; i < *count; i++ {
		bot := NewBot(fmt.Sprintf("bot-%d", i+1), *url, *duration)
		if err := bot.Connect(); err != nil {
			log.Printf("[Bot] %v", err)
			continue
		}
		bots = append(bots, bot)

		wg.Add(1)
		go func() {
			defer wg.Done()
			go bot.readLoop()
			bot.walk(done)
		}()
	}

	if len(bots) == 0 {
		log.Fatal("[Bot] Нет подключенных ботов")
	}

	select {
	case <-time.After(*duration):
	case <-interrupt:
		log.Printf("[Bot] Прервано")
	}
	close(done)
	wg.Wait()

	for _, bot := range bots {
		bot.Report()
		bot.conn.Close()
	}
}
