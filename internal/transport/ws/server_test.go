package ws

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"

	"splatwalk/internal/physics"
	"splatwalk/internal/sim"
	"splatwalk/internal/world"
)

func testWorldConfig() world.Config {
	cfg, _ := world.GetWorld("rome")
	return cfg
}

// wrapWS адаптирует HandleWS под httptest
func wrapWS(srv *WSServer) http.Handler {
	return http.HandlerFunc(srv.HandleWS)
}

// readUntil читает сообщения, пока не встретит нужный тип
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]interface{} {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	conn.SetReadDeadline(deadline)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Ошибка чтения в ожидании %s: %v", msgType, err)
		}
		var msg map[string]interface{}
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Невалидный JSON: %v", err)
		}
		if msg["type"] == msgType {
			return msg
		}
	}
}

func dialTestServer(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(url, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Не удалось подключиться: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWSServer_HandshakeSequence(t *testing.T) {
	phys := physics.NewWorld(mgl64.Vec3{0, -9.81, 0})
	cfg := testWorldConfig()
	phys.AddCollider(physics.NewGroundBox(cfg.GroundY, cfg.GroundSize))

	srv := NewWSServer(phys, cfg, nil, log.New(io.Discard, "", 0))
	httpSrv := httptest.NewServer(wrapWS(srv))
	defer httpSrv.Close()

	conn := dialTestServer(t, httpSrv.URL)

	// Порядок при подключении: info, world_init, asset_status
	readUntil(t, conn, MessageTypeInfo)
	initMsg := readUntil(t, conn, MessageTypeWorldInit)
	statusMsg := readUntil(t, conn, MessageTypeAssetStatus)

	if initMsg["world"] != "rome" {
		t.Errorf("Ожидали мир rome, получили %v", initMsg["world"])
	}
	if initMsg["degraded"] == true {
		t.Error("С физикой мир не должен быть деградированным")
	}
	if statusMsg["loaded"] == true {
		t.Error("Ассет еще не загружался")
	}

	// Сессия зарегистрирована и отдана циклу кадров
	waitFor(t, func() bool { return len(srv.Agents()) == 1 })
}

func TestWSServer_DegradedInit(t *testing.T) {
	srv := NewWSServer(nil, testWorldConfig(), nil, log.New(io.Discard, "", 0))
	httpSrv := httptest.NewServer(wrapWS(srv))
	defer httpSrv.Close()

	conn := dialTestServer(t, httpSrv.URL)
	initMsg := readUntil(t, conn, MessageTypeWorldInit)

	if initMsg["degraded"] != true {
		t.Error("Без физики world_init должен нести degraded=true")
	}
}

func TestWSServer_PingPong(t *testing.T) {
	srv := NewWSServer(nil, testWorldConfig(), nil, log.New(io.Discard, "", 0))
	httpSrv := httptest.NewServer(wrapWS(srv))
	defer httpSrv.Close()

	conn := dialTestServer(t, httpSrv.URL)
	readUntil(t, conn, MessageTypeAssetStatus)

	if err := conn.WriteJSON(PingMessage{Type: MessageTypePing, ClientTime: 777}); err != nil {
		t.Fatalf("Ошибка отправки пинга: %v", err)
	}

	pong := readUntil(t, conn, MessageTypePong)
	if pong["client_time"] != float64(777) {
		t.Errorf("Pong должен вернуть client_time, получили %v", pong["client_time"])
	}
}

func TestWSServer_ToggleMute(t *testing.T) {
	srv := NewWSServer(nil, testWorldConfig(), nil, log.New(io.Discard, "", 0))
	httpSrv := httptest.NewServer(wrapWS(srv))
	defer httpSrv.Close()

	conn := dialTestServer(t, httpSrv.URL)
	readUntil(t, conn, MessageTypeAssetStatus)

	conn.WriteJSON(ToggleMuteMessage{Type: MessageTypeToggleMute})
	mute := readUntil(t, conn, MessageTypeMute)
	if mute["muted"] != true {
		t.Errorf("Первое переключение должно включить mute, получили %v", mute["muted"])
	}

	conn.WriteJSON(ToggleMuteMessage{Type: MessageTypeToggleMute})
	mute = readUntil(t, conn, MessageTypeMute)
	if mute["muted"] != false {
		t.Errorf("Второе переключение должно выключить mute, получили %v", mute["muted"])
	}
}

func TestWSServer_ToggleViewAfterAssetLoad(t *testing.T) {
	srv := NewWSServer(nil, testWorldConfig(), nil, log.New(io.Discard, "", 0))
	httpSrv := httptest.NewServer(wrapWS(srv))
	defer httpSrv.Close()

	conn := dialTestServer(t, httpSrv.URL)
	readUntil(t, conn, MessageTypeAssetStatus)

	// Имитируем завершение загрузки ассета
	srv.OnAssetLoaded(1000, nil)
	status := readUntil(t, conn, MessageTypeAssetStatus)
	if status["loaded"] != true || status["count"] != float64(1000) {
		t.Errorf("Ожидали loaded=true count=1000, получили %v", status)
	}

	// Первое переключение: wireframe и каркасная геометрия
	conn.WriteJSON(ToggleViewMessage{Type: MessageTypeToggleView})
	view := readUntil(t, conn, MessageTypeViewMode)
	if view["mode"] != string(sim.ViewWireframe) {
		t.Errorf("Ожидали режим wireframe, получили %v", view["mode"])
	}
	if view["wireframe"] == nil {
		t.Error("При первом переключении каркас должен прийти клиенту")
	}

	// Обратное переключение: splats без каркаса
	conn.WriteJSON(ToggleViewMessage{Type: MessageTypeToggleView})
	view = readUntil(t, conn, MessageTypeViewMode)
	if view["mode"] != string(sim.ViewSplats) {
		t.Errorf("Ожидали режим splats, получили %v", view["mode"])
	}
	if _, ok := view["wireframe"]; ok {
		t.Error("Повторное переключение не должно слать каркас")
	}
}

func TestWSServer_AssetLoadFailure(t *testing.T) {
	srv := NewWSServer(nil, testWorldConfig(), nil, log.New(io.Discard, "", 0))
	httpSrv := httptest.NewServer(wrapWS(srv))
	defer httpSrv.Close()

	conn := dialTestServer(t, httpSrv.URL)
	readUntil(t, conn, MessageTypeAssetStatus)

	srv.OnAssetLoaded(0, errors.New("storage unreachable"))
	status := readUntil(t, conn, MessageTypeAssetStatus)
	if status["loaded"] == true {
		t.Error("После ошибки загрузки loaded должен остаться false")
	}
	if status["error"] != "storage unreachable" {
		t.Errorf("Ожидали текст ошибки, получили %v", status["error"])
	}

	// Переключение отладки при незагруженном ассете - no-op, ответа нет
	conn.WriteJSON(ToggleViewMessage{Type: MessageTypeToggleView})
	conn.WriteJSON(PingMessage{Type: MessageTypePing, ClientTime: 1})
	msg := readUntil(t, conn, MessageTypePong)
	if msg["type"] != MessageTypePong {
		t.Error("Вместо view_mode должен прийти только pong")
	}
}

func TestWSServer_CameraStreaming(t *testing.T) {
	cfg := testWorldConfig()
	phys := physics.NewWorld(mgl64.Vec3{0, -9.81 * cfg.GravityScale, 0})
	phys.AddCollider(physics.NewGroundBox(cfg.GroundY, cfg.GroundSize))

	srv := NewWSServer(phys, cfg, nil, log.New(io.Discard, "", 0))
	httpSrv := httptest.NewServer(wrapWS(srv))
	defer httpSrv.Close()

	// Полный цикл кадров поверх того же физического мира
	loop := sim.NewLoop(60, phys, srv.Agents, log.New(io.Discard, "", 0))
	loop.Start()
	defer loop.Stop()

	conn := dialTestServer(t, httpSrv.URL)
	readUntil(t, conn, MessageTypeAssetStatus)

	// Захватываем указатель: движение разрешено
	conn.WriteJSON(LookMessage{Type: MessageTypeLook, Locked: true})

	camera := readUntil(t, conn, MessageTypeCamera)

	// Тело падает с точки появления и встает на пол; камера выше ног
	// на высоту глаз, и Y не может быть ниже пола
	if camera["y"].(float64) < cfg.GroundY {
		t.Errorf("Камера ниже пола: %v", camera["y"])
	}

	// Дождемся приземления: grounded в стриме становится true
	deadline := time.Now().Add(3 * time.Second)
	for camera["grounded"] != true {
		if time.Now().After(deadline) {
			t.Fatal("Тело так и не приземлилось")
		}
		camera = readUntil(t, conn, MessageTypeCamera)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Условие не выполнилось за отведенное время")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
