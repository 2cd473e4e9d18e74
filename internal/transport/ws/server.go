package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"splatwalk/internal/physics"
	"splatwalk/internal/sim"
	"splatwalk/internal/world"
)

const (
	DefaultUpdateInterval = 50 * time.Millisecond // Интервал отправки позы камеры
	DefaultPingInterval   = 2 * time.Second       // Интервал пингов соединения
)

// MessageHandler - обработчик одного типа сообщений
type MessageHandler func(session *Session, message interface{}) error

// WSServer - WebSocket сервер мира: принимает соединения, создает
// сессии игроков и стримит каждому его позу камеры
type WSServer struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	phys     *physics.World // nil - деградированный режим
	worldCfg world.Config
	heights  []float64 // данные террейна для каркасной геометрии

	handlers map[string]MessageHandler

	sessionsMu sync.RWMutex
	sessions   map[string]*Session

	updateInterval time.Duration
	pingInterval   time.Duration

	netSim NetworkSimulation

	// Состояние загрузки splat-ассета (один мир на процесс)
	assetMu     sync.RWMutex
	assetLoaded bool
	assetCount  int
	assetErr    string

	// Каркасная прокси-геометрия строится один раз на сервер
	wireframeOnce sync.Once
	wireframe     *world.Wireframe
}

// NewWSServer создает сервер для одного мира.
// phys может быть nil - тогда клиенты получают degraded в world_init.
func NewWSServer(phys *physics.World, cfg world.Config, heights []float64, logger *log.Logger) *WSServer {
	if logger == nil {
		logger = log.Default()
	}

	server := &WSServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:         logger,
		phys:           phys,
		worldCfg:       cfg,
		heights:        heights,
		handlers:       make(map[string]MessageHandler),
		sessions:       make(map[string]*Session),
		updateInterval: DefaultUpdateInterval,
		pingInterval:   DefaultPingInterval,
	}

	server.RegisterHandler(MessageTypeInput, server.handleInput)
	server.RegisterHandler(MessageTypeLook, server.handleLook)
	server.RegisterHandler(MessageTypeToggleView, server.handleToggleView)
	server.RegisterHandler(MessageTypeToggleMute, server.handleToggleMute)
	server.RegisterHandler(MessageTypePing, server.handlePing)

	return server
}

// RegisterHandler регистрирует обработчик для типа сообщений
func (s *WSServer) RegisterHandler(messageType string, handler MessageHandler) {
	s.handlers[messageType] = handler
}

// Agents отдает контроллеры и камеры активных сессий циклу кадров
func (s *WSServer) Agents() []*sim.Agent {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()

	agents := make([]*sim.Agent, 0, len(s.sessions))
	for _, session := range s.sessions {
		agents = append(agents, &sim.Agent{
			Controller: session.Controller,
			Camera:     session.Camera,
		})
	}
	return agents
}

// OnAssetLoaded вызывается загрузчиком ассетов по завершении.
// Отмечает загрузку, включает отладочный переключатель у существующих
// сессий и рассылает asset_status.
func (s *WSServer) OnAssetLoaded(count int, loadErr error) {
	s.assetMu.Lock()
	if loadErr != nil {
		s.assetErr = loadErr.Error()
	} else {
		s.assetLoaded = true
		s.assetCount = count
	}
	s.assetMu.Unlock()

	if loadErr != nil {
		s.logger.Printf("[WSServer] Ассет не загружен: %v", loadErr)
	} else {
		s.logger.Printf("[WSServer] Ассет загружен: %d сплатов", count)
	}

	status := s.assetStatus()
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	for _, session := range s.sessions {
		if s.assetLoaded {
			session.Debug.OnAssetLoaded()
		}
		if err := s.sendSimulated(session.Conn, status); err != nil {
			s.logger.Printf("[WSServer] Ошибка отправки asset_status сессии %s: %v", session.ID, err)
		}
	}
}

func (s *WSServer) assetStatus() *AssetStatusMessage {
	s.assetMu.RLock()
	defer s.assetMu.RUnlock()
	return &AssetStatusMessage{
		Type:   MessageTypeAssetStatus,
		Loaded: s.assetLoaded,
		Count:  s.assetCount,
		Error:  s.assetErr,
	}
}

// buildWireframe лениво строит каркасную геометрию мира (общая для
// всех сессий)
func (s *WSServer) buildWireframe() *world.Wireframe {
	s.wireframeOnce.Do(func() {
		s.wireframe = world.BuildWireframe(s.worldCfg, s.heights)
		s.logger.Printf("[WSServer] Построена каркасная геометрия: %d отрезков", len(s.wireframe.Segments))
	})
	return s.wireframe
}

// HandleWS обрабатывает входящее WebSocket соединение
func (s *WSServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("Websocket upgrade error: %v", err)
		return
	}

	safeConn := NewSafeWriter(conn)
	session := s.newSession(safeConn)

	defer func() {
		s.removeSession(session)
		safeConn.Close()
	}()

	s.logger.Printf("[WSServer] Новое соединение %s (сессия %s)", conn.RemoteAddr(), session.ID)

	if err := safeConn.WriteJSON(NewInfoMessage("Connected to splatwalk world " + s.worldCfg.Name)); err != nil {
		s.logger.Printf("Error sending welcome message: %v", err)
		return
	}
	if err := safeConn.WriteJSON(s.worldInit()); err != nil {
		s.logger.Printf("[WSServer] Ошибка отправки world_init: %v", err)
		return
	}
	if err := safeConn.WriteJSON(s.assetStatus()); err != nil {
		s.logger.Printf("[WSServer] Ошибка отправки asset_status: %v", err)
		return
	}

	s.sessionsMu.Lock()
	s.sessions[session.ID] = session
	s.sessionsMu.Unlock()

	// Если ассет уже загружен к моменту подключения, сессия сразу
	// получает рабочий переключатель отладки
	s.assetMu.RLock()
	loaded := s.assetLoaded
	s.assetMu.RUnlock()
	if loaded {
		session.Debug.OnAssetLoaded()
	}

	if s.pingInterval > 0 {
		go s.startPing(session)
	}
	go s.startClientStreaming(session)

	// Основной цикл чтения сообщений
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Printf("WebSocket error: %v", err)
			}
			break
		}

		message, err := ParseMessage(data)
		if err != nil {
			s.logger.Printf("Error parsing message: %v", err)
			continue
		}

		messageType, ok := MessageType(message)
		if !ok {
			continue
		}

		if handler, ok := s.handlers[messageType]; ok {
			if err := handler(session, message); err != nil {
				s.logger.Printf("Error handling message %s: %v", messageType, err)
			}
		} else {
			s.logger.Printf("No handler registered for message type: %s", messageType)
		}
	}

	s.logger.Printf("[WSServer] Соединение закрыто: %s (сессия %s)", conn.RemoteAddr(), session.ID)
}

func (s *WSServer) worldInit() *WorldInitMessage {
	return &WorldInitMessage{
		Type:       MessageTypeWorldInit,
		World:      s.worldCfg.Name,
		Title:      s.worldCfg.Title,
		AssetURL:   s.worldCfg.AssetURL,
		AssetScale: s.worldCfg.AssetScale,
		EyeHeight:  s.worldCfg.EyeHeight,
		SpawnX:     s.worldCfg.SpawnX,
		SpawnY:     s.worldCfg.SpawnHeight,
		SpawnZ:     s.worldCfg.SpawnZ,
		GroundY:    s.worldCfg.GroundY,
		GroundSize: s.worldCfg.GroundSize,
		Terrain:    s.worldCfg.Terrain,
		Degraded:   s.phys == nil,
		ServerTime: time.Now().UnixMilli(),
	}
}

// removeSession удаляет сессию и ее тело из физического мира
func (s *WSServer) removeSession(session *Session) {
	close(session.done)

	s.sessionsMu.Lock()
	delete(s.sessions, session.ID)
	s.sessionsMu.Unlock()

	if s.phys != nil {
		s.phys.RemoveBody(session.ObjectID)
	}
}

// startPing поддерживает соединение живым
func (s *WSServer) startPing(session *Session) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-session.done:
			return
		case <-ticker.C:
			if err := session.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
