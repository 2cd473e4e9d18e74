package ws

// handleInput передает изменение клавиши контроллеру движения.
// Прыжок обрабатывается контроллером по факту нажатия.
func (s *WSServer) handleInput(session *Session, message interface{}) error {
	msg, ok := message.(*InputMessage)
	if !ok {
		return ErrInvalidMessage
	}
	session.Controller.HandleKey(msg.Code, msg.Pressed)
	return nil
}

// handleLook обновляет углы взгляда и состояние pointer lock.
// На любом переходе захвата клавиатура сбрасывается: keyup за пределами
// захвата до нас не долетит, а нажатия до захвата не должны сработать
// после него.
func (s *WSServer) handleLook(session *Session, message interface{}) error {
	msg, ok := message.(*LookMessage)
	if !ok {
		return ErrInvalidMessage
	}

	session.Controller.Look.SetLook(msg.Yaw, msg.Pitch)
	wasLocked := session.Controller.Look.Locked()
	session.Controller.Look.SetLocked(msg.Locked)
	if wasLocked != msg.Locked {
		session.Controller.Keys.Reset()
	}
	return nil
}

// handleToggleView переключает splats/wireframe. До загрузки ассета -
// no-op. Каркасная геометрия уходит клиенту один раз, при первом
// построении.
func (s *WSServer) handleToggleView(session *Session, message interface{}) error {
	if _, ok := message.(*ToggleViewMessage); !ok {
		return ErrInvalidMessage
	}

	mode, wireframe, changed := session.Debug.Toggle()
	if !changed {
		return nil
	}

	s.logger.Printf("[WSServer] Сессия %s: режим %s", session.ID, mode)
	return s.sendSimulated(session.Conn, &ViewModeMessage{
		Type:      MessageTypeViewMode,
		Mode:      string(mode),
		Wireframe: wireframe,
	})
}

// handleToggleMute переключает звук сессии
func (s *WSServer) handleToggleMute(session *Session, message interface{}) error {
	if _, ok := message.(*ToggleMuteMessage); !ok {
		return ErrInvalidMessage
	}

	muted := session.ToggleMute()
	return s.sendSimulated(session.Conn, &MuteMessage{Type: MessageTypeMute, Muted: muted})
}

// handlePing отвечает pong с отметками времени
func (s *WSServer) handlePing(session *Session, message interface{}) error {
	msg, ok := message.(*PingMessage)
	if !ok {
		return ErrInvalidMessage
	}
	return session.Conn.WriteJSON(NewPongMessage(msg.ClientTime))
}
