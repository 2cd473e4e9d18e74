package ws

import (
	"time"
)

// startClientStreaming регулярно отправляет сессии ее позу камеры.
// Позиция пишется циклом кадров после шагов физики; здесь она только
// читается и сериализуется.
func (s *WSServer) startClientStreaming(session *Session) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-session.done:
			return
		case <-ticker.C:
			pos, grounded, ok := session.Camera.Pose()
			if !ok {
				// Камера еще не синхронизирована (деградированный
				// режим или первый кадр не прошел)
				continue
			}

			msg := &CameraMessage{
				Type:       MessageTypeCamera,
				X:          pos.X(),
				Y:          pos.Y(),
				Z:          pos.Z(),
				Grounded:   grounded,
				ServerTime: time.Now().UnixMilli(),
			}
			if err := s.sendSimulated(session.Conn, msg); err != nil {
				s.logger.Printf("[WSServer] Ошибка стриминга камеры сессии %s: %v", session.ID, err)
				return
			}
		}
	}
}
