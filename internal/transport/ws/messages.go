package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMessage - обработчику пришло сообщение не того типа
var ErrInvalidMessage = errors.New("invalid message for handler")

// ParseMessage разбирает входящее сообщение клиента в соответствующий тип
func ParseMessage(data []byte) (interface{}, error) {
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("error parsing message: %w", err)
	}

	switch base.Type {
	case MessageTypeInput:
		var msg InputMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("error parsing input message: %w", err)
		}
		return &msg, nil

	case MessageTypeLook:
		var msg LookMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("error parsing look message: %w", err)
		}
		return &msg, nil

	case MessageTypeToggleView:
		var msg ToggleViewMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("error parsing toggle_view message: %w", err)
		}
		return &msg, nil

	case MessageTypeToggleMute:
		var msg ToggleMuteMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("error parsing toggle_mute message: %w", err)
		}
		return &msg, nil

	case MessageTypePing:
		var msg PingMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("error parsing ping message: %w", err)
		}
		return &msg, nil

	default:
		return nil, errors.New("unknown message type: " + base.Type)
	}
}

// MessageType возвращает тип уже разобранного сообщения
func MessageType(message interface{}) (string, bool) {
	switch msg := message.(type) {
	case *InputMessage:
		return msg.Type, true
	case *LookMessage:
		return msg.Type, true
	case *ToggleViewMessage:
		return msg.Type, true
	case *ToggleMuteMessage:
		return msg.Type, true
	case *PingMessage:
		return msg.Type, true
	default:
		return "", false
	}
}

// NewInfoMessage создает информационное сообщение
func NewInfoMessage(text string) *InfoMessage {
	return &InfoMessage{Type: MessageTypeInfo, Message: text}
}

// NewPongMessage создает ответ на пинг
func NewPongMessage(clientTime int64) *PongMessage {
	return &PongMessage{
		Type:       MessageTypePong,
		ClientTime: clientTime,
		ServerTime: time.Now().UnixMilli(),
	}
}
