package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	ActionEnableAudio  = "enable_audio"
	ActionSelectSymbol = "select_symbol"
)

// ControlMessage is what dashboards send over the socket.
type ControlMessage struct {
	Type   string `json:"type"`   // "control"
	Action string `json:"action"` // enable_audio, select_symbol
	Value  any    `json:"value,omitempty"`
}

// ParseControl decodes a client frame. Frames that are not control messages
// are dropped.
func ParseControl(msg []byte, log *zap.Logger) (ControlMessage, bool) {
	var meta struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &meta); err != nil {
		log.Debug("failed to extract message type", zap.Error(err))
		return ControlMessage{}, false
	}
	if meta.Type != "control" {
		return ControlMessage{}, false
	}

	var ctrl ControlMessage
	if err := json.Unmarshal(msg, &ctrl); err != nil {
		log.Debug("failed to parse control message", zap.Error(err))
		return ControlMessage{}, false
	}
	ctrl.Action = strings.ToLower(strings.TrimSpace(ctrl.Action))
	return ctrl, true
}

// handleControl applies a dashboard control message.
func (s *Server) handleControl(ctrl ControlMessage) *StatusMessage {
	switch ctrl.Action {
	case ActionEnableAudio:
		s.notifier.EnableAudio()
		return &StatusMessage{Type: "status", Level: "success", Text: "Audio enabled"}

	case ActionSelectSymbol:
		symbol, _ := ctrl.Value.(string)
		if strings.TrimSpace(symbol) == "" {
			return &StatusMessage{Type: "status", Level: "error", Text: "select_symbol needs a symbol"}
		}
		s.books.Select(symbol)
		return &StatusMessage{Type: "status", Level: "info", Text: fmt.Sprintf("Selected %s", strings.TrimSpace(symbol))}

	default:
		s.log.Debug("unknown control action", zap.String("action", ctrl.Action))
		return nil
	}
}
