package http

import "broadcast-service/internal/domain"

type (
	// BroadcastResponse struct - ingestion endpoint response wrapper
	BroadcastResponse struct {
		Success   bool   `json:"success"`
		SessionID string `json:"sessionId,omitempty"`
		Pending   bool   `json:"pending,omitempty"`
		Active    *bool  `json:"active,omitempty"`
		Error     string `json:"error,omitempty"`
	}

	// ConnectedEvent struct - first event pushed on a new stream
	ConnectedEvent struct {
		Type   string `json:"type"`
		Active bool   `json:"active"`
	}

	// MessageEvent struct - wire envelope for one broadcast message,
	// translated into the listener's locale. Translated stays an empty
	// string when no translation exists for that locale.
	MessageEvent struct {
		Type        string `json:"type"`
		Original    string `json:"original"`
		Translated  string `json:"translated"`
		Timestamp   int64  `json:"timestamp"`
		Provisional bool   `json:"provisional"`
		Interim     bool   `json:"interim"`
	}

	// HistoryItem struct - one persisted caption in a history response
	HistoryItem struct {
		Original     string            `json:"original"`
		Translations map[string]string `json:"translations"`
		Timestamp    int64             `json:"timestamp"`
		Provisional  bool              `json:"provisional"`
	}

	// HistoryResponse struct
	HistoryResponse struct {
		Success  bool          `json:"success"`
		Active   bool          `json:"active"`
		Messages []HistoryItem `json:"messages"`
	}

	// HealthResponse struct
	HealthResponse struct {
		Status string `json:"status"`
	}
)

// NewMessageEvent builds the per-listener wire event for a message.
func NewMessageEvent(msg domain.Message, locale string) MessageEvent {
	return MessageEvent{
		Type:        "message",
		Original:    msg.Original,
		Translated:  msg.TranslationFor(locale),
		Timestamp:   msg.TimestampMillis(),
		Provisional: msg.Provisional(),
		Interim:     msg.Interim(),
	}
}

// NewHistoryItem builds the history representation of a message.
func NewHistoryItem(msg domain.Message) HistoryItem {
	return HistoryItem{
		Original:     msg.Original,
		Translations: msg.Translations,
		Timestamp:    msg.TimestampMillis(),
		Provisional:  msg.Provisional(),
	}
}
