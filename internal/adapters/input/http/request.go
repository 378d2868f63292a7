package http

type (
	// BroadcastRequest struct - HTTP request DTO for the ingestion
	// endpoint, dispatched on Action: "create", "end", or empty for a
	// text submission (interim or final).
	BroadcastRequest struct {
		Action    string `json:"action" validate:"omitempty,oneof=create end" form:"action"`
		SessionID string `json:"sessionId" validate:"omitempty,max=64" form:"sessionId"`
		Text      string `json:"text" validate:"omitempty,max=2000" form:"text"`
		Interim   bool   `json:"interim" form:"interim"`
	}

	// StreamRequest struct - HTTP query DTO for the streaming endpoint
	StreamRequest struct {
		SessionID string `json:"sessionId" query:"sessionId" validate:"required,max=64"`
		Locale    string `json:"locale" query:"locale" validate:"omitempty,max=16"`
	}
)

const (
	// ActionCreate const
	ActionCreate = "create"
	// ActionEnd const
	ActionEnd = "end"
)
