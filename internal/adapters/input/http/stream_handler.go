package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"broadcast-service/internal/domain"
	"broadcast-service/internal/ports/input"
	"broadcast-service/internal/ports/output"
	"broadcast-service/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StreamHandler struct - Primary/Driving adapter for the SSE delivery
// endpoint. One connection per listener, translated into the
// listener's locale, with last-interim replay for mid-utterance joins
// and comment heartbeats to defeat idle proxy timeouts.
type StreamHandler struct {
	srv       input.BroadcastService
	bus       output.EventBus
	heartbeat time.Duration
	validator validator.Validator
}

// NewStreamHandler func - Creates new stream handler
func NewStreamHandler(srv input.BroadcastService, bus output.EventBus, heartbeat time.Duration) *StreamHandler {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &StreamHandler{
		srv:       srv,
		bus:       bus,
		heartbeat: heartbeat,
		validator: validator.New(),
	}
}

// HandleStream func
/* per-listener server-push stream */
// HandleStream godoc
// @Summary Broadcast stream
// @Description Server-sent event stream of broadcast messages translated into the listener's locale
// @Tags BROADCAST
// @Success 200 {string} string "text/event-stream"
// @Failure 400 {object} BroadcastResponse
// @Router /v1/api/broadcast/stream [get]
// @param sessionId query string true "session id"
// @param locale query string false "target language code"
func (hdl *StreamHandler) HandleStream(c *fiber.Ctx) error {
	var request StreamRequest
	if err := c.QueryParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(BroadcastResponse{Success: false, Error: "malformed query"})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(BroadcastResponse{Success: false, Error: err.Error()})
	}

	targets := hdl.srv.TargetLanguages()
	locale := request.Locale
	if locale == "" {
		locale = targets[0]
	}
	locale = domain.NormalizeLanguage(locale, targets)

	sessionID := request.SessionID
	active := hdl.srv.SessionActive(sessionID)

	// subscribe before the replay snapshot so an interim published in
	// between arrives on the channel instead of vanishing; a duplicate
	// replay frame is harmless since interim frames overwrite each
	// other client-side
	events, unsubscribe := hdl.bus.Subscribe(sessionID)
	lastInterim, hasInterim := hdl.srv.LastInterim(sessionID)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	heartbeat := hdl.heartbeat
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		if err := writeEvent(w, ConnectedEvent{Type: "connected", Active: active}); err != nil {
			return
		}
		if hasInterim {
			// a listener joining mid-sentence sees the partial
			// transcript instead of a blank screen
			if err := writeEvent(w, NewMessageEvent(lastInterim, locale)); err != nil {
				return
			}
		}

		for {
			select {
			case msg, ok := <-events:
				if !ok {
					return
				}
				if err := writeEvent(w, NewMessageEvent(msg, locale)); err != nil {
					return
				}
			case <-ticker.C:
				if err := writeHeartbeat(w); err != nil {
					return
				}
			}
		}
	})

	return nil
}

// writeEvent pushes one SSE data frame. A flush error means the
// listener disconnected; the caller tears the subscription down.
func writeEvent(w *bufio.Writer, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.Errorln(err)
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

// writeHeartbeat pushes the comment-only keep-alive line.
func writeHeartbeat(w *bufio.Writer) error {
	if _, err := w.WriteString(": ping\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
