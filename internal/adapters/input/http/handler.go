package http

import (
	"broadcast-service/internal/ports/input"
	"broadcast-service/pkg/validator"

	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for the ingestion API
type HTTPHandler struct {
	srv       input.BroadcastService
	db        *gorm.DB // nil when running without the durable store
	validator validator.Validator
}

// New func - Creates new HTTP handler
func New(srv input.BroadcastService, db *gorm.DB) *HTTPHandler {
	return &HTTPHandler{
		srv:       srv,
		db:        db,
		validator: validator.New(),
	}
}

// HealthCheck func
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if hdl.db == nil {
		// in-memory mode, nothing external to probe
		return c.Status(fiber.StatusOK).JSON(HealthResponse{Status: "ok"})
	}

	sqlDB, err := hdl.db.DB()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(HealthResponse{Status: "degraded"})
	}
	if err = sqlDB.Ping(); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(HealthResponse{Status: "degraded"})
	}
	return c.Status(fiber.StatusOK).JSON(HealthResponse{Status: "ok"})
}

// HandleBroadcast func
/* ingestion endpoint */
// HandleBroadcast godoc
// @Summary Broadcast ingestion
// @Description Creates or ends a broadcast session, or submits interim/final teacher text for translation
// @Tags BROADCAST
// @Accept application/json
// @Success 200 {object} BroadcastResponse
// @Failure 400 {object} BroadcastResponse
// @Router /v1/api/broadcast [post]
// @Produce json
// @param BroadcastRequest body BroadcastRequest true "BroadcastRequest"
func (hdl *HTTPHandler) HandleBroadcast(c *fiber.Ctx) error {
	var request BroadcastRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(BroadcastResponse{Success: false, Error: "malformed request body"})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(BroadcastResponse{Success: false, Error: err.Error()})
	}

	switch request.Action {
	case ActionCreate:
		sessionID := hdl.srv.CreateSession()
		return c.Status(fiber.StatusOK).JSON(BroadcastResponse{Success: true, SessionID: sessionID})

	case ActionEnd:
		if request.SessionID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(BroadcastResponse{Success: false, Error: "sessionId is required"})
		}
		active := hdl.srv.EndSession(request.SessionID)
		if !active {
			// ending an unknown session is reported, not failed
			inactive := false
			return c.Status(fiber.StatusOK).JSON(BroadcastResponse{Success: true, Active: &inactive})
		}
		return c.Status(fiber.StatusOK).JSON(BroadcastResponse{Success: true})

	default:
		return hdl.handleText(c, request)
	}
}

// handleText dispatches a text submission to the matching pipeline
// path. The pipeline runs detached; the teacher's client gets its
// acknowledgment immediately, before any translation completes.
func (hdl *HTTPHandler) handleText(c *fiber.Ctx, request BroadcastRequest) error {
	if request.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(BroadcastResponse{Success: false, Error: "sessionId is required"})
	}
	if request.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(BroadcastResponse{Success: false, Error: "text is required"})
	}

	if request.Interim {
		go hdl.srv.HandleInterim(request.SessionID, request.Text)
		return c.Status(fiber.StatusOK).JSON(BroadcastResponse{Success: true})
	}

	go hdl.srv.HandleFinal(request.SessionID, request.Text)
	// pending signals that the quality pass is still in flight server-side
	return c.Status(fiber.StatusOK).JSON(BroadcastResponse{Success: true, Pending: true})
}

// HandleHistory func
/* history replay for late joiners and post-class review */
// HandleHistory godoc
// @Summary Broadcast history
// @Description Returns the session's persisted caption history in chronological order
// @Tags BROADCAST
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} BroadcastResponse
// @Router /v1/api/broadcast/history [get]
// @Produce json
// @param sessionId query string true "session id"
func (hdl *HTTPHandler) HandleHistory(c *fiber.Ctx) error {
	sessionID := c.Query("sessionId")
	if err := hdl.validator.ValidateVar(sessionID, "required,max=64"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(BroadcastResponse{Success: false, Error: "sessionId is required"})
	}

	messages, active := hdl.srv.History(sessionID)
	items := make([]HistoryItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, NewHistoryItem(msg))
	}
	return c.Status(fiber.StatusOK).JSON(HistoryResponse{Success: true, Active: active, Messages: items})
}
