package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	temporal "github.com/yatender-oktalk/OpenDeepSearch-sub000"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/server/dto"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/telemetry"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// AnswerHandler handles question resolution requests
type AnswerHandler struct {
	agent     temporal.Agent
	telemetry *telemetry.AnswerWriter
	logger    *slog.Logger
}

// NewAnswerHandler creates a new answer handler. writer may be nil when
// answer telemetry is disabled.
func NewAnswerHandler(agent temporal.Agent, writer *telemetry.AnswerWriter, logger *slog.Logger) *AnswerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnswerHandler{
		agent:     agent,
		telemetry: writer,
		logger:    logger,
	}
}

// Answer handles POST /api/v1/answer
func (h *AnswerHandler) Answer(c *gin.Context) {
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	start := time.Now()
	answer, err := h.agent.Answer(c.Request.Context(), req.Question)
	if h.telemetry != nil {
		h.telemetry.Record(req.Question, answer, time.Since(start), err)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	requestID, _ := c.Request.Context().Value(types.ContextKeyRequestID).(string)
	c.JSON(http.StatusOK, dto.AnswerResponse{
		Answer:    answer.Text,
		Intent:    string(answer.Intent),
		Source:    string(answer.Source),
		Empty:     answer.Empty,
		Degraded:  answer.Degraded,
		Warnings:  answer.Warnings,
		RequestID: requestID,
	})
}

// writeError maps pipeline errors onto HTTP status codes.
func (h *AnswerHandler) writeError(c *gin.Context, err error) {
	h.logger.ErrorContext(c.Request.Context(), "answer request failed", "error", err)

	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		})
		return
	}

	var storeErr *types.StoreError
	if errors.As(err, &storeErr) {
		status := http.StatusBadGateway
		code := "store_unavailable"
		switch storeErr.Kind {
		case types.StoreErrorTimeout:
			status = http.StatusGatewayTimeout
			code = "store_timeout"
		case types.StoreErrorSyntax:
			status = http.StatusInternalServerError
			code = "query_rejected"
		}
		c.JSON(status, dto.ErrorResponse{
			Error:   code,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
