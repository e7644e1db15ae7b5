package ingest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"huddle/internal/logger"
	"huddle/pkg/errors"
)

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/slack/events", h.HandleEvent)
	router.POST("/slack/events/", h.HandleEvent)
}

// HandleEvent processes one webhook delivery. URL verification echoes the
// challenge as plain text; message events are admitted asynchronously from
// the platform's point of view, so the response is always 200 once parsed.
func (h *Handler) HandleEvent(c *gin.Context) {
	var payload EventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errors.ToErrorResponse(errors.ErrValidation.WithCause(err)))
		return
	}

	if payload.Type == payloadTypeURLVerification {
		c.String(http.StatusOK, payload.Challenge)
		return
	}

	if payload.Event != nil && payload.Event.Type == eventTypeMessage {
		if _, err := h.service.Admit(c.Request.Context(), *payload.Event); err != nil {
			h.logger.ErrorwCtx(c.Request.Context(), "Failed to publish admitted message",
				"error", err,
			)
			status := errors.ToHTTPStatus(err)
			c.JSON(status, errors.ToErrorResponse(err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
