package insights

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
	v1 := router.Group("/api/v1")
	{
		v1.GET("/insights", h.GetInsights)
		v1.GET("/stats", h.GetStats)
		v1.GET("/messages", h.GetMessages)
		v1.POST("/search", h.Search)
		v1.GET("/problems", h.GetProblems)
		v1.GET("/questions", h.GetQuestions)
		v1.GET("/urgent", h.GetUrgent)
		v1.GET("/timeline", h.GetTimeline)
		v1.GET("/mood", h.GetMood)
	}
}

func (h *Handler) GetInsights(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Insights(c.Request.Context()))
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Stats(c.Request.Context()))
}

func (h *Handler) GetMessages(c *gin.Context) {
	var q MessagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errors.ToErrorResponse(errors.ErrValidation.WithCause(err)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": h.service.RecentMessages(q.Hours, q.Limit)})
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.ToErrorResponse(errors.ErrValidation.WithCause(err)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": h.service.Search(req)})
}

func (h *Handler) GetProblems(c *gin.Context) {
	var q MessagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errors.ToErrorResponse(errors.ErrValidation.WithCause(err)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"problems": h.service.Problems(c.Request.Context(), q.Hours, q.Limit)})
}

func (h *Handler) GetQuestions(c *gin.Context) {
	var q MessagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errors.ToErrorResponse(errors.ErrValidation.WithCause(err)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": h.service.Questions(c.Request.Context(), q.Hours, q.Limit)})
}

func (h *Handler) GetUrgent(c *gin.Context) {
	var q MessagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errors.ToErrorResponse(errors.ErrValidation.WithCause(err)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"urgent": h.service.Urgent(c.Request.Context(), q.Hours, q.Limit)})
}

func (h *Handler) GetTimeline(c *gin.Context) {
	var q TimelineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errors.ToErrorResponse(errors.ErrValidation.WithCause(err)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeline": h.service.Timeline(c.Request.Context(), q.Minutes)})
}

func (h *Handler) GetMood(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Mood())
}
