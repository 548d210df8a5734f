package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"respondo.app/backend/internal/http/dto"
	"respondo.app/backend/internal/service"
)

// ServiceInfo is the static part of the root status payload.
type ServiceInfo struct {
	Name           string
	Version        string
	Model          string
	Provider       string
	CustomEndpoint bool
}

type MetaHandler struct {
	instructions service.InstructionService
	info         ServiceInfo
}

func NewMetaHandler(instructions service.InstructionService, info ServiceInfo) *MetaHandler {
	return &MetaHandler{instructions: instructions, info: info}
}

func (h *MetaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "healthy"})
}

func (h *MetaHandler) Status(c *gin.Context) {
	endpoint := "standard"
	if h.info.CustomEndpoint {
		endpoint = "custom"
	}

	c.JSON(http.StatusOK, dto.ServiceStatusResponse{
		Status:       "running",
		Service:      h.info.Name,
		Version:      h.info.Version,
		Model:        h.info.Model,
		Provider:     h.info.Provider,
		Endpoint:     endpoint,
		PromptLoaded: h.instructions.Current().Length() > 0,
	})
}

func (h *MetaHandler) ReloadPrompt(c *gin.Context) {
	ctx := c.Request.Context()

	inst, err := h.instructions.Reload(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: err.Error()})
		return
	}

	slog.InfoContext(ctx, "prompt reloaded over http", "length", inst.Length(), "origin", inst.Origin)
	c.JSON(http.StatusOK, dto.ReloadPromptResponse{
		Status:       "reloaded",
		PromptLength: inst.Length(),
	})
}
