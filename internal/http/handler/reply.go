package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"respondo.app/backend/internal/http/dto"
	"respondo.app/backend/internal/service"
)

// TestReply is the canned reply returned by the diagnostic endpoint.
const TestReply = "This is a test reply. The model was not called."

type ReplyHandler struct {
	replies service.ReplyService
}

func NewReplyHandler(replies service.ReplyService) *ReplyHandler {
	return &ReplyHandler{replies: replies}
}

func (h *ReplyHandler) SuggestReply(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.DialogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid suggest-reply request", "error", err)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: err.Error()})
		return
	}

	resp, err := h.replies.SuggestReply(ctx, req.ToModel())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.SuggestReplyResponse{
		SuggestedReply: resp.SuggestedReply,
		ProcessingTime: resp.ProcessingTimeSeconds,
	})
}

// Test renders the dialog exactly as SuggestReply would, without a model call.
func (h *ReplyHandler) Test(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.DialogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid test request", "error", err)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: err.Error()})
		return
	}

	preview, err := h.replies.Preview(ctx, req.ToModel())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.TestDialogResponse{
		FormattedDialog:  preview.Transcript,
		TemporalAnalysis: preview.TemporalAnalysis,
		MessageCount:     preview.MessageCount,
		PromptLength:     preview.InstructionLength,
		TestReply:        TestReply,
	})
}
