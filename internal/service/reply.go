package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"respondo.app/backend/common/llm"
	"respondo.app/backend/common/logger"
	"respondo.app/backend/internal/dialog"
	"respondo.app/backend/internal/metrics"
	"respondo.app/backend/internal/model"
	"respondo.app/backend/internal/prompt"
)

type ReplyService interface {
	SuggestReply(ctx context.Context, req model.DialogRequest) (*model.DialogResponse, error)
	Preview(ctx context.Context, req model.DialogRequest) (*model.DialogPreview, error)
}

// InstructionReader exposes the active system instruction.
type InstructionReader interface {
	Current() *prompt.Instruction
}

type replyService struct {
	client       llm.Client
	instructions InstructionReader
	pipeline     *dialog.Pipeline
}

func NewReplyService(client llm.Client, instructions InstructionReader, pipeline *dialog.Pipeline) ReplyService {
	return &replyService{
		client:       client,
		instructions: instructions,
		pipeline:     pipeline,
	}
}

// SuggestReply compiles the dialog into a prompt and makes exactly one model
// call. Every failure is returned as a *ProcessingError.
func (s *replyService) SuggestReply(ctx context.Context, req model.DialogRequest) (*model.DialogResponse, error) {
	start := time.Now()

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "respondo.service.reply",
		Provider:  logger.Ptr(s.client.Provider()),
		Model:     logger.Ptr(s.client.Model()),
	})
	sc := logger.StartSpan(ctx, "reply.suggest")
	defer sc.End()
	ctx = sc.Context()

	reply, err := s.suggest(ctx, req)
	metrics.RecordReply(err)
	if err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "reply suggestion failed", "error", err, "message_count", len(req.Messages))
		return nil, &ProcessingError{Cause: err}
	}

	elapsed := time.Since(start).Seconds()
	slog.InfoContext(ctx, "reply suggested",
		"message_count", len(req.Messages),
		"reply_length", len(reply),
		"processing_time", elapsed)

	return &model.DialogResponse{
		SuggestedReply:        reply,
		ProcessingTimeSeconds: elapsed,
	}, nil
}

func (s *replyService) suggest(ctx context.Context, req model.DialogRequest) (string, error) {
	compiled, err := s.compile(ctx, req)
	if err != nil {
		return "", err
	}

	callStart := time.Now()
	resp, err := s.client.Complete(ctx, llm.CompletionRequest{Prompt: compiled.Prompt})
	metrics.ObserveModelCall(s.client.Provider(), err, time.Since(callStart))
	if err != nil {
		return "", fmt.Errorf("calling %s model: %w", s.client.Provider(), err)
	}
	metrics.AddTokenUsage(s.client.Provider(), resp.PromptTokens, resp.CompletionTokens)

	return strings.TrimSpace(resp.Text), nil
}

// Preview runs the formatting stages only. It never calls the model.
func (s *replyService) Preview(ctx context.Context, req model.DialogRequest) (*model.DialogPreview, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "respondo.service.preview"})

	compiled, err := s.compile(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "dialog preview failed", "error", err)
		return nil, &ProcessingError{Cause: err}
	}

	return &model.DialogPreview{
		Transcript:        compiled.Transcript,
		TemporalAnalysis:  compiled.Analysis.String(),
		Prompt:            compiled.Prompt,
		MessageCount:      len(req.Messages),
		InstructionLength: s.instructions.Current().Length(),
	}, nil
}

func (s *replyService) compile(ctx context.Context, req model.DialogRequest) (*dialog.Compiled, error) {
	sc := logger.StartSpan(ctx, "reply.compile")
	defer sc.End()
	ctx = sc.Context()

	var text string
	if inst := s.instructions.Current(); inst != nil {
		text = inst.Text
	}

	compiled, err := s.pipeline.Compile(text, req)
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("compiling prompt: %w", err)
	}

	if compiled.Approximated > 0 {
		metrics.AddApproximatedTimestamps(compiled.Approximated)
		slog.DebugContext(ctx, "timestamps approximated with current time",
			"count", compiled.Approximated,
			"message_count", len(req.Messages))
	}
	if compiled.Analysis.Status == dialog.GapUnavailable {
		slog.DebugContext(ctx, "temporal analysis unavailable", "message_count", len(req.Messages))
	}

	return compiled, nil
}
