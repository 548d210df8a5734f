package service

import (
	"context"
	"fmt"
	"log/slog"

	"respondo.app/backend/common/logger"
	"respondo.app/backend/internal/metrics"
	"respondo.app/backend/internal/prompt"
)

type InstructionService interface {
	Current() *prompt.Instruction
	Reload(ctx context.Context) (*prompt.Instruction, error)
	Source() string
}

// InstructionStore is satisfied by *prompt.Store.
type InstructionStore interface {
	Current() *prompt.Instruction
	Reload(ctx context.Context) (*prompt.Instruction, error)
	Source() string
}

// Broadcaster tells other replicas to reload. Optional.
type Broadcaster interface {
	Publish(ctx context.Context) error
}

type instructionService struct {
	store       InstructionStore
	broadcaster Broadcaster
}

func NewInstructionService(store InstructionStore, broadcaster Broadcaster) InstructionService {
	return &instructionService{store: store, broadcaster: broadcaster}
}

func (s *instructionService) Current() *prompt.Instruction {
	return s.store.Current()
}

func (s *instructionService) Source() string {
	return s.store.Source()
}

// Reload rereads the instruction source. The model is never called. A failed
// broadcast is logged only; the local reload already took effect.
func (s *instructionService) Reload(ctx context.Context) (*prompt.Instruction, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "respondo.service.instruction"})

	inst, err := s.store.Reload(ctx)
	metrics.RecordPromptReload("http", err)
	if err != nil {
		slog.ErrorContext(ctx, "instruction reload failed", "error", err, "source", s.store.Source())
		return nil, fmt.Errorf("reloading instruction: %w", err)
	}

	if s.broadcaster != nil {
		if err := s.broadcaster.Publish(ctx); err != nil {
			slog.WarnContext(ctx, "failed to notify peers of reload", "error", err)
		}
	}

	return inst, nil
}
