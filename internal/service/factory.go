package service

import (
	"time"

	"respondo.app/backend/common/llm"
	"respondo.app/backend/internal/dialog"
)

type ServicesConfig struct {
	LLM          llm.Client
	Instructions InstructionStore
	Broadcaster  Broadcaster      // nil when Redis is not configured
	Clock        func() time.Time // nil means time.Now
}

type Services struct {
	llm          llm.Client
	instructions InstructionStore
	broadcaster  Broadcaster
	pipeline     *dialog.Pipeline
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		llm:          cfg.LLM,
		instructions: cfg.Instructions,
		broadcaster:  cfg.Broadcaster,
		pipeline:     dialog.NewPipeline(cfg.Clock),
	}
}

func (s *Services) Replies() ReplyService {
	return NewReplyService(s.llm, s.instructions, s.pipeline)
}

func (s *Services) Instructions() InstructionService {
	return NewInstructionService(s.instructions, s.broadcaster)
}
