package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInstruction is used when the instruction resource does not exist.
const DefaultInstruction = `You are an assistant that helps people write replies in chat conversations.
Your task is to read the dialog history and suggest an appropriate, polite and meaningful reply.

Requirements for the reply:
- Be brief and to the point
- Take the context and tone of the conversation into account
- Reply in the same language as the dialog
- Do not repeat what has already been said
- Be polite and professional`

// OriginDefault marks an instruction that came from DefaultInstruction.
const OriginDefault = "built-in default"

var ErrEmptyInstruction = errors.New("instruction resource has no content")

// Instruction is an immutable snapshot of the system instruction.
type Instruction struct {
	Text     string
	Origin   string
	LoadedAt time.Time
}

func (i *Instruction) Length() int {
	if i == nil {
		return 0
	}
	return len([]rune(i.Text))
}

// Extract returns the inner content of the first {...} region of raw, trimmed.
// Without such a region the whole of raw is used, trimmed.
func Extract(raw string) string {
	open := strings.IndexByte(raw, '{')
	if open >= 0 {
		if end := strings.IndexByte(raw[open+1:], '}'); end >= 0 {
			return strings.TrimSpace(raw[open+1 : open+1+end])
		}
	}
	return strings.TrimSpace(raw)
}

// Store owns the process-wide instruction. Readers get a whole snapshot through
// Current; writers replace it through Swap or Reload.
type Store struct {
	current atomic.Pointer[Instruction]
	source  Source
	reload  sync.Mutex
	now     func() time.Time
}

func NewStore(source Source) *Store {
	return &Store{source: source, now: time.Now}
}

// Current returns the active instruction, or nil before the first load.
func (s *Store) Current() *Instruction {
	return s.current.Load()
}

// Swap installs next and returns the previous instruction.
func (s *Store) Swap(next *Instruction) *Instruction {
	return s.current.Swap(next)
}

func (s *Store) Source() string {
	return s.source.Describe()
}

// Reload reads the source and swaps in the result. A missing resource installs
// DefaultInstruction. On any other failure the current instruction is kept.
func (s *Store) Reload(ctx context.Context) (*Instruction, error) {
	s.reload.Lock()
	defer s.reload.Unlock()

	next, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	prev := s.Swap(next)
	slog.InfoContext(ctx, "system instruction loaded",
		"origin", next.Origin,
		"length", next.Length(),
		"previous_length", prev.Length())
	return next, nil
}

func (s *Store) load(ctx context.Context) (*Instruction, error) {
	raw, err := s.source.Load(ctx)
	if errors.Is(err, ErrSourceNotFound) {
		slog.WarnContext(ctx, "instruction source missing, using built-in default",
			"source", s.source.Describe(), "error", err)
		return &Instruction{Text: DefaultInstruction, Origin: OriginDefault, LoadedAt: s.now()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading instruction: %w", err)
	}

	text := Extract(raw)
	if text == "" {
		return nil, fmt.Errorf("loading instruction from %s: %w", s.source.Describe(), ErrEmptyInstruction)
	}

	return &Instruction{Text: text, Origin: s.source.Describe(), LoadedAt: s.now()}, nil
}
