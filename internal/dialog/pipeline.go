package dialog

import (
	"time"

	"respondo.app/backend/internal/model"
)

// Compiled is everything the formatting stages produce for one request.
type Compiled struct {
	Instants     []Instant
	Analysis     GapAnalysis
	Transcript   string
	Prompt       string
	Approximated int // count of timestamps that fell back to the clock
}

// Pipeline runs normalization, gap analysis, rendering and prompt compilation.
// It holds no request state and is safe for concurrent use.
type Pipeline struct {
	normalizer *Normalizer
}

func NewPipeline(now func() time.Time) *Pipeline {
	return &Pipeline{normalizer: NewNormalizer(now)}
}

func (p *Pipeline) Compile(instruction string, req model.DialogRequest) (*Compiled, error) {
	timestamps := make([]string, len(req.Messages))
	for i, m := range req.Messages {
		timestamps[i] = m.Timestamp
	}

	instants := p.normalizer.NormalizeAll(timestamps)
	approximated := 0
	for _, in := range instants {
		if in.Outcome == Approximated {
			approximated++
		}
	}

	analysis := AnalyzeGaps(instants)
	transcript := RenderTranscript(req.Messages, analysis)

	prompt, err := CompilePrompt(instruction, req.Context, transcript)
	if err != nil {
		return nil, err
	}

	return &Compiled{
		Instants:     instants,
		Analysis:     analysis,
		Transcript:   transcript,
		Prompt:       prompt,
		Approximated: approximated,
	}, nil
}
