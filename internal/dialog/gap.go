package dialog

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// JustStarted is reported when there are fewer than two messages to compare.
	JustStarted = "conversation just started"
	// AnalysisUnavailable is reported when the instants cannot be compared.
	AnalysisUnavailable = "temporal analysis unavailable"
)

var ErrIncomparableInstants = errors.New("cannot compare zoned and naive timestamps")

type GapStatus int

const (
	GapMeasured GapStatus = iota
	GapInsufficient
	GapUnavailable
)

// GapAnalysis describes the most recent inter-message gap and the overall span.
// Only a GapMeasured analysis carries categories and magnitudes.
type GapAnalysis struct {
	Status            GapStatus
	LastGapSeconds    float64
	TotalSpanSeconds  float64
	LastGapCategory   string
	TotalSpanCategory string
}

func (g GapAnalysis) String() string {
	switch g.Status {
	case GapInsufficient:
		return JustStarted
	case GapUnavailable:
		return AnalysisUnavailable
	default:
		return g.LastGapCategory + "; " + g.TotalSpanCategory
	}
}

type gapBucket struct {
	below float64 // exclusive upper bound in seconds; +Inf for the last bucket
	label func(seconds float64) string
}

var lastGapBuckets = []gapBucket{
	{below: 60, label: func(float64) string { return "active exchange (reply within a minute)" }},
	{below: 3600, label: func(s float64) string { return fmt.Sprintf("short pause (%d minutes)", floorDiv(s, 60)) }},
	{below: 86400, label: func(s float64) string { return fmt.Sprintf("notable pause (%d hours)", floorDiv(s, 3600)) }},
	{below: math.Inf(1), label: func(s float64) string { return fmt.Sprintf("long pause (%d days)", floorDiv(s, 86400)) }},
}

var totalSpanBuckets = []gapBucket{
	{below: 3600, label: func(float64) string { return "fast-moving conversation" }},
	{below: 86400, label: func(float64) string { return "conversation spanning a day" }},
	{below: math.Inf(1), label: func(float64) string { return "long-running conversation" }},
}

// AnalyzeGaps classifies the gap between the last two instants and the span from
// first to last. It never fails; incomparable input yields a GapUnavailable analysis.
//
// Negative gaps (out-of-order timestamps) fall into the lowest bucket like any other
// value under its bound.
func AnalyzeGaps(instants []Instant) (analysis GapAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			analysis = GapAnalysis{Status: GapUnavailable}
		}
	}()

	if len(instants) < 2 {
		return GapAnalysis{Status: GapInsufficient}
	}

	last := instants[len(instants)-1]
	lastGap, err := elapsedSeconds(instants[len(instants)-2], last)
	if err != nil {
		return GapAnalysis{Status: GapUnavailable}
	}
	totalSpan, err := elapsedSeconds(instants[0], last)
	if err != nil {
		return GapAnalysis{Status: GapUnavailable}
	}

	return GapAnalysis{
		Status:            GapMeasured,
		LastGapSeconds:    lastGap,
		TotalSpanSeconds:  totalSpan,
		LastGapCategory:   classify(lastGap, lastGapBuckets),
		TotalSpanCategory: classify(totalSpan, totalSpanBuckets),
	}
}

// elapsedSeconds returns b-a in seconds. Computed from Unix seconds rather than
// time.Duration so spans longer than ~292 years do not saturate.
func elapsedSeconds(a, b Instant) (float64, error) {
	if a.Zoned != b.Zoned {
		return 0, ErrIncomparableInstants
	}
	secs := float64(b.Time.Unix() - a.Time.Unix())
	secs += float64(b.Time.Nanosecond()-a.Time.Nanosecond()) / float64(time.Second)
	return secs, nil
}

func classify(seconds float64, buckets []gapBucket) string {
	for _, b := range buckets {
		if seconds < b.below {
			return b.label(seconds)
		}
	}
	return buckets[len(buckets)-1].label(seconds)
}

func floorDiv(seconds, unit float64) int64 {
	return int64(math.Floor(seconds / unit))
}
