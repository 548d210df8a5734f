package dialog

import "time"

// Outcome tags how an Instant was obtained.
type Outcome int

const (
	// Parsed means one of the supported formats matched.
	Parsed Outcome = iota
	// Approximated means no format matched and the wall clock was used instead.
	Approximated
)

func (o Outcome) String() string {
	if o == Approximated {
		return "approximated"
	}
	return "parsed"
}

// Instant is a normalized message timestamp.
// Zoned is false for values that carried no UTC offset; those are compared as wall-clock readings.
type Instant struct {
	Time    time.Time
	Outcome Outcome
	Zoned   bool
	Format  string
}

// timestampFormat is one row of the ordered format table.
type timestampFormat struct {
	name  string
	parse func(s string) (t time.Time, zoned bool, ok bool)
}

// timestampFormats is evaluated top to bottom; the first match wins.
var timestampFormats = []timestampFormat{
	{name: "iso8601", parse: parseISO8601},
	{name: "YYYY-MM-DD HH:MM:SS", parse: naiveLayout("2006-01-02 15:04:05")},
	{name: "DD.MM.YYYY HH:MM", parse: naiveLayout("02.01.2006 15:04")},
	{name: "HH:MM", parse: naiveLayout("15:04")},
}

var (
	isoZonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999Z0700",
		"2006-01-02T15:04Z07:00",
	}
	isoNaiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

func parseISO8601(s string) (time.Time, bool, bool) {
	for _, layout := range isoZonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, true
		}
	}
	for _, layout := range isoNaiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, false, true
		}
	}
	return time.Time{}, false, false
}

func naiveLayout(layout string) func(string) (time.Time, bool, bool) {
	return func(s string) (time.Time, bool, bool) {
		t, err := time.Parse(layout, s)
		if err != nil {
			return time.Time{}, false, false
		}
		return t, false, true
	}
}

// Normalizer turns timestamp strings into Instants. It never fails: unparseable
// input yields an Approximated instant taken from the clock.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer returns a Normalizer reading the given clock; nil means time.Now.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

func (n *Normalizer) Normalize(s string) Instant {
	for _, f := range timestampFormats {
		if t, zoned, ok := f.parse(s); ok {
			return Instant{Time: t, Outcome: Parsed, Zoned: zoned, Format: f.name}
		}
	}
	return Instant{Time: wallClock(n.now()), Outcome: Approximated}
}

// NormalizeAll normalizes one timestamp per message, preserving order.
func (n *Normalizer) NormalizeAll(timestamps []string) []Instant {
	out := make([]Instant, len(timestamps))
	for i, ts := range timestamps {
		out[i] = n.Normalize(ts)
	}
	return out
}

// wallClock drops the zone from t, keeping its local reading, so it compares
// against other naive instants.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
