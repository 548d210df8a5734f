package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"respondo.app/backend/internal/dialog"
)

type instantReport struct {
	Timestamp string `json:"timestamp"`
	Outcome   string `json:"outcome"`
	Format    string `json:"format,omitempty"`
	Zoned     bool   `json:"zoned"`
	Resolved  string `json:"resolved"`
}

type analysisReport struct {
	TemporalAnalysis string          `json:"temporal_analysis"`
	LastGapSeconds   *float64        `json:"last_gap_seconds,omitempty"`
	TotalSpanSeconds *float64        `json:"total_span_seconds,omitempty"`
	Instants         []instantReport `json:"instants"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "analyze [request.json]",
		Short: "Show how each timestamp was read and the resulting gap analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}

	RootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req, err := readRequest(cmd, argOrEmpty(args))
	if err != nil {
		return err
	}

	now, err := clock()
	if err != nil {
		return err
	}
	normalizer := dialog.NewNormalizer(now)

	report := analysisReport{Instants: make([]instantReport, len(req.Messages))}
	timestamps := make([]string, len(req.Messages))
	for i, m := range req.Messages {
		timestamps[i] = m.Timestamp
	}
	instants := normalizer.NormalizeAll(timestamps)
	for i, in := range instants {
		report.Instants[i] = instantReport{
			Timestamp: timestamps[i],
			Outcome:   in.Outcome.String(),
			Format:    in.Format,
			Zoned:     in.Zoned,
			Resolved:  in.Time.Format("2006-01-02 15:04:05.999999999 -07:00"),
		}
	}

	analysis := dialog.AnalyzeGaps(instants)
	report.TemporalAnalysis = analysis.String()
	if analysis.Status == dialog.GapMeasured {
		report.LastGapSeconds = &analysis.LastGapSeconds
		report.TotalSpanSeconds = &analysis.TotalSpanSeconds
	}

	out := cmd.OutOrStdout()
	if formatFlag == "json" {
		return writeJSON(out, report)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTIMESTAMP\tOUTCOME\tFORMAT\tRESOLVED")
	for i, r := range report.Instants {
		fmt.Fprintf(tw, "%d\t%q\t%s\t%s\t%s\n", i+1, r.Timestamp, r.Outcome, r.Format, r.Resolved)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "\nTemporal analysis: %s\n", report.TemporalAnalysis)
	return err
}
