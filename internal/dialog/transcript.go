package dialog

import (
	"fmt"
	"strings"

	"respondo.app/backend/internal/model"
)

const (
	BranchConnector   = "├─"
	TerminalConnector = "└─"
)

// RenderTranscript lays out the analysis header, a blank line, and one line per
// message in input order. Message fields are written verbatim.
func RenderTranscript(messages []model.Message, analysis GapAnalysis) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Temporal analysis: %s\n", analysis))
	sb.WriteString(fmt.Sprintf("Messages in dialog: %d\n", len(messages)))
	sb.WriteString("\n")

	for i, m := range messages {
		connector := BranchConnector
		if i == len(messages)-1 {
			connector = TerminalConnector
		}
		sb.WriteString(fmt.Sprintf("%s [%s] %s: %s", connector, m.Timestamp, m.Author, m.Content))
		if i < len(messages)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
