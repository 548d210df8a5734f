package dialog_test

import (
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"respondo.app/backend/internal/dialog"
	"respondo.app/backend/internal/model"
)

func listing(transcript string) []string {
	_, body, found := strings.Cut(transcript, "\n\n")
	Expect(found).To(BeTrue())
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}

var _ = Describe("RenderTranscript", func() {
	measured := dialog.GapAnalysis{
		Status:            dialog.GapMeasured,
		LastGapCategory:   "active exchange (reply within a minute)",
		TotalSpanCategory: "fast-moving conversation",
	}

	It("renders header, blank line and listing in order", func() {
		out := dialog.RenderTranscript([]model.Message{
			{Author: "A", Timestamp: "2025-01-01T10:00:00", Content: "hi"},
			{Author: "B", Timestamp: "2025-01-01T10:00:45", Content: "hello"},
		}, measured)

		Expect(out).To(Equal(
			"Temporal analysis: active exchange (reply within a minute); fast-moving conversation\n" +
				"Messages in dialog: 2\n" +
				"\n" +
				"├─ [2025-01-01T10:00:00] A: hi\n" +
				"└─ [2025-01-01T10:00:45] B: hello"))
	})

	It("uses the terminal connector on exactly the last message", func() {
		for n := 1; n <= 6; n++ {
			msgs := make([]model.Message, n)
			for i := range msgs {
				msgs[i] = model.Message{Author: fmt.Sprintf("u%d", i), Timestamp: "10:00", Content: "x"}
			}

			lines := listing(dialog.RenderTranscript(msgs, measured))
			Expect(lines).To(HaveLen(n))
			for i, line := range lines {
				if i == n-1 {
					Expect(line).To(HavePrefix(dialog.TerminalConnector + " "))
				} else {
					Expect(line).To(HavePrefix(dialog.BranchConnector + " "))
				}
			}
		}
	})

	It("writes content verbatim", func() {
		content := `<b>"quoted"</b> & 100% {braces}`
		out := dialog.RenderTranscript([]model.Message{{Author: "Мария", Timestamp: "whenever", Content: content}}, dialog.GapAnalysis{Status: dialog.GapInsufficient})
		Expect(out).To(ContainSubstring("└─ [whenever] Мария: " + content))
		Expect(out).To(ContainSubstring("Temporal analysis: conversation just started"))
	})

	It("renders an empty listing for no messages", func() {
		out := dialog.RenderTranscript(nil, dialog.GapAnalysis{Status: dialog.GapInsufficient})
		Expect(out).To(ContainSubstring("Messages in dialog: 0"))
		Expect(listing(out)).To(BeEmpty())
	})
})
