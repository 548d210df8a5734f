package dialog_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"respondo.app/backend/internal/dialog"
	"respondo.app/backend/internal/model"
)

var _ = Describe("Pipeline", func() {
	var p *dialog.Pipeline

	BeforeEach(func() {
		p = dialog.NewPipeline(func() time.Time { return time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC) })
	})

	It("labels a 45 second exchange as active", func() {
		c, err := p.Compile("Instruction", model.DialogRequest{
			Messages: []model.Message{
				{Author: "A", Timestamp: "2025-01-01T10:00:00", Content: "hi"},
				{Author: "B", Timestamp: "2025-01-01T10:00:45", Content: "hello"},
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Analysis.LastGapCategory).To(Equal("active exchange (reply within a minute)"))
		Expect(c.Transcript).To(ContainSubstring("active exchange (reply within a minute)"))
		Expect(c.Prompt).NotTo(ContainSubstring("Additional context:"))
		Expect(c.Approximated).To(BeZero())
	})

	It("handles a single message", func() {
		c, err := p.Compile("Instruction", model.DialogRequest{
			Messages: []model.Message{{Author: "A", Timestamp: "2025-01-01T10:00:00", Content: "hi"}},
			Context:  "friends",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Analysis.String()).To(Equal(dialog.JustStarted))
		Expect(c.Prompt).To(ContainSubstring("Additional context: friends"))
	})

	It("counts approximated timestamps", func() {
		c, err := p.Compile("Instruction", model.DialogRequest{
			Messages: []model.Message{
				{Author: "A", Timestamp: "yesterday", Content: "hi"},
				{Author: "B", Timestamp: "2025-09-30T11:59:30", Content: "hey"},
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Approximated).To(Equal(1))
		Expect(c.Instants[0].Outcome).To(Equal(dialog.Approximated))
	})

	It("returns the instruction error", func() {
		_, err := p.Compile("", model.DialogRequest{})
		Expect(err).To(MatchError(dialog.ErrEmptyInstruction))
	})
})
