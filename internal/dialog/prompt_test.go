package dialog_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"respondo.app/backend/internal/dialog"
)

var _ = Describe("CompilePrompt", func() {
	const transcript = "Temporal analysis: x\nMessages in dialog: 1\n\n└─ [t] A: hi"

	It("places instruction, transcript and directive in order", func() {
		p, err := dialog.CompilePrompt("Be helpful.", "", transcript)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal("Be helpful.\n\nDialog history:\n\n" + transcript + "\n\n" + dialog.ReplyDirective))
	})

	DescribeTable("includes the context clause iff context is non-empty",
		func(context string, included bool) {
			p, err := dialog.CompilePrompt("Be helpful.", context, transcript)
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Contains(p, "Additional context:")).To(Equal(included))
			Expect(p).To(HaveSuffix(dialog.ReplyDirective))
			if included {
				Expect(p).To(HavePrefix("Be helpful.\n\nAdditional context: " + context + "\n\n"))
			}
		},
		Entry("empty", "", false),
		Entry("plain", "Work chat about the release", true),
		Entry("whitespace only", "  ", true),
	)

	It("fails on an empty instruction", func() {
		_, err := dialog.CompilePrompt("", "ctx", transcript)
		Expect(err).To(MatchError(dialog.ErrEmptyInstruction))
	})

	It("treats the instruction as opaque text", func() {
		instruction := "{not json} %s %d"
		p, err := dialog.CompilePrompt(instruction, "", transcript)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(HavePrefix(instruction + "\n\n"))
	})
})
