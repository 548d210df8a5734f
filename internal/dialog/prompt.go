package dialog

import (
	"errors"
	"strings"
)

// ReplyDirective always closes the compiled prompt.
const ReplyDirective = "Suggest a fitting reply to the most recent message, taking the temporal analysis into account."

const contextClausePrefix = "\n\nAdditional context: "

var ErrEmptyInstruction = errors.New("system instruction is empty")

// CompilePrompt assembles the final model prompt. The instruction is opaque here;
// it is only checked for emptiness. The context clause is added only for a
// non-empty context.
func CompilePrompt(instruction, context, transcript string) (string, error) {
	if instruction == "" {
		return "", ErrEmptyInstruction
	}

	var sb strings.Builder
	sb.WriteString(instruction)
	if context != "" {
		sb.WriteString(contextClausePrefix)
		sb.WriteString(context)
	}
	sb.WriteString("\n\nDialog history:\n\n")
	sb.WriteString(transcript)
	sb.WriteString("\n\n")
	sb.WriteString(ReplyDirective)

	return sb.String(), nil
}
