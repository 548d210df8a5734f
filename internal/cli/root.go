// Package cli implements the respondo-preview commands. They run the dialog
// formatting stages locally and never call a model.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"respondo.app/backend/internal/dialog"
	"respondo.app/backend/internal/http/dto"
	"respondo.app/backend/internal/model"
	"respondo.app/backend/internal/prompt"
)

var (
	promptFile string
	formatFlag string
	nowFlag    string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "respondo-preview",
	Short:         "Render reply-suggestion prompts offline",
	Long:          "Reads a dialog request (JSON, as POSTed to /api/suggest-reply) and shows what the model would receive.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&promptFile, "prompt-file", "p", "", "Instruction file (default: $PROMPT_FILE or prompts/system_prompt.txt)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&nowFlag, "now", "", "Clock reading for unparseable timestamps, RFC 3339 (default: current time)")
}

func getPromptFile() string {
	if promptFile != "" {
		return promptFile
	}
	if env := os.Getenv("PROMPT_FILE"); env != "" {
		return env
	}
	return "prompts/system_prompt.txt"
}

func loadInstruction(ctx context.Context) (*prompt.Instruction, error) {
	store := prompt.NewStore(prompt.NewFileSource(getPromptFile()))
	return store.Reload(ctx)
}

func clock() (func() time.Time, error) {
	if nowFlag == "" {
		return time.Now, nil
	}
	t, err := time.Parse(time.RFC3339, nowFlag)
	if err != nil {
		return nil, fmt.Errorf("parsing --now: %w", err)
	}
	return func() time.Time { return t }, nil
}

func newPipeline() (*dialog.Pipeline, error) {
	now, err := clock()
	if err != nil {
		return nil, err
	}
	return dialog.NewPipeline(now), nil
}

// readRequest decodes a dialog request from path, or stdin when path is "" or "-".
// Field presence is checked the same way the HTTP endpoint checks it.
func readRequest(cmd *cobra.Command, path string) (model.DialogRequest, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return model.DialogRequest{}, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var req dto.DialogRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return model.DialogRequest{}, fmt.Errorf("decoding dialog request: %w", err)
	}
	if req.Messages == nil {
		return model.DialogRequest{}, fmt.Errorf("dialog request: messages is required")
	}
	for i, m := range req.Messages {
		if m.Author == nil || m.Timestamp == nil || m.Content == nil {
			return model.DialogRequest{}, fmt.Errorf("dialog request: message %d needs author, timestamp and content", i)
		}
	}
	return req.ToModel(), nil
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
