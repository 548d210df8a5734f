package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"respondo.app/backend/internal/http/dto"
)

func init() {
	cmd := &cobra.Command{
		Use:   "render [request.json]",
		Short: "Print the compiled prompt for a dialog request",
		Long:  "Prints the full prompt in text format, or the /api/test payload in json format.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}

	RootCmd.AddCommand(cmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	req, err := readRequest(cmd, argOrEmpty(args))
	if err != nil {
		return err
	}

	inst, err := loadInstruction(cmd.Context())
	if err != nil {
		return err
	}

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	compiled, err := pipeline.Compile(inst.Text, req)
	if err != nil {
		return fmt.Errorf("compiling prompt: %w", err)
	}

	if formatFlag == "json" {
		return writeJSON(cmd.OutOrStdout(), dto.TestDialogResponse{
			FormattedDialog:  compiled.Transcript,
			TemporalAnalysis: compiled.Analysis.String(),
			MessageCount:     len(req.Messages),
			PromptLength:     inst.Length(),
		})
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), compiled.Prompt)
	return err
}
