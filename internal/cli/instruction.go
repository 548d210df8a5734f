package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "instruction",
		Short: "Print the system instruction as the server would load it",
		Args:  cobra.NoArgs,
		RunE:  runInstruction,
	}

	RootCmd.AddCommand(cmd)
}

func runInstruction(cmd *cobra.Command, _ []string) error {
	inst, err := loadInstruction(cmd.Context())
	if err != nil {
		return err
	}

	if formatFlag == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"origin": inst.Origin,
			"length": inst.Length(),
			"text":   inst.Text,
		})
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "# %s (%d characters)\n%s\n", inst.Origin, inst.Length(), inst.Text)
	return err
}
