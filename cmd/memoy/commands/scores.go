package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memoy/tui-go/internal/tui"
)

func scoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Print the high-score table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ledgerWarn != "" {
				return fmt.Errorf("%s", ledgerWarn)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderScores(book.Rows()))
			return nil
		},
	}
}
