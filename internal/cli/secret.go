package cli

import (
	"fmt"

	"github.com/danmuck/cotyledon/internal/auth"
	"github.com/spf13/cobra"
)

// SecretCmd returns the secret command
func SecretCmd() *cobra.Command {
	var envLine bool

	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Generate a random signing secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := auth.GenerateSecret()
			if err != nil {
				return err
			}
			if envLine {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", auth.EnvSecret, raw)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}

	cmd.Flags().BoolVar(&envLine, "env", false, "Print as a KEY=value line for .env files")

	return cmd
}
