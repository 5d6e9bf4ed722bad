package cli

import (
	"fmt"

	"github.com/danmuck/cotyledon/internal/config"
	"github.com/spf13/cobra"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var kind string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter server config or catalog file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultInitPath(kind)
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteTemplate(path, kind, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s template to %s\n", kind, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "server", "Template kind: server or catalog")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func defaultInitPath(kind string) string {
	if kind == "catalog" {
		return "catalog.toml"
	}
	return "cotyledon.toml"
}
