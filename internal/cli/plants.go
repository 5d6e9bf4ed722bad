package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/danmuck/cotyledon/internal/catalog"
	"github.com/spf13/cobra"
)

// PlantsCmd returns the plants command
func PlantsCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "plants",
		Short: "List plant types and their grow times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			if catalogPath != "" {
				loaded, err := catalog.LoadFile(catalogPath)
				if err != nil {
					return err
				}
				cat = loaded
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PLANT\tGROW TIME\tSECONDS")
			for _, e := range cat.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", e.Name, e.GrowTime, e.GrowTime/time.Second)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file (.toml, .yaml); defaults to the built-in table")

	return cmd
}
