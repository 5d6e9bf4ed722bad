package cli

import "github.com/spf13/cobra"

// RootCmd assembles the cotyledon command tree.
func RootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cotyledon",
		Short:         "A garden that only nature may tend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `cotyledon serves signed gardens. Clients sow plants by sending back the
garden they were last given; any edit to it is detected and refused.`,
	}

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(SecretCmd())
	rootCmd.AddCommand(PlantsCmd())

	// Offline tooling
	rootCmd.AddCommand(SignCmd())
	rootCmd.AddCommand(VerifyCmd())

	return rootCmd
}
