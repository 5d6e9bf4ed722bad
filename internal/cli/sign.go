package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/cotyledon/internal/garden"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SignCmd returns the sign command
func SignCmd() *cobra.Command {
	var file string
	var strict bool

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a plot with COTYLEDON_SECRET",
		Long: `Read a plot ({"plants":[...]}) from --file or stdin and print the
signed garden the server would accept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var plot garden.Plot
			if err := readJSON(cmd, file, &plot); err != nil {
				return err
			}
			signer, err := newSigner(strict)
			if err != nil {
				return err
			}
			state, err := signer.Sign(plot)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), state)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Plot JSON file; reads stdin when empty")
	cmd.Flags().BoolVar(&strict, "strict-empty-plot", false, "Check approvals on empty plots")

	return cmd
}

// VerifyCmd returns the verify command
func VerifyCmd() *cobra.Command {
	var file string
	var strict bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a signed garden against COTYLEDON_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var state garden.SignedState
			if err := readJSON(cmd, file, &state); err != nil {
				return err
			}
			signer, err := newSigner(strict)
			if err != nil {
				return err
			}
			verified, err := signer.Verify(state)
			if err != nil {
				fault, _ := garden.FaultOf(err)
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", color.New(color.FgRed).Sprint("REJECTED"), fault)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d plants\n", color.New(color.FgGreen).Sprint("OK"), verified.Plot().Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Garden JSON file; reads stdin when empty")
	cmd.Flags().BoolVar(&strict, "strict-empty-plot", false, "Check approvals on empty plots")

	return cmd
}

func newSigner(strict bool) (*garden.Signer, error) {
	secret, err := requireSecret()
	if err != nil {
		return nil, err
	}
	return garden.NewSigner(secret.Bytes(), garden.WithStrictEmptyPlot(strict))
}

func readJSON(cmd *cobra.Command, file string, out any) error {
	var r io.Reader = cmd.InOrStdin()
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decode input: trailing data")
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
