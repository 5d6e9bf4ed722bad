// Package cli holds the cotyledon subcommands.
package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/cotyledon/internal/auth"
	"github.com/danmuck/cotyledon/internal/config"
	"github.com/danmuck/cotyledon/internal/garden"
	"github.com/danmuck/cotyledon/internal/observability"
	"github.com/danmuck/cotyledon/internal/server"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// lookupEnv is swapped in tests.
var lookupEnv auth.LookupFunc = os.LookupEnv

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var configPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the garden HTTP server",
		Long: `Run the garden HTTP server.

The signing secret is read from COTYLEDON_SECRET. When it is unset a temporary
secret is generated and every garden handed out stops verifying on restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			observability.InitLogger("cotyledon")

			cfg, err := loadServerConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
				if err := config.ValidateServerConfig(cfg); err != nil {
					return err
				}
			}

			gardener, err := buildGardener(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Appear(cfg, gardener).Serve(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to server TOML config")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides the config file")

	return cmd
}

func loadServerConfig(path string) (config.ServerConfig, error) {
	if path == "" {
		cfg := config.DefaultServerConfig()
		return cfg, config.ValidateServerConfig(cfg)
	}
	return config.LoadServerConfig(path)
}

func buildGardener(cfg config.ServerConfig, stderr io.Writer) (*garden.Gardener, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}

	secret, raw, generated, err := auth.LoadSecret(lookupEnv)
	if err != nil {
		return nil, err
	}
	if generated {
		warn := color.New(color.FgYellow)
		warn.Fprintf(stderr, "%s is not set; using a temporary secret.\n", auth.EnvSecret)
		warn.Fprintln(stderr, "Gardens signed now will be rejected after a restart. To keep this one:")
		fmt.Fprintf(stderr, "  echo %s=%s >> .env\n", auth.EnvSecret, raw)
	}

	signer, err := garden.NewSigner(secret.Bytes(), cfg.SignerOptions()...)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("plants", cat.Len()).
		Bool("strict_empty_plot", cfg.StrictEmptyPlot).
		Bool("generated_secret", generated).
		Msg("gardener ready")
	return garden.NewGardener(cat, signer), nil
}

// requireSecret loads a secret for offline signing. A generated one would be
// useless here, so an unset variable is an error.
func requireSecret() (auth.Secret, error) {
	secret, _, generated, err := auth.LoadSecret(lookupEnv)
	if err != nil {
		return auth.Secret{}, err
	}
	if generated {
		return auth.Secret{}, fmt.Errorf("%s must be set", auth.EnvSecret)
	}
	return secret, nil
}
