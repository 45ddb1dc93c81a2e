package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-resdata/internal/config"
	"github.com/robert-malhotra/go-resdata/internal/ctxlog"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Inspect reservoir keyword files and grids",
	Long: `diagnose reads binary and formatted keyword files (EGRID, INIT,
UNRST, SMSPEC ...), converts between the two layouts and analyses the
corner-point grid they describe, including fault block labelling.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		path, _ := cmd.Flags().GetString("config")
		if path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.LogLevel = level
		}
		level, err := cfg.Level()
		if err != nil {
			return err
		}

		logger := ctxlog.New(os.Stderr, cfg.LogFormat, level)
		ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
		cmd.SetContext(ctxlog.WithLogger(ctx, logger))
		logger.Debug("configuration loaded", "config", path, "tolerance", cfg.Tolerance, "workers", cfg.Workers)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "HCL configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

type configKey struct{}

// configFrom returns the configuration the root command loaded for this
// invocation, or the defaults.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
