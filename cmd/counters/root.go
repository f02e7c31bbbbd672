package main

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/llxisdsh/counters"
	"github.com/llxisdsh/counters/internal/log"
)

// app carries what every subcommand needs once the root has initialized.
type app struct {
	v       *viper.Viper
	cfgFile string
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:          "counters",
		Short:        "Hand out per-key sequence numbers",
		Long:         `Fetch-and-increment per-key counters and stress the registry with concurrent callers.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (yaml)")
	rootCmd.PersistentFlags().String("log-level", "info",
		"debug|info|warn|error")
	rootCmd.PersistentFlags().String("log-encoding", "json",
		"json|console")
	rootCmd.PersistentFlags().StringP("namespace", "n", "",
		"namespace of the keys (default: $"+counters.NamespaceEnv+")")

	_ = a.v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("log_encoding", rootCmd.PersistentFlags().Lookup("log-encoding"))
	_ = a.v.BindPFlag("namespace", rootCmd.PersistentFlags().Lookup("namespace"))

	rootCmd.AddCommand(newFetchCmd(a), newStressCmd(a))
	return rootCmd
}

func (a *app) init() error {
	// A missing .env is fine.
	_ = godotenv.Load()

	a.v.SetEnvPrefix("COUNTERS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", a.cfgFile, err)
		}
	}

	zl, err := log.NewLogger(
		log.WithLogLevel(a.v.GetString("log_level")),
		log.WithEncoding(a.v.GetString("log_encoding")),
	)
	if err != nil {
		return fmt.Errorf("log.NewLogger: %w", err)
	}
	a.logger = zl.With(zap.String("app", "counters"))
	return nil
}

// namespacer prefers the configured namespace and falls back to the
// environment lookup the library does by default.
func (a *app) namespacer() counters.Namespacer {
	if ns := a.v.GetString("namespace"); ns != "" {
		return counters.StaticNamespace(ns)
	}
	return counters.EnvNamespace{}
}
