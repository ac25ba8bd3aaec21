package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// rootArgs holds the flags shared by every command.
type rootArgs struct {
	configPath string
	logLevel   string
}

// app is the state every command runs with once the config is loaded.
type app struct {
	args   rootArgs
	config *Config
	logger *slog.Logger
}

// NewRootCommand builds the markovwords command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "markovwords",
		Short: "Generate new words from a wordlist with a character Markov chain",
		Long: `
Generate new, plausible-looking words from a list of example words.

Every word of the wordlist is split into character ngrams; new words are
produced by a random walk over the ngrams until an end marker is reached.
	`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config, err := LoadConfig(a.args.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if a.args.logLevel != "" {
				config.Server.LogLevel = a.args.logLevel
			}
			a.config = config
			a.logger = newLogger(cmd.ErrOrStderr(), config.Server.LogLevel)
			return nil
		},
	}

	rootCmd.PersistentFlags().
		StringVarP(&a.args.configPath, "config", "c", "./config.json", "Path to the JSON config file")
	rootCmd.PersistentFlags().
		StringVar(&a.args.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")

	rootCmd.AddCommand(NewGenerateCommand(a))
	rootCmd.AddCommand(NewStatsCommand(a))
	rootCmd.AddCommand(NewWordlistCommand(a))
	rootCmd.AddCommand(NewServeCommand(a))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewVersionCommand returns a command printing build information.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip loading (and creating) the config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "markovwords %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}

// openStore opens the wordlist database, making sure its directory and schema exist.
func (a *app) openStore() (*wordlistHandle, error) {
	if dir := a.config.Server.DataDir; dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}
	return newWordlistHandle(a.config.Server.DatabasePath, a.logger)
}
