// Command ariadne runs the MCTS-driven program-synthesis engine against a
// single problem or a full APPS-style dataset. main.go owns rootCmd and the
// global flags; solve.go and dataset.go hold the subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/minnanWei/ARIADNE/internal/logging"
)

var (
	verbose    bool
	workspace  string
	configPath string

	// logger is replaced with a real zap logger in PersistentPreRunE; the
	// nop default keeps direct RunE invocations (tests) safe.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ariadne",
	Short: "ARIADNE - MCTS-driven program synthesis engine",
	Long: `ARIADNE coordinates LLM-backed specialist agents over a shared
Blackboard, searching for a program that passes a problem's hidden tests via
Monte Carlo Tree Search.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		ws := workspace
		if ws == "" {
			ws, _ = os.Getwd()
		} else if abs, err := filepath.Abs(ws); err == nil {
			ws = abs
		}
		if err := logging.Configure(ws, verbose); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to initialize file logging: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML search-config file")

	rootCmd.AddCommand(solveCmd, datasetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
