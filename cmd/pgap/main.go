package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/rgehrsitz/pgap/internal/calculation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	debugMode bool
	logger    *zap.SugaredLogger
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pgap %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newLogger builds the CLI logger: production JSON logs on stderr, warnings
// and above unless --debug is set.
func newLogger(debug bool) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l.Sugar(), nil
}

// newEngine returns a calculation engine wired to the CLI logger
func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if logger != nil {
		engine.SetLogger(logger)
	}
	engine.Debug = debugMode
	return engine
}

// parseAsOf parses an optional --as-of flag value
func parseAsOf(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --as-of date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return &t, nil
}

var rootCmd = &cobra.Command{
	Use:   "pgap",
	Short: "Pension gap calculator CLI",
	Long: `Estimates the gap between the retirement income a member is on course for
and the income they want, the capital needed to close it, and what it costs
each month to get there.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(debugMode)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(affordCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
