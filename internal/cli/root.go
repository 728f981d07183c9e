package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/scorecard/internal/config"
	"github.com/dshills/scorecard/internal/review"
	"github.com/dshills/scorecard/internal/store"
)

const version = "0.3.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitRejected     = 1
	ExitUsageError   = 2
	ExitStorageError = 3
	ExitRuntimeError = 4
)

// Global flags
var (
	flagData    string
	flagVerbose bool
)

// stdout and stderr are swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "Product review scorecard",
	Long: "Scorecard records products rated on ten 1-10 sub-scores, totals them, " +
		"and lists, filters, charts and exports the results from a flat CSV file.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	return execute(os.Args[1:])
}

func execute(args []string) int {
	exitCode = ExitSuccess
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print scorecard version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(stdout, "scorecard version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "Data file path (default from config: data.csv)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what every data command needs.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	store  *store.Store
}

// setup loads the effective config with the global flags and extra applied
// as overrides.
func setup(extra map[string]string) (*env, error) {
	overrides := map[string]string{"dataFile": flagData}
	maps.Copy(overrides, extra)

	cfg, err := config.Load(overrides)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.LogLevel, flagVerbose)
	logger.Debug("configuration loaded", "dataFile", cfg.DataFile, "format", cfg.Format)
	return &env{cfg: cfg, logger: logger, store: store.New(cfg.DataFile, logger)}, nil
}

func newLogger(level string, verbose bool) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	if verbose {
		l = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: l}))
}

// fail reports err and sets the exit code for its kind.
func fail(err error) {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	exitCode = exitCodeFor(err)
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, review.ErrValidation),
		errors.Is(err, review.ErrIndexOutOfRange),
		errors.Is(err, review.ErrStaleView):
		return ExitRejected
	case errors.Is(err, review.ErrStorageUnavailable):
		return ExitStorageError
	default:
		return ExitRuntimeError
	}
}
