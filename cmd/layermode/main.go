// Command layermode inspects the layer mode table and blends sample colours.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/gogpu/layermode"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "layermode",
		Short:         "Inspect layer modes and blend colours",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(stderr, logLevel)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newModesCmd(),
		newGroupsCmd(),
		newInfoCmd(),
		newTranslateCmd(),
		newBlendCmd(),
	)
	return root
}

// setupLogging routes library logs through an hclog logger.
func setupLogging(w io.Writer, level string) hclog.Logger {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "layermode",
		Level:  hclog.LevelFromString(level),
		Output: w,
	})
	bridge := logger.StandardWriter(&hclog.StandardLoggerOptions{InferLevels: true})
	layermode.SetLogger(slog.New(slog.NewTextHandler(bridge, &slog.HandlerOptions{
		Level: slogLevel(logger.GetLevel()),
	})))
	logger.Debug("logging configured", "level", level)
	return logger
}

func slogLevel(l hclog.Level) slog.Level {
	switch l {
	case hclog.Trace, hclog.Debug:
		return slog.LevelDebug
	case hclog.Info:
		return slog.LevelInfo
	case hclog.Warn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
