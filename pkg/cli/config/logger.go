package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

type Logger struct {
	level  string
	format string
	output string
}

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Destination: &x.level,
			Sources:     cli.EnvVars("CHEK_KMA_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Category:    "Logging",
			Value:       "console",
			Destination: &x.format,
			Sources:     cli.EnvVars("CHEK_KMA_LOG_FORMAT"),
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output (stdout, stderr, or a file path)",
			Category:    "Logging",
			Value:       "stderr",
			Destination: &x.output,
			Sources:     cli.EnvVars("CHEK_KMA_LOG_OUTPUT"),
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
	)
}

// Configure installs the default logger. The returned closer releases the output file.
func (x *Logger) Configure() (func(), error) {
	level, err := parseLevel(x.level)
	if err != nil {
		return nil, err
	}

	var format logging.Format
	switch strings.ToLower(x.format) {
	case "", "console":
		format = logging.FormatConsole
	case "json":
		format = logging.FormatJSON
	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid log format",
			goerr.V(FlagKey, "log-format"), goerr.V(ValueKey, x.format))
	}

	var w io.Writer
	closer := func() {}
	color := false
	switch x.output {
	case "", "stderr":
		w = os.Stderr
		color = isTerminal(os.Stderr)
	case "stdout", "-":
		w = os.Stdout
		color = isTerminal(os.Stdout)
	default:
		// #nosec G304 - path is provided by CLI argument
		f, err := os.OpenFile(x.output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V(PathKey, x.output))
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	logging.SetDefault(logging.New(w, level, format, color))
	return closer, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, goerr.Wrap(ErrInvalidLogLevel, "failed to parse log level",
			goerr.V(FlagKey, "log-level"), goerr.V(ValueKey, s))
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
