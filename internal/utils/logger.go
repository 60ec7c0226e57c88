package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

type BuildLogger struct {
	file   *os.File
	logger *slog.Logger
	runID  string
}

// NewBuildLogger logs to stdout and, when logsDir is set, to a timestamped
// file under logsDir/<name>.
func NewBuildLogger(name, logsDir, level string) (*BuildLogger, error) {
	var file *os.File
	var out io.Writer = os.Stdout

	if logsDir != "" {
		sanitized := strings.ReplaceAll(strings.ToLower(name), " ", "_")

		dir := filepath.Join(logsDir, sanitized)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		logPath := filepath.Join(dir, fmt.Sprintf("%s_%s.log", sanitized, timestamp))

		f, err := os.Create(logPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		file = f
		out = io.MultiWriter(os.Stdout, file)
	}

	color := file == nil && isatty.IsTerminal(os.Stdout.Fd())
	return newBuildLogger(out, file, level, !color), nil
}

// NewWriterLogger logs to w only, without colour.
func NewWriterLogger(w io.Writer, level string) *BuildLogger {
	return newBuildLogger(w, nil, level, true)
}

func newBuildLogger(w io.Writer, file *os.File, level string, noColor bool) *BuildLogger {
	runID := uuid.NewString()
	handler := tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.DateTime,
		NoColor:    noColor,
	})
	return &BuildLogger{
		file:   file,
		logger: slog.New(handler).With("run", runID),
		runID:  runID,
	}
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (bl *BuildLogger) RunID() string {
	return bl.runID
}

func (bl *BuildLogger) LogInfo(format string, v ...interface{}) {
	bl.logger.Info(fmt.Sprintf(format, v...))
}

func (bl *BuildLogger) LogWarn(format string, v ...interface{}) {
	bl.logger.Warn(fmt.Sprintf(format, v...))
}

func (bl *BuildLogger) LogError(format string, v ...interface{}) {
	bl.logger.Error(fmt.Sprintf(format, v...))
}

func (bl *BuildLogger) LogDebug(format string, v ...interface{}) {
	bl.logger.Debug(fmt.Sprintf(format, v...))
}

func (bl *BuildLogger) Close() error {
	if bl.file == nil {
		return nil
	}
	return bl.file.Close()
}
