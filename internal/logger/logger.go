package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Severities accepted by SetLogSeverity and Config.Severity.
const (
	TRACE   = "TRACE"
	DEBUG   = "DEBUG"
	INFO    = "INFO"
	WARNING = "WARNING"
	ERROR   = "ERROR"
	OFF     = "OFF"
)

const (
	LevelTrace = slog.Level(-8)
	// levelOff is above every level we emit, so nothing gets logged.
	levelOff = slog.Level(12)
)

// Config controls where and how log records are written.
type Config struct {
	Severity string
	// Format is "text" or "json".
	Format string
	// FilePath, when set, sends logs to a rotating file instead of stderr.
	FilePath        string
	MaxFileSizeMB   int
	BackupFileCount int
}

var (
	programLevel  = new(slog.LevelVar)
	defaultLogger *slog.Logger
	closer        io.Closer
)

func init() {
	defaultLogger = slog.New(newHandler(os.Stderr, "text"))
}

// Init replaces the default logger according to c. It is not safe to call
// concurrently with logging.
func Init(c Config) error {
	if err := SetLogSeverity(c.Severity); err != nil {
		return err
	}
	Close()
	var w io.Writer = os.Stderr
	if c.FilePath != "" {
		lj := &lumberjack.Logger{
			Filename:   c.FilePath,
			MaxSize:    c.MaxFileSizeMB,
			MaxBackups: c.BackupFileCount,
		}
		w = lj
		closer = lj
	}
	defaultLogger = slog.New(newHandler(w, c.Format))
	return nil
}

// Close releases the log file, if any.
func Close() {
	if closer != nil {
		closer.Close()
		closer = nil
	}
}

// SetLogSeverity changes the minimum level that gets logged. An empty
// severity means INFO.
func SetLogSeverity(severity string) error {
	switch strings.ToUpper(severity) {
	case TRACE:
		programLevel.Set(LevelTrace)
	case DEBUG:
		programLevel.Set(slog.LevelDebug)
	case INFO, "":
		programLevel.Set(slog.LevelInfo)
	case WARNING:
		programLevel.Set(slog.LevelWarn)
	case ERROR:
		programLevel.Set(slog.LevelError)
	case OFF:
		programLevel.Set(levelOff)
	default:
		return fmt.Errorf("unknown log severity %q", severity)
	}
	return nil
}

func newHandler(w io.Writer, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: programLevel,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue(TRACE)
				}
			}
			return a
		},
	}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// With returns a logger carrying the given attributes, for callers that
// want structured fields on every record (e.g. a run id).
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

func logf(level slog.Level, format string, v ...any) {
	ctx := context.Background()
	if !defaultLogger.Enabled(ctx, level) {
		return
	}
	defaultLogger.Log(ctx, level, fmt.Sprintf(format, v...))
}

// Tracef prints the message with TRACE severity.
func Tracef(format string, v ...any) {
	logf(LevelTrace, format, v...)
}

// Debugf prints the message with DEBUG severity.
func Debugf(format string, v ...any) {
	logf(slog.LevelDebug, format, v...)
}

// Infof prints the message with INFO severity.
func Infof(format string, v ...any) {
	logf(slog.LevelInfo, format, v...)
}

// Warnf prints the message with WARNING severity.
func Warnf(format string, v ...any) {
	logf(slog.LevelWarn, format, v...)
}

// Errorf prints the message with ERROR severity.
func Errorf(format string, v ...any) {
	logf(slog.LevelError, format, v...)
}
