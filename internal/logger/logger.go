// Package logger owns the process-wide zap logger. The viewer runs in the alternate
// screen, so logs go to a file and are discarded unless enabled.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the global logger. It discards everything until Init enables it.
var L = zap.NewNop()

const (
	logPrefix     = "geomap-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures Init.
type Options struct {
	Enabled bool          // if false, all logging is discarded
	LogDir  string        // default: ~/.geomap/logs
	Level   zapcore.Level // minimum level
}

// Init configures logging. Call from main before any log call.
func Init(opts Options) error {
	if !opts.Enabled {
		L = zap.NewNop()
		return nil
	}
	dir := opts.LogDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".geomap", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// best effort
	cleanOldLogs(dir, time.Now())

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(opts.Level)
	cfg.Sampling = nil
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{LogFile(dir, time.Now())}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	L = l
	return nil
}

// LogFile returns the per-day log file path inside dir.
func LogFile(dir string, now time.Time) string {
	return filepath.Join(dir, logPrefix+now.Format("2006-01-02")+logSuffix)
}

// Sync flushes buffered entries.
func Sync() {
	_ = L.Sync()
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(dir string, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		day, err := time.Parse("2006-01-02", strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix))
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}
