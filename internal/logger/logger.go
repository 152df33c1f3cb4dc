package logger

import (
	"go.uber.org/zap"
)

// Log is the package-wide logger. It is a no-op until Initialize is called.
var Log = zap.NewNop()

// Initialize replaces Log with a real logger at the given level. When file
// is non-empty the output goes there instead of stderr; the TUI owns the
// terminal, so writing logs to it would garble the screen.
func Initialize(level string, file string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	if file != "" {
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
	}

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}
