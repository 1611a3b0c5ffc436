// Package logging configures the process-wide zap logger. Other packages use
// zap.L() / zap.S() after Init has run.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds the global logger and installs it via zap.ReplaceGlobals.
// Verbose enables debug-level output; otherwise info and above is logged.
func Init(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)
	return nil
}

// Sync flushes buffered log entries. Flush errors on process exit are not
// actionable and are ignored by callers.
func Sync() error {
	return zap.L().Sync()
}
