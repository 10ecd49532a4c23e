// Package logger provides the process-wide zap logger and helpers for masking
// personal data before it reaches the logs.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment selects the encoder preset.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTest        = "test"
)

// Options configures the global logger.
type Options struct {
	Level       string
	Environment string
}

var (
	logger *zap.Logger
	once   sync.Once
)

// Init builds the global logger from opts. Only the first call has an
// effect; later calls return the already built logger.
func Init(opts Options) *zap.Logger {
	once.Do(func() {
		built, err := Build(opts)
		if err != nil {
			panic(fmt.Sprintf("failed to initialize logger: %v", err))
		}
		logger = built
	})
	return logger
}

// Get returns the global logger, initializing it from LOG_LEVEL and
// ENVIRONMENT when Init has not been called.
func Get() *zap.Logger {
	return Init(Options{
		Level:       os.Getenv("LOG_LEVEL"),
		Environment: os.Getenv("ENVIRONMENT"),
	})
}

// Sugar returns the sugared form of the global logger.
func Sugar() *zap.SugaredLogger {
	return Get().Sugar()
}

// Build constructs a standalone logger without touching the global one.
func Build(opts Options) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(opts.Level))); err != nil || opts.Level == "" {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(opts.Environment)) {
	case EnvironmentProduction:
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	case EnvironmentTest:
		cfg = zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stdout"}
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// Sync flushes buffered entries of the global logger.
func Sync() error {
	if logger == nil {
		return nil
	}
	if err := logger.Sync(); err != nil && !isStdSyncErr(err) {
		fmt.Fprintf(os.Stderr, "Error syncing logger: %v\n", err)
		return err
	}
	return nil
}

// syncing stdout/stderr fails with EINVAL or ENOTTY on most terminals.
func isStdSyncErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}

// MaskSensitiveString keeps the first prefixLen and last suffixLen characters
// of s and replaces the middle with "...".
func MaskSensitiveString(s string, prefixLen, suffixLen int) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) < prefixLen+suffixLen+3 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:prefixLen]) + "..." + string(runes[len(runes)-suffixLen:])
}

// MaskEmail masks the local part of an email address and keeps the domain.
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	user, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return MaskSensitiveString(email, 2, 2)
	}
	return MaskSensitiveString(user, 2, 1) + "@" + domain
}

// MaskPhone keeps the last four digits of a phone number.
func MaskPhone(phone string) string {
	var digits []rune
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + string(digits[len(digits)-4:])
}
