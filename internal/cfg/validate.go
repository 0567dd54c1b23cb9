package cfg

import (
	"fmt"
	"strings"

	"github.com/hailam/gencorpus/internal/logger"
)

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidLoggingConfig(config *LoggingConfig) error {
	switch strings.ToUpper(config.Severity) {
	case logger.TRACE, logger.DEBUG, logger.INFO, logger.WARNING, logger.ERROR, logger.OFF:
	default:
		return fmt.Errorf("unknown severity %q", config.Severity)
	}
	switch strings.ToLower(config.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format %q, want text or json", config.Format)
	}
	return isValidLogRotateConfig(&config.LogRotate)
}

// ValidateConfig returns a non-nil error if the config is invalid. Size and
// repetition threshold are not checked here: out-of-range values fall back
// to their defaults when the request is resolved.
func ValidateConfig(config *Config) error {
	if config.Output == "" {
		return fmt.Errorf("output path flag --output is required")
	}
	if config.Parallelism < 0 {
		return fmt.Errorf("parallelism should be 0 (one producer per CPU) or a positive value")
	}
	if err := isValidLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("error parsing logging config: %w", err)
	}
	return nil
}

// LoggerConfig maps the logging section to the logger's settings.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Severity:        c.Logging.Severity,
		Format:          c.Logging.Format,
		FilePath:        c.Logging.FilePath,
		MaxFileSizeMB:   c.Logging.LogRotate.MaxFileSizeMb,
		BackupFileCount: c.Logging.LogRotate.BackupFileCount,
	}
}
