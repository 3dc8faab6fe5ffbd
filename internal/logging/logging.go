package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. When logDir is non-empty,
// output also goes to hourly-rotated files kept for 14 days.
func Setup(level, logDir string) error {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if logDir == "" {
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	writer, err := rotatelogs.New(
		filepath.Join(logDir, "portal.%Y-%m-%d-%H.log"),
		rotatelogs.WithLinkName(filepath.Join(logDir, "portal.log")),
		rotatelogs.WithRotationTime(time.Hour),
		rotatelogs.WithMaxAge(14*24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("init log rotation: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, writer))
	return nil
}
