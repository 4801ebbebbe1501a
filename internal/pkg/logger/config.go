package logger

import (
	"errors"
	"strings"

	"github.com/lk2023060901/portfolio-chat/internal/conf"
	"go.uber.org/zap/zapcore"
)

// Config defines the logger configuration
type Config struct {
	Level            string     // debug, info, warn, error, dpanic, panic, fatal
	Format           string     // json, console
	Output           string     // console, file, both
	File             FileConfig
	EnableCaller     bool
	EnableStacktrace bool // stacktrace on error level and above
}

// FileConfig defines rotation settings for file output
type FileConfig struct {
	Filename   string
	MaxSize    int // megabytes
	MaxAge     int // days
	MaxBackups int
	Compress   bool
}

// DefaultConfig returns default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:            "info",
		Format:           "json",
		Output:           "console",
		EnableCaller:     true,
		EnableStacktrace: true,
		File: FileConfig{
			Filename:   "logs/portfolio-chat.log",
			MaxSize:    100,
			MaxAge:     30,
			MaxBackups: 10,
			Compress:   true,
		},
	}
}

// FromConf maps the application log section onto a logger Config
func FromConf(c conf.LogConfig) *Config {
	return &Config{
		Level:            c.Level,
		Format:           c.Format,
		Output:           c.Output,
		EnableCaller:     c.EnableCaller,
		EnableStacktrace: c.EnableStacktrace,
		File: FileConfig{
			Filename:   c.File.Filename,
			MaxSize:    c.File.MaxSize,
			MaxAge:     c.File.MaxAge,
			MaxBackups: c.File.MaxBackups,
			Compress:   c.File.Compress,
		},
	}
}

var (
	ErrInvalidLevel  = errors.New("log level must be one of: debug, info, warn, error, dpanic, panic, fatal")
	ErrInvalidFormat = errors.New("log format must be 'json' or 'console'")
	ErrInvalidOutput = errors.New("log output must be 'console', 'file' or 'both'")
	ErrInvalidFile   = errors.New("log file needs a filename and positive maxsize and maxage")
)

// Validate rejects values New cannot build a core from. Rotation settings only
// matter when a file is written.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(strings.ToLower(c.Level)); err != nil || c.Level == "" {
		return ErrInvalidLevel
	}

	switch c.Format {
	case "json", "console":
	default:
		return ErrInvalidFormat
	}

	switch c.Output {
	case "console":
	case "file", "both":
		f := c.File
		if f.Filename == "" || f.MaxSize <= 0 || f.MaxAge <= 0 || f.MaxBackups < 0 {
			return ErrInvalidFile
		}
	default:
		return ErrInvalidOutput
	}

	return nil
}
