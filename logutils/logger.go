package logutils

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogSettings defines the logging output of the process.
type LogSettings struct {
	Enabled         bool   `json:"Enabled" yaml:"enabled"`
	Level           string `json:"Level" yaml:"level"`
	File            string `json:"File,omitempty" yaml:"file"`
	MaxSize         int    `json:"MaxSize,omitempty" yaml:"maxSize"`
	MaxBackups      int    `json:"MaxBackups,omitempty" yaml:"maxBackups"`
	CompressRotated bool   `json:"CompressRotated,omitempty" yaml:"compressRotated"`
	JSON            bool   `json:"JSON,omitempty" yaml:"json"`
}

// NewZapLogger builds a logger from settings. Disabled settings yield a no-op logger.
// Without a file the logger writes to stderr.
func NewZapLogger(settings LogSettings) (*zap.Logger, error) {
	if !settings.Enabled {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(strings.ToLower(settings.Level))
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if settings.JSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var syncer zapcore.WriteSyncer
	if settings.File != "" {
		syncer = ZapSyncerWithRotation(FileOptions{
			Filename:   settings.File,
			MaxSize:    settings.MaxSize,
			MaxBackups: settings.MaxBackups,
			Compress:   settings.CompressRotated,
		})
	} else {
		syncer = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(encoder, syncer, zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller()), nil
}
