package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogEncoder defines a log encoder kind.
type LogEncoder = string

const (
	defaultLoggingLevel = zapcore.InfoLevel
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder LogEncoder = "console"
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder LogEncoder = "json"
)

// Names of the loggers that can be configured individually.
const (
	AppLogger      = "app"
	EngineLogger   = "engine"
	ClientLogger   = "client"
	DatabaseLogger = "database"
)

// LoggerConfig holds the logging level for each module.
type LoggerConfig struct {
	Encoder        LogEncoder `mapstructure:"log-encoder"`
	AppLoggerLevel string     `mapstructure:"app"`
	EngineLevel    string     `mapstructure:"engine"`
	ClientLevel    string     `mapstructure:"client"`
	DatabaseLevel  string     `mapstructure:"database"`
}

func defaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Encoder:        ConsoleLogEncoder,
		AppLoggerLevel: defaultLoggingLevel.String(),
		EngineLevel:    defaultLoggingLevel.String(),
		ClientLevel:    defaultLoggingLevel.String(),
		DatabaseLevel:  zapcore.WarnLevel.String(),
	}
}

// SetLevel overwrites the level of every module.
func (cfg *LoggerConfig) SetLevel(level string) {
	cfg.AppLoggerLevel = level
	cfg.EngineLevel = level
	cfg.ClientLevel = level
	cfg.DatabaseLevel = level
}

func (cfg *LoggerConfig) level(module string) string {
	switch module {
	case EngineLogger:
		return cfg.EngineLevel
	case ClientLogger:
		return cfg.ClientLevel
	case DatabaseLogger:
		return cfg.DatabaseLevel
	default:
		return cfg.AppLoggerLevel
	}
}

func (cfg *LoggerConfig) encoder() (zapcore.Encoder, error) {
	switch cfg.Encoder {
	case ConsoleLogEncoder, "":
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), nil
	case JSONLogEncoder:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	default:
		return nil, fmt.Errorf("unknown log encoder %q", cfg.Encoder)
	}
}

// Logger creates a logger named after module, writing to out with the level configured for it.
func (cfg *LoggerConfig) Logger(out zapcore.WriteSyncer, module string) (*zap.Logger, error) {
	encoder, err := cfg.encoder()
	if err != nil {
		return nil, err
	}
	level, err := zap.ParseAtomicLevel(cfg.level(module))
	if err != nil {
		return nil, fmt.Errorf("log level for %s: %w", module, err)
	}
	return zap.New(zapcore.NewCore(encoder, out, level)).Named(module), nil
}
