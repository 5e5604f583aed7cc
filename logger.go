package aegisweb

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// NewLogger builds the process logger. Development gets a readable console
// encoder; staging and production emit structured JSON. LOG_LEVEL overrides
// the level in every mode.
func NewLogger(appEnv string) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(EnvOr("LOG_LEVEL", defaultLogLevel))))); err != nil {
		_ = level.UnmarshalText([]byte(defaultLogLevel))
	}

	if appEnv == EnvDevelopment {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = level
		cfg.DisableStacktrace = true
		return cfg.Build()
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		CallerKey:     "caller",
		EncodeCaller:  zapcore.ShortCallerEncoder,
		StacktraceKey: "stacktrace",
	}

	cfg := zap.Config{
		Level:             level,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
		InitialFields:     map[string]interface{}{"service": "aegisweb", "env": appEnv},
	}
	return cfg.Build()
}
