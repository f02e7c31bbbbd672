// Package log builds the zap loggers used by the counters command.
package log

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	logLevel string
	encoding string
	output   io.Writer
}

type Option func(o *options)

func WithLogLevel(lv string) Option {
	return Option(func(o *options) {
		o.logLevel = lv
	})
}

// WithEncoding selects "json" (default) or "console".
func WithEncoding(enc string) Option {
	return Option(func(o *options) {
		o.encoding = enc
	})
}

// WithOutput writes to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return Option(func(o *options) {
		o.output = w
	})
}

func NewLogger(opts ...Option) (*zap.Logger, error) {
	options := options{
		logLevel: "info",
		encoding: "json",
	}

	for _, e := range opts {
		e(&options)
	}

	encConfig := zap.NewProductionEncoderConfig()
	encConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var al zap.AtomicLevel
	err := al.UnmarshalText([]byte(options.logLevel))
	if err != nil {
		return nil, fmt.Errorf("al.UnmarshalText: level=%s, %w", options.logLevel, err)
	}

	if options.output != nil {
		var enc zapcore.Encoder
		switch options.encoding {
		case "json":
			enc = zapcore.NewJSONEncoder(encConfig)
		case "console":
			enc = zapcore.NewConsoleEncoder(encConfig)
		default:
			return nil, fmt.Errorf("unknown encoding: %s", options.encoding)
		}
		return zap.New(zapcore.NewCore(enc, zapcore.AddSync(options.output), al)), nil
	}

	zc := zap.Config{
		DisableCaller:     true,
		DisableStacktrace: true,
		Level:             al,
		Development:       false,
		Encoding:          options.encoding,
		EncoderConfig:     encConfig,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	zl, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("zap.Build: %w", err)
	}
	return zl, nil
}

func Must(zl *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(err)
	}
	return zl
}
