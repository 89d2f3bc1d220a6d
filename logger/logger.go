package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var (
	// Global logger instance
	logger *zap.Logger
	// Global sugared logger instance
	sugar *zap.SugaredLogger
	// Guards the lazy default initialization
	once sync.Once
	// Guards logger and sugar against concurrent Init
	mu sync.RWMutex
)

// Init (re)initializes the logger with the given log level and output format.
// Valid levels: debug, info, warn, error, dpanic, panic, fatal
// Valid formats: json, console
//
// Logs are written to stderr, stdout is reserved for model output.
func Init(level, format string) {
	InitWithWriter(os.Stderr, level, format)
}

// InitWithWriter is Init writing to w, used by tests to capture log output.
func InitWithWriter(w io.Writer, level, format string) {
	once.Do(func() {})
	build(w, level, format)
}

func build(w io.Writer, level, format string) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zap.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if format == FormatConsole {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zapLevel)

	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	mu.Lock()
	defer mu.Unlock()
	logger = l
	sugar = l.Sugar()
}

// Sugar returns the global sugared logger
func Sugar() *zap.SugaredLogger {
	once.Do(func() {
		// Nobody called Init, fall back to info level
		build(os.Stderr, "info", FormatJSON)
	})

	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// GetLogger returns the global zap logger
func GetLogger() *zap.Logger {
	Sugar()

	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes any buffered log entries
func Sync() {
	mu.RLock()
	l := logger
	mu.RUnlock()

	if l != nil {
		_ = l.Sync()
	}
}

// With returns a sugared logger carrying the given key/value pairs.
// Its caller is the code calling the returned logger, not this package.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return GetLogger().WithOptions(zap.AddCallerSkip(-1)).Sugar().With(keysAndValues...)
}

// Debug logs a message at debug level
func Debug(args ...interface{}) {
	Sugar().Debug(args...)
}

// Info logs a message at info level
func Info(args ...interface{}) {
	Sugar().Info(args...)
}

// Warn logs a message at warn level
func Warn(args ...interface{}) {
	Sugar().Warn(args...)
}

// Error logs a message at error level
func Error(args ...interface{}) {
	Sugar().Error(args...)
}

// Debugf logs a formatted message at debug level
func Debugf(template string, args ...interface{}) {
	Sugar().Debugf(template, args...)
}

// Infof logs a formatted message at info level
func Infof(template string, args ...interface{}) {
	Sugar().Infof(template, args...)
}

// Warnf logs a formatted message at warn level
func Warnf(template string, args ...interface{}) {
	Sugar().Warnf(template, args...)
}

// Errorf logs a formatted message at error level
func Errorf(template string, args ...interface{}) {
	Sugar().Errorf(template, args...)
}
