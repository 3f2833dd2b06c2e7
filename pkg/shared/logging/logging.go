// 指示: miu200521358
// Package logging はzapを用いたログ出力を提供する。
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel はログレベルを表す。
type LogLevel = zapcore.Level

// ログレベル一覧。
const (
	LOG_LEVEL_DEBUG LogLevel = zapcore.DebugLevel
	LOG_LEVEL_INFO  LogLevel = zapcore.InfoLevel
	LOG_LEVEL_WARN  LogLevel = zapcore.WarnLevel
	LOG_LEVEL_ERROR LogLevel = zapcore.ErrorLevel
)

// ILogger はログ出力の契約を表す。
type ILogger interface {
	Debug(msg string, params ...any)
	Info(msg string, params ...any)
	Warn(msg string, params ...any)
	Error(msg string, params ...any)
	SetLevel(level LogLevel)
	Level() LogLevel
}

// Logger はzapを用いたロガーを表す。
type Logger struct {
	level  zap.AtomicLevel
	sugar  *zap.SugaredLogger
	buffer *MessageBuffer
}

// NewLogger はロガーを生成する。out が nil の場合は標準エラーへ出力する。
func NewLogger(out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	buffer := &MessageBuffer{}

	outputConfig := zap.NewDevelopmentEncoderConfig()
	outputConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	bufferConfig := zap.NewDevelopmentEncoderConfig()
	bufferConfig.TimeKey = ""
	bufferConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(outputConfig), zapcore.AddSync(out), level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(bufferConfig), buffer, level),
	)
	return &Logger{
		level:  level,
		sugar:  zap.New(core).Sugar(),
		buffer: buffer,
	}
}

// NewNopLogger は何も出力しないロガーを生成する。
func NewNopLogger() *Logger {
	return &Logger{
		level:  zap.NewAtomicLevelAt(zapcore.InfoLevel),
		sugar:  zap.NewNop().Sugar(),
		buffer: &MessageBuffer{},
	}
}

// Debug はDEBUGログを出力する。
func (l *Logger) Debug(msg string, params ...any) {
	l.sugar.Debugf(msg, params...)
}

// Info はINFOログを出力する。
func (l *Logger) Info(msg string, params ...any) {
	l.sugar.Infof(msg, params...)
}

// Warn はWARNログを出力する。
func (l *Logger) Warn(msg string, params ...any) {
	l.sugar.Warnf(msg, params...)
}

// Error はERRORログを出力する。
func (l *Logger) Error(msg string, params ...any) {
	l.sugar.Errorf(msg, params...)
}

// SetLevel はログレベルを設定する。
func (l *Logger) SetLevel(level LogLevel) {
	l.level.SetLevel(level)
}

// Level は現在のログレベルを返す。
func (l *Logger) Level() LogLevel {
	return l.level.Level()
}

// Sync はバッファ済みログを書き出す。
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// MessageBuffer は出力済みログ行を返す。
func (l *Logger) MessageBuffer() *MessageBuffer {
	return l.buffer
}

// ParseLogLevel はログレベル名を解析する。
func ParseLogLevel(name string) (LogLevel, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return LOG_LEVEL_INFO, nil
	}
	level, err := zapcore.ParseLevel(strings.ToLower(trimmed))
	if err != nil {
		return LOG_LEVEL_INFO, fmt.Errorf("ログレベルが不正です: %s", name)
	}
	return level, nil
}

// MessageBuffer はログ行を保持する出力先を表す。
type MessageBuffer struct {
	mu    sync.Mutex
	lines []string
}

// Write はログ出力を行単位で保持する。
func (b *MessageBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		b.lines = append(b.lines, line)
	}
	return len(p), nil
}

// Sync は何もしない。
func (b *MessageBuffer) Sync() error {
	return nil
}

// Lines は保持しているログ行を返す。
func (b *MessageBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// Clear は保持しているログ行を破棄する。
func (b *MessageBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

var (
	defaultMu     sync.RWMutex
	defaultLogger ILogger = NewNopLogger()
)

// DefaultLogger は既定ロガーを返す。
func DefaultLogger() ILogger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger は既定ロガーを差し替える。
func SetDefaultLogger(logger ILogger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if logger == nil {
		logger = NewNopLogger()
	}
	defaultLogger = logger
}
