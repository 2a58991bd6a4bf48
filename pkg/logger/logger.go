// Package logger 提供统一的日志框架
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level 日志级别
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config 日志配置
type Config struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"` // json/console
	Output     string `yaml:"output" json:"output"` // stdout/stderr/file
	FilePath   string `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	TimeFormat string `yaml:"time_format,omitempty" json:"time_format,omitempty"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stderr",
		TimeFormat: time.RFC3339,
	}
}

// Init 初始化日志器
func Init(cfg Config) {
	once.Do(func() {
		level := parseLevel(cfg.Level)
		zerolog.SetGlobalLevel(level)

		var output io.Writer
		switch cfg.Output {
		case "stdout":
			output = os.Stdout
		case "file":
			if cfg.FilePath != "" {
				f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err == nil {
					output = f
				} else {
					output = os.Stderr
				}
			} else {
				output = os.Stderr
			}
		default:
			output = os.Stderr
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

// parseLevel 解析日志级别
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get 获取日志器
func Get() *zerolog.Logger {
	if logger.GetLevel() == zerolog.Disabled {
		Init(DefaultConfig())
	}
	return &logger
}

// Debug 记录调试日志
func Debug() *zerolog.Event {
	return Get().Debug()
}

// Info 记录信息日志
func Info() *zerolog.Event {
	return Get().Info()
}

// Warn 记录警告日志
func Warn() *zerolog.Event {
	return Get().Warn()
}

// Error 记录错误日志
func Error() *zerolog.Event {
	return Get().Error()
}

// Fatal 记录致命错误日志
func Fatal() *zerolog.Event {
	return Get().Fatal()
}

// WithError 添加错误信息
func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

// BuilderLogger 约束模型构建专用日志器
type BuilderLogger struct {
	base *zerolog.Logger
}

// NewBuilderLogger 创建模型构建日志器
func NewBuilderLogger() *BuilderLogger {
	l := Get().With().Str("component", "builder").Logger()
	return &BuilderLogger{base: &l}
}

// StartBuild 记录构建开始
func (l *BuilderLogger) StartBuild(buildID string, employees, days, shifts int) {
	l.base.Info().
		Str("build_id", buildID).
		Int("employees", employees).
		Int("days", days).
		Int("shifts", shifts).
		Msg("开始构建排班约束模型")
}

// RuleSkipped 记录规则跳过
func (l *BuilderLogger) RuleSkipped(family, reason string) {
	l.base.Warn().
		Str("rule_family", family).
		Str("reason", reason).
		Msg("规则无效，已跳过")
}

// RuleInfo 记录规则提示（无效果规则等）
func (l *BuilderLogger) RuleInfo(family, message string) {
	l.base.Info().
		Str("rule_family", family).
		Str("message", message).
		Msg("规则提示")
}

// BuildComplete 记录构建完成
func (l *BuilderLogger) BuildComplete(buildID string, variables, constraints, penaltyTerms int, duration time.Duration) {
	l.base.Info().
		Str("build_id", buildID).
		Int("variables", variables).
		Int("constraints", constraints).
		Int("penalty_terms", penaltyTerms).
		Dur("duration", duration).
		Msg("约束模型构建完成")
}
