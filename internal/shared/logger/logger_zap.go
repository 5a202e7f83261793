// Package logger содержит общий логгер для server и CLI.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack) и, опционально, в stdout, плюс удобный метод для логирования HTTP-запросов.
package logger

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFile — файл логов, если в конфиге ничего не задано.
var DefaultFile = filepath.Join("runtime", "logs", "server.log")

// Options — параметры логгера. Заполняются из секции log конфига сервера.
type Options struct {
	Level  string // debug|info|warn|error
	Format string // json|console
	File   string // путь к файлу; пусто -> DefaultFile
	Stdout bool   // дублировать ли логи в stdout
}

// Logger представляет обёртку над zap.Logger.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type Logger struct {
	*zap.Logger
}

// New создаёт zap-логгер по переданным опциям.
//
// Для файла включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func New(opts Options) (*Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
	}

	file := opts.File
	if file == "" {
		file = DefaultFile
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	// lumberjack отвечает за ротацию файлов
	writers := []zapcore.WriteSyncer{zapcore.AddSync(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // дней
		Compress:   true,
	})}
	if opts.Stdout {
		writers = append(writers, zapcore.Lock(os.Stdout))
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writers...), level)

	return &Logger{Logger: zap.New(core, zap.AddCaller())}, nil
}

// NewDefault создаёт логгер с настройками по умолчанию (info, console, DefaultFile).
// Нужен до загрузки конфига; если файл создать не удалось — пишем в stderr.
func NewDefault() *Logger {
	l, err := New(Options{Level: "info", Stdout: true})
	if err != nil {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			zapcore.InfoLevel,
		)
		return &Logger{Logger: zap.New(core)}
	}
	return l
}

// NewNop возвращает логгер, который ничего не пишет.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// duration — длительность обработки запроса в миллисекундах.
// extra добавляются к записи как есть (например, request_id).
func (l *Logger) LogRequest(method, uri string, status, responseSize int, duration float64, extra ...zap.Field) {
	fields := append([]zap.Field{
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	}, extra...)

	switch {
	case status >= http.StatusInternalServerError:
		l.Error("HTTP request", fields...)
	case status >= http.StatusBadRequest:
		l.Warn("HTTP request", fields...)
	default:
		l.Info("HTTP request", fields...)
	}
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
