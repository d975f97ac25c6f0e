// Package logger настраивает zap: консоль в dev, JSON в остальных окружениях,
// опционально файл с ротацией через lumberjack.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Zap struct {
	*zap.Logger
}

// New создает логгер. env=dev включает цветной консольный вывод.
// file задает путь для JSON лога с ротацией, пустая строка - без файла.
func New(env, level, file string) (*Zap, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.SetLevel(zap.InfoLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")

	var consoleEncoder zapcore.Encoder
	if strings.EqualFold(env, "dev") {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		consoleEncoder = zapcore.NewJSONEncoder(encCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), lvl),
	}

	if file != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // МБ
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), writer, lvl))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	return &Zap{Logger: log}, nil
}

// Nop возвращает логгер без вывода, удобно в тестах.
func Nop() *Zap {
	return &Zap{Logger: zap.NewNop()}
}

// Named возвращает дочерний логгер компонента.
func (z *Zap) Named(name string) *Zap {
	return &Zap{Logger: z.Logger.Named(name)}
}

// With возвращает логгер с постоянными полями.
func (z *Zap) With(fields ...zap.Field) *Zap {
	return &Zap{Logger: z.Logger.With(fields...)}
}
