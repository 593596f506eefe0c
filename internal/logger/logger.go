package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the application logger. It is a no-op until Init is called.
var Log = zap.NewNop()

// Init builds the JSON logger. Output goes to a rotated file when file is
// set and to stdout otherwise.
func Init(level, file string) *zap.Logger {
	var writer zapcore.WriteSyncer
	if file != "" {
		writer = zapcore.AddSync(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // MB
			MaxBackups: 7,
			MaxAge:     14, // days
			Compress:   true,
		})
	} else {
		writer = zapcore.Lock(os.Stdout)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	Log = zap.New(zapcore.NewCore(encoder, writer, lvl), zap.AddCaller())
	return Log
}
