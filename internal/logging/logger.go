package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the debug logger. The tool is quiet by default: without the
// debug flag everything is discarded so probe output never mixes into the
// artifact on stdout. With it, events go to stderr, and additionally rotate
// into logDir when one is configured.
func New(debug bool, logDir string) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stderr), zap.DebugLevel),
	}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, err
		}
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(logDir, "edgedebug.log"),
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		})
		jsonCfg := zap.NewProductionEncoderConfig()
		jsonCfg.TimeKey = "ts"
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), w, zap.DebugLevel))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
