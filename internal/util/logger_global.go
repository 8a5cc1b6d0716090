package util

import "sync"

var (
	globalLogger *Logger
	loggerOnce   sync.Once
)

// InitLogger initializes the global logger instance. Safe to call more than
// once; only the first call wins.
func InitLogger(logLevel, logFile string, debugToConsole bool) error {
	var err error
	loggerOnce.Do(func() {
		globalLogger, err = NewLogger(logLevel, logFile, debugToConsole)
	})
	return err
}

// LogDebug and friends log through the global logger; no-ops before InitLogger.
func LogDebug(msg string) { globalLogger.Debug(msg) }

func LogDebugf(format string, args ...interface{}) { globalLogger.Debugf(format, args...) }

func LogInfo(msg string) { globalLogger.Info(msg) }

func LogInfof(format string, args ...interface{}) { globalLogger.Infof(format, args...) }

func LogWarn(msg string) { globalLogger.Warn(msg) }

func LogWarnf(format string, args ...interface{}) { globalLogger.Warnf(format, args...) }

func LogError(msg string) { globalLogger.Error(msg) }

func LogErrorf(format string, args ...interface{}) { globalLogger.Errorf(format, args...) }
