// Package logging is a thin leveled wrapper around a logrus logger. Output
// goes to stderr and, once SetLogFile has been called, to a log file as well.
package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

type LogLevel int

const (
	LogLevelError   LogLevel = 0
	LogLevelWarning LogLevel = 1
	LogLevelInfo    LogLevel = 2
	LogLevelDebug   LogLevel = 3
)

// ErrBadLevel is returned by SetLogLevel for a level outside 0..3.
var ErrBadLevel = errors.New("invalid log level")

// magic date, please don't change.
const timestampFormat = "2006-01-02 15:04:05.000000"

// Log is the logger behind the package functions.
var Log = newLogger()

func newLogger() *logrus.Logger {
	formatter := new(logrus.TextFormatter)
	formatter.TimestampFormat = timestampFormat
	formatter.FullTimestamp = true

	return &logrus.Logger{
		Out:       os.Stderr,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.ErrorLevel,
	}
}

var levels = map[LogLevel]logrus.Level{
	LogLevelError:   logrus.ErrorLevel,
	LogLevelWarning: logrus.WarnLevel,
	LogLevelInfo:    logrus.InfoLevel,
	LogLevelDebug:   logrus.DebugLevel,
}

// SetLogLevel maps the -v count onto a logrus level. Anything above debug
// stays at debug.
func SetLogLevel(newLevel int) error {
	if newLevel < 0 {
		return errors.Wrapf(ErrBadLevel, "%d", newLevel)
	}
	if newLevel > int(LogLevelDebug) {
		newLevel = int(LogLevelDebug)
	}
	Log.SetLevel(levels[LogLevel(newLevel)])
	return nil
}

// SetLogFile copies every entry at or above the current level to w.
// logs will be of the format:
// time="2018-07-23 10:47:03.617692" level=warning msg="block hash is higher than target"
func SetLogFile(w io.Writer) {
	Log.Hooks.Add(lfshook.NewHook(w, &logrus.TextFormatter{
		TimestampFormat: timestampFormat,
		FullTimestamp:   true,
		DisableColors:   true,
	}))
}

// SetLogPath is SetLogFile for a path; lfshook opens the file itself.
func SetLogPath(path string) {
	Log.Hooks.Add(lfshook.NewHook(lfshook.PathMap{
		logrus.ErrorLevel: path,
		logrus.WarnLevel:  path,
		logrus.InfoLevel:  path,
		logrus.DebugLevel: path,
		logrus.FatalLevel: path,
		logrus.PanicLevel: path,
	}, &logrus.TextFormatter{
		TimestampFormat: timestampFormat,
		FullTimestamp:   true,
	}))
}

// SetOutput replaces stderr as the console destination.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

func Fatalln(args ...interface{}) { Log.Fatalln(args...) }

func Fatalf(format string, args ...interface{}) { Log.Fatalf(format, args...) }

func Fatal(args ...interface{}) { Log.Fatal(args...) }

func Debugf(format string, args ...interface{}) { Log.Debugf(format, args...) }

func Infof(format string, args ...interface{}) { Log.Infof(format, args...) }

func Warnf(format string, args ...interface{}) { Log.Warnf(format, args...) }

func Errorf(format string, args ...interface{}) { Log.Errorf(format, args...) }

func Debugln(args ...interface{}) { Log.Debugln(args...) }

func Infoln(args ...interface{}) { Log.Infoln(args...) }

func Warnln(args ...interface{}) { Log.Warnln(args...) }

func Errorln(args ...interface{}) { Log.Errorln(args...) }

func Debug(args ...interface{}) { Log.Debug(args...) }

func Info(args ...interface{}) { Log.Info(args...) }

func Warn(args ...interface{}) { Log.Warn(args...) }

func Error(args ...interface{}) { Log.Error(args...) }

// WithFields starts an entry carrying structured fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithFields(fields)
}

func SetupTestLogs() {
	Log.SetLevel(logrus.DebugLevel)
}
