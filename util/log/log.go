package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"sync"

	eParser "github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	timeLayout = "2006-01-02 15:04:05.000"
	modulePath = "oep4-squirrel/"

	// Rotation of every level file.
	rotateSizeMB  = 30
	rotateBackups = 100
	rotateDays    = 30
)

// Every level writes to its own file under logDir once Init is called.
var levelFiles = map[logrus.Level]string{
	logrus.DebugLevel: "debug.log",
	logrus.InfoLevel:  "info.log",
	logrus.WarnLevel:  "warn.log",
	logrus.ErrorLevel: "error.log",
}

var (
	mu      sync.RWMutex
	loggers map[logrus.Level]*logrus.Logger
	logDir  = "./logs"
	verbose bool
	label   string
)

func init() {
	loggers = consoleLoggers()
}

// consoleLoggers log to the console only, debug output dropped.
func consoleLoggers() map[logrus.Level]*logrus.Logger {
	return map[logrus.Level]*logrus.Logger{
		logrus.DebugLevel: consoleLogger(logrus.DebugLevel, io.Discard),
		logrus.InfoLevel:  consoleLogger(logrus.InfoLevel, os.Stdout),
		logrus.WarnLevel:  consoleLogger(logrus.WarnLevel, os.Stdout),
		logrus.ErrorLevel: consoleLogger(logrus.ErrorLevel, os.Stderr),
	}
}

// Init switches every level to stdout plus a rotating file.
// Debug output is dropped unless debugMode is set, and in debug mode
// messages carry their call site and errors their stack.
func Init(debugMode bool) {
	if err := os.MkdirAll(logDir, 0700); err != nil {
		panic(err)
	}

	replaced := make(map[logrus.Level]*logrus.Logger, len(levelFiles))
	for level, name := range levelFiles {
		if level == logrus.DebugLevel && !debugMode {
			replaced[level] = consoleLogger(level, io.Discard)
			continue
		}

		rotated := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, name),
			MaxSize:    rotateSizeMB,
			MaxBackups: rotateBackups,
			MaxAge:     rotateDays,
		}
		replaced[level] = consoleLogger(level, io.MultiWriter(os.Stdout, rotated))
	}

	mu.Lock()
	loggers = replaced
	verbose = debugMode
	mu.Unlock()
}

// SetPrefix labels every line, e.g., with the network the process follows.
func SetPrefix(prefix string) {
	mu.Lock()
	label = prefix
	mu.Unlock()
}

func consoleLogger(level logrus.Level, out io.Writer) *logrus.Logger {
	return &logrus.Logger{
		Out:       out,
		Formatter: lineFormatter{},
		Level:     level,
		Hooks:     make(logrus.LevelHooks),
	}
}

func at(level logrus.Level) *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return loggers[level]
}

func debugMode() bool {
	mu.RLock()
	defer mu.RUnlock()

	return verbose
}

// lineFormatter prints "time [label][level] message".
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	mu.RLock()
	prefix := label
	mu.RUnlock()

	var b strings.Builder
	b.WriteString(e.Time.Format(timeLayout))
	b.WriteString(" ")
	if prefix != "" {
		b.WriteString("[" + prefix + "]")
	}
	b.WriteString("[" + e.Level.String() + "] ")
	b.WriteString(e.Message)

	return []byte(b.String()), nil
}

// Debugf logs in Debug level.
func Debugf(format string, v ...interface{}) {
	at(logrus.DebugLevel).Debug(render(format, v))
}

// Debug logs in Debug level.
func Debug(v ...interface{}) {
	at(logrus.DebugLevel).Debug(render("", v))
}

// Infof logs in Info level.
func Infof(format string, v ...interface{}) {
	at(logrus.InfoLevel).Info(render(format, v))
}

// Info logs in Info level.
func Info(v ...interface{}) {
	at(logrus.InfoLevel).Info(render("", v))
}

// Warnf logs in Warn level.
func Warnf(format string, v ...interface{}) {
	at(logrus.WarnLevel).Warn(render(format, v))
}

// Warn logs in Warn level.
func Warn(v ...interface{}) {
	at(logrus.WarnLevel).Warn(render("", v))
}

// Errorf logs in Error level.
func Errorf(format string, v ...interface{}) {
	at(logrus.ErrorLevel).Error(render(format, v))
}

// Error logs in Error level.
func Error(v ...interface{}) {
	at(logrus.ErrorLevel).Error(render("", v))
}

// Fatalf logs in Error level and exits.
func Fatalf(format string, v ...interface{}) {
	at(logrus.ErrorLevel).Fatal(render(format, v))
}

// Fatal logs in Error level and exits.
func Fatal(v ...interface{}) {
	at(logrus.ErrorLevel).Fatal(render("", v))
}

// Panicf logs in Error level and panics.
func Panicf(format string, v ...interface{}) {
	at(logrus.ErrorLevel).Panic(render(format, v))
}

// render builds one newline terminated message. It must be called directly
// by the exported log functions so the call site lookup skips the right frames.
func render(format string, v []interface{}) string {
	withStack := debugMode()

	args := make([]interface{}, len(v))
	for i := range v {
		args[i] = readable(v[i], withStack)
	}

	var msg string
	switch {
	case len(args) == 0:
		msg = format
	case format == "":
		msg = fmt.Sprint(args...)
	default:
		msg = fmt.Sprintf(format, args...)
	}

	if withStack {
		msg = "[" + callSite(3) + "] " + msg
	}

	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	return msg
}

// readable turns errors, stringers and structs into text. Errors get their
// stack when withStack is set.
func readable(v interface{}, withStack bool) interface{} {
	switch value := v.(type) {
	case nil:
		return nil
	case *eParser.Error:
		if withStack {
			return value.ErrorStack()
		}
		return value.Error()
	case error:
		if withStack {
			return eParser.Wrap(value, 4).ErrorStack()
		}
		return value.Error()
	case fmt.Stringer:
		return value.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct:
		b, err := json.Marshal(v)
		if err != nil {
			return eParser.Wrap(err, 0).ErrorStack()
		}
		return string(b)
	case reflect.Ptr:
		if rv.IsNil() {
			return v
		}
		return readable(rv.Elem().Interface(), withStack)
	default:
		return v
	}
}

// callSite returns file:line relative to the module root.
func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "<???>"
	}

	if i := strings.LastIndex(file, modulePath); i >= 0 {
		file = file[i+len(modulePath):]
	}

	return fmt.Sprintf("%s:%d", file, line)
}
