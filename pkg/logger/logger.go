package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Logger struct to hold leveled loggers and configuration
type Logger struct {
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	level       LogLevel
	mutex       sync.Mutex
}

// LogLevel defines the logging levels
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// ParseLevel maps a config string to a LogLevel, defaulting to INFO.
func ParseLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// GlobalLogger is usable before InitLogger runs so packages and tests never see a nil logger.
var GlobalLogger = New(os.Stdout, INFO)
var once sync.Once

// New builds a standalone logger writing to output.
func New(output io.Writer, level LogLevel) *Logger {
	if output == nil {
		output = os.Stdout
	}
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &Logger{
		debugLogger: log.New(output, color.BlueString("DEBUG: "), flags),
		infoLogger:  log.New(output, color.GreenString("INFO: "), flags),
		warnLogger:  log.New(output, color.YellowString("WARN: "), flags),
		errorLogger: log.New(output, color.RedString("ERROR: "), flags),
		level:       level,
	}
}

// InitLogger replaces the global logger once with the configured output and level
func InitLogger(output io.Writer, level string) {
	once.Do(func() {
		GlobalLogger = New(output, ParseLevel(level))
	})
}

// output uses calldepth 3 so Lshortfile points at the caller of Printf/Errorf etc.
func (l *Logger) output(min LogLevel, target *log.Logger, msg string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= min {
		_ = target.Output(3, msg)
	}
}

// Println logs a message at the INFO level
func (l *Logger) Println(v ...interface{}) {
	l.output(INFO, l.infoLogger, fmt.Sprintln(v...))
}

// Printf logs a formatted message at the INFO level
func (l *Logger) Printf(format string, v ...interface{}) {
	l.output(INFO, l.infoLogger, fmt.Sprintf(format, v...))
}

// Warnf logs a formatted message at the WARN level
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.output(WARN, l.warnLogger, fmt.Sprintf(format, v...))
}

// Error logs a message at the ERROR level
func (l *Logger) Error(v ...interface{}) {
	l.output(ERROR, l.errorLogger, fmt.Sprintln(v...))
}

// Errorf logs a formatted message at the ERROR level
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.output(ERROR, l.errorLogger, fmt.Sprintf(format, v...))
}

// Debugf logs a formatted message at the DEBUG level
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.output(DEBUG, l.debugLogger, fmt.Sprintf(format, v...))
}

// Fatalf logs at the ERROR level and exits the process.
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.output(ERROR, l.errorLogger, fmt.Sprintf(format, v...))
	os.Exit(1)
}
