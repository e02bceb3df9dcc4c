package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger handles dual-output logging (console + file)
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	logFile       *os.File
	verbose       bool
	minLevel      Level
}

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
)

// Init initializes the global logger
// consoleOutput: where to write INFO logs (typically os.Stdout)
// logFilePath: path to the log file that receives every level
// verbose: if true, show DEBUG logs on console as well
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	consoleLogger := log.New(consoleOutput, "", 0) // No prefix for clean console output
	fileLogger := log.New(logFile, "", log.LstdFlags)

	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}

	globalMu.Lock()
	globalLogger = &Logger{
		consoleLogger: consoleLogger,
		fileLogger:    fileLogger,
		logFile:       logFile,
		verbose:       verbose,
		minLevel:      minLevel,
	}
	globalMu.Unlock()

	return nil
}

// Close closes the log file and detaches the global logger
func Close() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger != nil && globalLogger.logFile != nil {
		globalLogger.logFile.Close()
	}
	globalLogger = nil
}

func current() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// Debug logs a debug message (file only, unless verbose)
func Debug(format string, args ...interface{}) {
	write(LevelDebug, "", format, args...)
}

// Info logs an info message (console + file)
func Info(format string, args ...interface{}) {
	write(LevelInfo, "", format, args...)
}

// Warn logs a warning message (console + file)
func Warn(format string, args ...interface{}) {
	write(LevelWarn, "", format, args...)
}

// Error logs an error message (console + file)
func Error(format string, args ...interface{}) {
	write(LevelError, "", format, args...)
}

func write(level Level, prefix, format string, args ...interface{}) {
	l := current()
	if l == nil {
		if level == LevelDebug {
			return
		}
		msg := prefix + fmt.Sprintf(format, args...)
		switch level {
		case LevelWarn:
			fmt.Printf("WARN: %s\n", msg)
		case LevelError:
			fmt.Printf("ERROR: %s\n", msg)
		default:
			fmt.Println(msg)
		}
		return
	}
	l.log(level, prefix+fmt.Sprintf(format, args...))
}

// log handles the actual logging logic
func (l *Logger) log(level Level, message string) {
	// Always log to file with timestamp and level (regardless of minLevel)
	l.fileLogger.Printf("[%s] %s", level.String(), message)

	if level < l.minLevel {
		return
	}

	switch level {
	case LevelDebug:
		if l.verbose {
			l.consoleLogger.Printf("[DEBUG] %s", message)
		}
	case LevelInfo:
		l.consoleLogger.Printf("%s", message) // Clean output for INFO
	case LevelWarn:
		l.consoleLogger.Printf("⚠️  %s", message)
	case LevelError:
		l.consoleLogger.Printf("❌ %s", message)
	}
}

// Scoped prefixes every message with a fixed tag, typically "[run-id workbook]".
// It writes through the global logger, so it is safe for concurrent use.
type Scoped struct {
	prefix string
}

// Scope returns a logger that tags each message with prefix
func Scope(prefix string) *Scoped {
	return &Scoped{prefix: "[" + prefix + "] "}
}

func (s *Scoped) Debug(format string, args ...interface{}) {
	write(LevelDebug, s.prefix, format, args...)
}

func (s *Scoped) Info(format string, args ...interface{}) {
	write(LevelInfo, s.prefix, format, args...)
}

func (s *Scoped) Warn(format string, args ...interface{}) {
	write(LevelWarn, s.prefix, format, args...)
}

func (s *Scoped) Error(format string, args ...interface{}) {
	write(LevelError, s.prefix, format, args...)
}

// InfoClean logs an info message to the console only, without a log file entry.
// Used for the batch summary table.
func InfoClean(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.consoleLogger.Printf(format, args...)
}

// GetLogFilePath returns the path to the current log file
func GetLogFilePath() string {
	if l := current(); l != nil && l.logFile != nil {
		return l.logFile.Name()
	}
	return ""
}

// IsVerbose returns whether verbose logging is enabled
func IsVerbose() bool {
	if l := current(); l != nil {
		return l.verbose
	}
	return false
}
