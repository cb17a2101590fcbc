package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
)

// Log levels
const (
	LevelError = iota
	LevelWarning
	LevelInfo
	LevelDebug
)

var (
	Info    *log.Logger
	Debug   *log.Logger
	Warning *log.Logger
	Error   *log.Logger

	// Diagnostics stay off stdout, which carries the tool's answer.
	// Warnings are shown by default so skipped table rows are visible.
	LogLevel = LevelWarning

	useColors = true
)

var output io.Writer = os.Stderr

// Initialize points every logger at w (stderr when nil)
func Initialize(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output = w

	flags := log.Ldate | log.Ltime | log.Lshortfile
	Info = log.New(w, prefix(colorBlue, "INFO: "), flags)
	Debug = log.New(w, prefix(colorPurple, "DEBUG: "), flags)
	Warning = log.New(w, prefix(colorYellow, "WARNING: "), flags)
	Error = log.New(w, prefix(colorRed, "ERROR: "), flags)
}

func prefix(color, label string) string {
	if !useColors {
		return label
	}
	return color + label + colorReset
}

// DisableColors disables colored prefixes
func DisableColors() {
	useColors = false
	Initialize(output)
}

// SetLevel sets the logging level
func SetLevel(level int) {
	if level >= LevelError && level <= LevelDebug {
		LogLevel = level
	}
}

func Infof(format string, v ...interface{}) {
	if LogLevel >= LevelInfo {
		Info.Output(2, fmt.Sprintf(format, v...))
	}
}

func Debugf(format string, v ...interface{}) {
	if LogLevel >= LevelDebug {
		Debug.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warningf(format string, v ...interface{}) {
	if LogLevel >= LevelWarning {
		Warning.Output(2, fmt.Sprintf(format, v...))
	}
}

func Errorf(format string, v ...interface{}) {
	if LogLevel >= LevelError {
		Error.Output(2, fmt.Sprintf(format, v...))
	}
}

func init() {
	Initialize(nil)
}
