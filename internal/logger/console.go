// Package logger provides logging implementations for haiku runs.
//
// ConsoleLogger writes levelled, timestamped lines to a writer (colored on a
// terminal). FileLogger keeps one log file per run under a log directory.
// Both are safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/haiku/internal/display"
	"github.com/harrison/haiku/internal/models"
)

// ConsoleLogger logs scan progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is enabled when the writer itself is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: display.ColorEnabled(writer),
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// LogScan logs the outcome of scanning one source.
// Detections log at INFO, misses at DEBUG, failures at ERROR.
// Format: "[HH:MM:SS] [INFO] haiku found in <source> (5-7-5, lines 3-5)"
func (cl *ConsoleLogger) LogScan(outcome models.ScanOutcome) {
	level, message := describeScan(outcome)
	cl.logWithLevel(level, message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !allows(cl.logLevel, strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// colorLevel wraps a level label in its ANSI color. Callers decide whether
// color is wanted, so the package-wide color.NoColor is bypassed.
func colorLevel(level string) string {
	var c *color.Color
	switch level {
	case "TRACE":
		c = color.New(color.FgHiBlack)
	case "DEBUG":
		c = color.New(color.FgCyan)
	case "INFO":
		c = color.New(color.FgBlue)
	case "WARN":
		c = color.New(color.FgYellow)
	case "ERROR":
		c = color.New(color.FgRed)
	default:
		return level
	}
	c.EnableColor()
	return c.Sprint(level)
}

// describeScan picks the level and message for a scan outcome.
func describeScan(outcome models.ScanOutcome) (string, string) {
	switch {
	case outcome.Err != nil:
		return "ERROR", fmt.Sprintf("scan of %s failed: %v", outcome.Source, outcome.Err)
	case outcome.Result.Found:
		r := outcome.Result
		return "INFO", fmt.Sprintf("haiku found in %s (%d-%d-%d, lines %d-%d)",
			outcome.Source, r.Counts[0], r.Counts[1], r.Counts[2], r.Start+1, r.Start+3)
	default:
		return "DEBUG", fmt.Sprintf("no haiku in %s", outcome.Source)
	}
}

// timestamp returns the current time formatted as HH:MM:SS.
func timestamp() string {
	return time.Now().Format("15:04:05")
}
