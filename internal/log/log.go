// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvVar names the environment variable holding the log level.
const EnvVar = "ALSCTL_LOG"

const tracePrefix = "TRACE: "

var (
	traceEnabled bool
	initOnce     sync.Once
)

// levels maps ALSCTL_LOG values to apex levels. trace is debug plus the
// Tracef breadcrumbs.
var levels = map[string]log.Level{
	"trace": log.DebugLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
}

// InitLogger installs the alsctl handler on Apex and sets the level from
// ALSCTL_LOG. Unknown or empty values fall back to error. Output goes to
// stderr so that stdout stays parseable in json and yaml modes.
func InitLogger() {
	initOnce.Do(func() {
		Configure(os.Getenv(EnvVar), os.Stderr)
	})
}

// Configure sets the level and destination explicitly.
func Configure(level string, w io.Writer) {
	level = strings.ToLower(strings.TrimSpace(level))
	apexLevel, ok := levels[level]
	if !ok {
		level, apexLevel = "error", log.ErrorLevel
	}
	traceEnabled = level == "trace"
	log.SetHandler(&LineHandler{Writer: w})
	log.SetLevel(apexLevel)
}

// LineHandler writes one line per entry: timestamp, level letter, message
// and any fields as key=value.
type LineHandler struct {
	Writer io.Writer
	mu     sync.Mutex
}

// HandleLog implements the log.Handler interface.
func (h *LineHandler) HandleLog(e *log.Entry) error {
	message := e.Message
	level := "?"
	if rest, ok := strings.CutPrefix(message, tracePrefix); ok {
		level, message = "T", rest
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	var fields strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", name, e.Fields.Get(name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.Writer, "%s %s %s%s\n",
		time.Now().Format("2006-01-02 15:04:05"), level, message, fields.String())
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry carrying err.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
