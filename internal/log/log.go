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

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "DBBA_LOG"

const tracePrefix = "TRACE: "

var (
	traceEnabled bool

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// levels maps DBBA_LOG values onto apex levels. trace is debug plus the
// Tracef lines.
var levels = map[string]log.Level{
	"trace": log.DebugLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
}

// letters abbreviates levels in log lines.
var letters = map[log.Level]string{
	log.DebugLevel: "D",
	log.InfoLevel:  "I",
	log.WarnLevel:  "W",
	log.ErrorLevel: "E",
	log.FatalLevel: "F",
}

// InitLogger installs CustomHandler at the DBBA_LOG level (default error).
// Lines go to stderr so a report written to stdout stays clean.
func InitLogger() {
	env := strings.ToLower(os.Getenv(EnvLevel))
	traceEnabled = env == "trace"
	log.SetHandler(&CustomHandler{})
	log.SetLevel(ParseLevel(env))
}

// ParseLevel maps a DBBA_LOG value onto an apex level. Unknown values fall
// back to error.
func ParseLevel(s string) log.Level {
	if l, ok := levels[strings.ToLower(s)]; ok {
		return l
	}
	return log.ErrorLevel
}

// SetOutput redirects the handler; nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// CustomHandler writes "<YYYY-MM-DD HH:MM:SS> <L> <message>[: error]".
type CustomHandler struct{}

func (h *CustomHandler) HandleLog(e *log.Entry) error {
	message := e.Message
	level, ok := letters[e.Level]
	if !ok {
		level = "?"
	}
	if rest, found := strings.CutPrefix(message, tracePrefix); found {
		level, message = "T", rest
	}
	if err, ok := e.Fields["error"]; ok {
		message = fmt.Sprintf("%s: %v", message, err)
	}

	mu.Lock()
	defer mu.Unlock()
	_, err := fmt.Fprintf(out, "%s %s %s\n", time.Now().Format("2006-01-02 15:04:05"), level, message)
	return err
}

// Tracef logs below debug, only when DBBA_LOG=trace.
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

func Debugf(format string, args ...interface{}) { log.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { log.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { log.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }
func Debug(msg string)                          { log.Debug(msg) }

// WithError returns an entry carrying err, printed after the message.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
