// Package logging appends plain error lines and, when tracing is on, JSON
// trace entries to a single log file shared by both frontends.
package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "pie-launcher.log"

var (
	mu      sync.Mutex
	tracing bool
	logPath = defaultLogFile
)

// entry is one trace line.
type entry struct {
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// appendTo opens the log for appending and hands it to write. The file is
// reopened per line so several launcher processes can share it.
func appendTo(what string, write func(f *os.File) error) {
	f, err := os.OpenFile(Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s logging failed: %v\n", what, err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s logging failed: %v\n", what, err)
	}
}

// Error appends err to the log. nil is ignored.
func Error(err error) {
	if err == nil {
		return
	}
	appendTo("error", func(f *os.File) error {
		log.New(f, "", log.LstdFlags).Println(err)
		return nil
	})
}

// Trace appends event with payload as a JSON line when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	line := entry{Time: time.Now().UTC(), Event: event, Payload: payload}
	appendTo("trace", func(f *os.File) error {
		return json.NewEncoder(f).Encode(line)
	})
}

func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return tracing
}

func SetTraceEnabled(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	tracing = enabled
}

// Path returns the current log destination.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Configure points the log at path, creating its directory. A blank path or
// an uncreatable directory selects pie-launcher.log in the working directory.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	logPath = defaultLogFile
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		return
	}
	logPath = path
}
