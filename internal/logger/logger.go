package logger

import (
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

var (
	once   sync.Once
	mu     sync.RWMutex
	logger *log.Logger
	debug  atomic.Bool
)

// Init sets up the process-wide logger writing to stdout.
func Init() {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if logger == nil {
			logger = log.New(os.Stdout, "weather-dashboard: ", log.LstdFlags|log.Lshortfile)
		}
	})
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", log.LstdFlags|log.Lshortfile)
}

// SetDebug enables or disables Debug output. It is off by default.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

func Info(message string, v ...interface{}) {
	current().Printf("INFO: "+message, v...)
}

func Error(message string, v ...interface{}) {
	current().Printf("ERROR: "+message, v...)
}

func Debug(message string, v ...interface{}) {
	if !debug.Load() {
		return
	}
	current().Printf("DEBUG: "+message, v...)
}

func current() *log.Logger {
	Init()
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
