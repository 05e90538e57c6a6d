package util

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

var LoggingEnabled = false

// LogEndpoint is the local log collector LogF posts to. Empty sends the
// output to stderr instead; stdout carries language server traffic.
var LogEndpoint = "http://localhost:8006/log"

var (
	loggerMu   sync.Mutex
	loggerOnce sync.Once
	logger     logr.Logger
)

// NewLogger returns a logger writing one line per entry to w.
func NewLogger(w io.Writer) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintln(w, prefix, args)
		} else {
			fmt.Fprintln(w, args)
		}
	}, funcr.Options{})
}

func httpLogger(endpoint string) logr.Logger {
	return funcr.New(func(prefix, args string) {
		go func() {
			resp, err := http.Post(endpoint, "text/plain", strings.NewReader(args))
			if err == nil {
				resp.Body.Close()
			}
		}()
	}, funcr.Options{})
}

// Logger returns the debug logger used by LogF.
func Logger() logr.Logger {
	loggerOnce.Do(func() {
		loggerMu.Lock()
		defer loggerMu.Unlock()
		if logger.GetSink() != nil {
			return
		}
		if LogEndpoint != "" {
			logger = httpLogger(LogEndpoint)
		} else {
			logger = NewLogger(os.Stderr)
		}
	})

	loggerMu.Lock()
	defer loggerMu.Unlock()
	return logger
}

// SetLogger replaces the debug logger.
func SetLogger(l logr.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	Logger().Info(fmt.Sprintf(format, args...))
}
