// Package gamelog writes structured NDJSON game events to a log file.
package gamelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event names written in the "event" field
const (
	EventSessionStart     = "session_start"
	EventPick             = "pick"
	EventPickRejected     = "pick_rejected"
	EventTurnResolved     = "turn_resolved"
	EventTimeout          = "timeout"
	EventSessionEnd       = "session_end"
	EventLedgerSaved      = "ledger_saved"
	EventLedgerSaveFailed = "ledger_save_failed"
	EventInputError       = "input_error"
)

// Logger owns the log file behind a zerolog logger
type Logger struct {
	zerolog.Logger
	file *os.File
	path string
	mu   sync.Mutex
}

// New creates dir if needed and opens session-{timestamp}.ndjson inside it
func New(dir, level string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("session-%s.ndjson", timestamp))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	return &Logger{
		Logger: newLogger(file, level),
		file:   file,
		path:   path,
	}, nil
}

// NewWriter logs to w; used by tests and callers that manage their own output
func NewWriter(w io.Writer, level string) *Logger {
	return &Logger{Logger: newLogger(w, level)}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Path returns the log file path, empty when not file backed
func (l *Logger) Path() string { return l.path }

// ForSession returns a child logger tagged with a fresh session ID
func (l *Logger) ForSession() (zerolog.Logger, string) {
	id := uuid.NewString()
	return l.With().Str("session_id", id).Logger(), id
}

// Close flushes and closes the log file
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.file.Sync(); err != nil {
		_ = l.file.Close()
		l.file = nil
		return err
	}
	err := l.file.Close()
	l.file = nil
	return err
}
