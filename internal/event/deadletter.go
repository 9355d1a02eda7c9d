package event

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// DeadLetterSchemaVersion is bumped whenever DeadLetterEntry changes shape
const DeadLetterSchemaVersion = "1.1"

// DeadLetterWriter appends events that could not be delivered as JSON lines
type DeadLetterWriter struct {
	file *os.File
	mu   sync.Mutex
	now  func() time.Time
}

// DeadLetterEntry is one line of the dead-letter file
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	HiveID        string    `json:"hive_id,omitempty"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewDeadLetterWriter opens path for appending, creating its directory
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dead letter dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f, now: time.Now}, nil
}

// Write records event after attempts failed deliveries
func (dlw *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		HiveID:        event.HiveID(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	dlw.mu.Lock()
	defer dlw.mu.Unlock()
	entry.Timestamp = dlw.now()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal dead letter for %s: %w", event.Type, err)
	}
	if _, err := dlw.file.Write(append(data, '\n')); err != nil {
		return err
	}

	logger.FromContext(context.Background()).Warn(LogMsgEventDeadLettered,
		logger.AttrKeyHiveID, entry.HiveID,
		"event_type", event.Type,
		"attempts", attempts,
		"error", entry.LastError)
	return nil
}

// Close closes the dead-letter file
func (dlw *DeadLetterWriter) Close() error {
	return dlw.file.Close()
}

// ReadDeadLetters parses a dead-letter file. Payloads come back as generic
// maps; use DecodePayload to recover the typed payload.
func ReadDeadLetters(r io.Reader) ([]DeadLetterEntry, error) {
	var entries []DeadLetterEntry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e DeadLetterEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("dead letter line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, sc.Err()
}
