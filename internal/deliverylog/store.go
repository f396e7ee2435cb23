// Package deliverylog persists a bounded, append-only JSON trace of delivery
// events for postmortem inspection.
package deliverylog

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"ward26-notification-service/internal/logging"
)

// DefaultCapacity is the number of entries kept before the oldest are
// evicted.
const DefaultCapacity = 100

// Entry is one persisted log record. The fixed keys are timestamp, type and
// success; callers merge arbitrary detail fields alongside them.
type Entry map[string]interface{}

// Store serializes appends to a single JSON array file. Every storage
// failure is reduced to a warning: logging must never fail the send path.
type Store struct {
	mu       sync.Mutex
	path     string
	capacity int
	logger   *logging.Logger
}

func NewStore(path string, capacity int, logger *logging.Logger) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{path: path, capacity: capacity, logger: logger}
}

// Append adds one timestamped entry, trimming the file to the most recent
// capacity entries.
func (s *Store) Append(eventType string, success bool, details map[string]interface{}) {
	entry := Entry{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"type":      eventType,
		"success":   success,
	}
	for k, v := range details {
		entry[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLocked()
	if err != nil {
		s.warnf("Failed to read notification log, starting fresh: %v", err)
		entries = nil
	}
	entries = append(entries, entry)
	if len(entries) > s.capacity {
		entries = entries[len(entries)-s.capacity:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		s.warnf("Failed to encode notification log: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.warnf("Failed to write notification log: %v", err)
	}
}

// Entries returns the persisted log, oldest first. Read failures yield an
// empty slice.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLocked()
	if err != nil {
		s.warnf("Failed to read notification log: %v", err)
		return nil
	}
	return entries
}

func (s *Store) readLocked() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) warnf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warnf(format, args...)
	}
}
