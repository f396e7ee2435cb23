package deliverylog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, capacity int) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "notification-logs.json"), capacity, nil)
}

func TestAppendAndRead(t *testing.T) {
	store := newTestStore(t, 100)
	store.Append("whatsapp", true, map[string]interface{}{"phone": "+8801712345678", "sid": "SM123"})

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "whatsapp", entries[0]["type"])
	assert.Equal(t, true, entries[0]["success"])
	assert.Equal(t, "+8801712345678", entries[0]["phone"])
	assert.Equal(t, "SM123", entries[0]["sid"])
	assert.NotEmpty(t, entries[0]["timestamp"])
}

func TestCapacityKeepsMostRecent(t *testing.T) {
	store := newTestStore(t, 100)
	for i := 0; i < 150; i++ {
		store.Append(fmt.Sprintf("evt-%d", i), true, nil)
	}

	entries := store.Entries()
	require.Len(t, entries, 100)
	// oldest-first order preserved within the retained window
	assert.Equal(t, "evt-50", entries[0]["type"])
	assert.Equal(t, "evt-149", entries[99]["type"])
}

func TestCorruptedFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notification-logs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path, 100, nil)
	store.Append("sms", false, map[string]interface{}{"error": "timeout"})

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "sms", entries[0]["type"])
}

func TestMissingFileYieldsEmpty(t *testing.T) {
	store := newTestStore(t, 100)
	assert.Empty(t, store.Entries())
}

func TestDefaultCapacity(t *testing.T) {
	store := newTestStore(t, 0)
	for i := 0; i < DefaultCapacity+10; i++ {
		store.Append("evt", true, nil)
	}
	assert.Len(t, store.Entries(), DefaultCapacity)
}

func TestConcurrentAppends(t *testing.T) {
	store := newTestStore(t, 100)
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 5; j++ {
				store.Append(fmt.Sprintf("worker-%d", n), true, nil)
			}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	assert.Len(t, store.Entries(), 50)
}
