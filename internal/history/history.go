// Package history keeps the most recent solve outcomes for display.
//
// The solver core never touches it: history is caller-owned state, the way a
// results table belongs to the page that renders it.
package history

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexshd/rootfind"
)

// Entry is one row of the results table.
type Entry struct {
	ID         uuid.UUID       `json:"id"`
	At         time.Time       `json:"at"`
	Method     rootfind.Method `json:"method"`
	Params     rootfind.Params `json:"params"`
	Root       float64         `json:"root"`
	Iterations int             `json:"iterations"`
	Error      string          `json:"error,omitempty"`
}

// Log is a fixed-size ring buffer of entries.
//
// Writes overwrite the oldest entry once the buffer is full. Safe for
// concurrent use.
type Log struct {
	mu         sync.RWMutex
	entries    []Entry // Ring buffer
	maxEntries int     // Buffer size
	writeIndex int     // Next write position
	total      int64   // Entries ever recorded (monotonic)
	now        func() time.Time
}

// New creates a log holding at most maxEntries rows.
func New(maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = 100
	}

	return &Log{
		entries:    make([]Entry, maxEntries),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Record appends the outcome of one solve and returns the stored entry.
func (l *Log) Record(p rootfind.Params, res rootfind.Result, err error) Entry {
	e := Entry{
		ID:         uuid.New(),
		Method:     p.Method,
		Params:     p,
		Root:       res.Root,
		Iterations: res.Iterations,
	}
	if err != nil {
		e.Error = err.Error()
		if last, ok := rootfind.LastEstimate(err); ok && !math.IsNaN(last) && !math.IsInf(last, 0) {
			e.Root = last
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e.At = l.now()
	l.entries[l.writeIndex] = e
	l.writeIndex = (l.writeIndex + 1) % l.maxEntries
	l.total++

	return e
}

// Entries returns the retained rows, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := l.lenLocked()
	out := make([]Entry, 0, n)
	start := (l.writeIndex - n + l.maxEntries) % l.maxEntries
	for i := 0; i < n; i++ {
		out = append(out, l.entries[(start+i)%l.maxEntries])
	}
	return out
}

// Len returns the number of retained rows.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lenLocked()
}

// Total returns the number of rows ever recorded, including overwritten ones.
func (l *Log) Total() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// Reset drops all rows.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make([]Entry, l.maxEntries)
	l.writeIndex = 0
	l.total = 0
}

func (l *Log) lenLocked() int {
	if l.total < int64(l.maxEntries) {
		return int(l.total)
	}
	return l.maxEntries
}
