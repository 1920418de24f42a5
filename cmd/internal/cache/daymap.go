package cache

import "sync"

// DayMap is the day-keyed in-memory cache shared by the calendar views. Keys
// are "YYYY-MM-DD" strings, which order lexicographically like dates.
//
// Writes are whole-map copy-and-replace: a range load swaps the entire
// mapping atomically, and single-key writes clone before updating. Readers
// therefore never observe a partially populated fetch, and overlapping
// fetches degrade to last-write-wins rather than torn entries.
type DayMap[T any] struct {
	mu       sync.RWMutex
	loading  bool
	entries  map[string]T
	from, to string
}

func NewDayMap[T any]() *DayMap[T] {
	return &DayMap[T]{loading: true, entries: map[string]T{}}
}

// BeginLoad marks the cache not-yet-authoritative for the duration of a
// range fetch.
func (m *DayMap[T]) BeginLoad() {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()
}

// EndLoad clears the loading flag without touching entries. Used on failed
// range fetches so the previous mapping stays last-known-good.
func (m *DayMap[T]) EndLoad() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

// ReplaceAll swaps the full mapping and the cached bounds in one step.
func (m *DayMap[T]) ReplaceAll(from, to string, entries map[string]T) {
	next := make(map[string]T, len(entries))
	for k, v := range entries {
		next[k] = v
	}

	m.mu.Lock()
	m.entries = next
	m.from, m.to = from, to
	m.loading = false
	m.mu.Unlock()
}

// Put writes one key via clone-and-swap. Later writes win; there is no
// fencing against an in-flight ReplaceAll.
func (m *DayMap[T]) Put(day string, value T) {
	m.mu.Lock()
	next := make(map[string]T, len(m.entries)+1)
	for k, v := range m.entries {
		next[k] = v
	}
	next[day] = value
	m.entries = next
	m.mu.Unlock()
}

func (m *DayMap[T]) Get(day string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[day]
	return v, ok
}

func (m *DayMap[T]) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Bounds reports the inclusive day range covered by the last ReplaceAll,
// empty strings before the first load.
func (m *DayMap[T]) Bounds() (from, to string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.from, m.to
}

// Contains reports whether a day falls inside the cached bounds.
func (m *DayMap[T]) Contains(day string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.from != "" && day >= m.from && day <= m.to
}

// Snapshot returns a copy of the current mapping.
func (m *DayMap[T]) Snapshot() map[string]T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]T, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

func (m *DayMap[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
