package sink

import "sync"

// Memory is an in-memory Display, used by tests and polled by the panel app.
type Memory struct {
	mu    sync.Mutex
	value int
	on    bool
}

var _ Display = (*Memory)(nil)

// Show stores the value and marks the display on.
func (m *Memory) Show(value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	m.on = true
	return nil
}

// Off clears the display.
func (m *Memory) Off() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = 0
	m.on = false
	return nil
}

// Value returns the currently shown value and whether the display is on.
func (m *Memory) Value() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.on
}

// MemoryIndicator is an in-memory Indicator counterpart to Memory.
type MemoryIndicator struct {
	mu    sync.Mutex
	level int
	on    bool
}

var _ Indicator = (*MemoryIndicator)(nil)

// SetLevel stores the level and marks the indicator on.
func (m *MemoryIndicator) SetLevel(level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
	m.on = true
	return nil
}

// Off clears the indicator.
func (m *MemoryIndicator) Off() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = 0
	m.on = false
	return nil
}

// Level returns the current level and whether the indicator is on.
func (m *MemoryIndicator) Level() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level, m.on
}
