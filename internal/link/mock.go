package link

import "sync"

// MockChannel is an in-memory Channel for tests. Inbound lines are handed
// out one per ReadLine call; written lines are recorded.
type MockChannel struct {
	mu       sync.Mutex
	inbound  []string
	written  []string
	writeErr error
	closed   bool
}

// NewMockChannel creates a MockChannel with optional queued inbound lines.
func NewMockChannel(lines ...string) *MockChannel {
	return &MockChannel{inbound: lines}
}

// Push queues inbound lines.
func (m *MockChannel) Push(lines ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inbound = append(m.inbound, lines...)
}

// SetWriteError makes subsequent writes fail with err.
func (m *MockChannel) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Written returns a copy of every line written so far.
func (m *MockChannel) Written() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.written...)
}

// Closed reports whether Close was called.
func (m *MockChannel) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// ReadLine pops the next queued inbound line.
func (m *MockChannel) ReadLine() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.inbound) == 0 {
		return "", false
	}
	line := m.inbound[0]
	m.inbound = m.inbound[1:]
	return line, true
}

// WriteLine records line unless a write error is set.
func (m *MockChannel) WriteLine(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.written = append(m.written, line)
	return nil
}

// Close marks the channel closed.
func (m *MockChannel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
