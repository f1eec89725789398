package slot

import "sync"

// Memory is an in-process Slot.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailSet, when non-nil, is returned by every Set.
	FailSet error
}

// NewMemory creates an empty Memory slot.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *Memory) Set(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSet != nil {
		return m.FailSet
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[key] = stored
	return nil
}
