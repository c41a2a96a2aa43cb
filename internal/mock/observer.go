package mock

import (
	"sync"
	"time"
)

// Observer implements port.Observer and counts recorded events.
type Observer struct {
	mu sync.Mutex

	Stages      map[string]int
	StageErrors map[string]int
	Files       map[string]int
}

func (m *Observer) RecordStage(stage string, d time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Stages == nil {
		m.Stages = map[string]int{}
		m.StageErrors = map[string]int{}
	}
	m.Stages[stage]++
	if err != nil {
		m.StageErrors[stage]++
	}
}

func (m *Observer) RecordFile(status string, sizeBytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Files == nil {
		m.Files = map[string]int{}
	}
	m.Files[status]++
}
