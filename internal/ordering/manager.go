package ordering

import (
	"context"
	"sync"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/model"
)

type opKind int

const (
	opMove opKind = iota
	opRemove
)

type op struct {
	kind     opKind
	from, to int
	// item is the element at from when the op was issued.
	item model.AssetRef
}

// Manager reports reorders and removals to the owner of an asset list. It
// keeps no copy of the list: every call receives the owner's current value.
//
// While an append is in flight (BeginAppend/EndAppend), operations are
// queued and replayed in order against the list the owner holds once the
// append has settled. Every queued op was issued against the same
// unchanged list, so on replay its element is looked up again by value
// instead of trusting an index earlier replays may have shifted.
type Manager struct {
	onReorder func(model.AssetList)
	onRemove  func(int)

	mu        sync.Mutex
	appending int
	queued    []op
}

func NewManager(onReorder func(model.AssetList), onRemove func(int)) *Manager {
	return &Manager{onReorder: onReorder, onRemove: onRemove}
}

// Move commits a reorder when from and to differ.
func (m *Manager) Move(current model.AssetList, from, to int) error {
	if _, err := Move(current, from, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	o := op{kind: opMove, from: from, to: to, item: current[from]}
	if m.enqueue(o) {
		return nil
	}
	m.apply(current, o)
	return nil
}

// Nudge moves the element at index by delta positions, clamped to the list
// bounds. It backs keyboard reordering.
func (m *Manager) Nudge(current model.AssetList, index, delta int) error {
	if err := checkIndex(current, index); err != nil {
		return err
	}
	to := index + delta
	if to < 0 {
		to = 0
	}
	if to > len(current)-1 {
		to = len(current) - 1
	}
	return m.Move(current, index, to)
}

// Remove reports the removal of the element at index.
func (m *Manager) Remove(current model.AssetList, index int) error {
	if err := checkIndex(current, index); err != nil {
		return err
	}
	o := op{kind: opRemove, from: index, item: current[index]}
	if m.enqueue(o) {
		return nil
	}
	m.apply(current, o)
	return nil
}

// BeginAppend marks an append as in flight.
func (m *Manager) BeginAppend() {
	m.mu.Lock()
	m.appending++
	m.mu.Unlock()
}

// EndAppend settles one append and replays the queued operations once no
// append remains in flight.
func (m *Manager) EndAppend(current model.AssetList) {
	m.mu.Lock()
	if m.appending > 0 {
		m.appending--
	}
	if m.appending > 0 || len(m.queued) == 0 {
		m.mu.Unlock()
		return
	}
	queued := m.queued
	m.queued = nil
	m.mu.Unlock()

	list := current
	for _, o := range queued {
		next, ok := m.apply(list, rebase(list, o))
		if !ok {
			logger.Warnf(context.Background(), "⚠️  Dropped queued reorder %+v: no longer valid for a list of %d", o, len(list))
			continue
		}
		list = next
	}
}

// Pending reports how many operations wait for an append to settle.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queued)
}

func (m *Manager) enqueue(o op) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appending == 0 {
		return false
	}
	m.queued = append(m.queued, o)
	return true
}

func (m *Manager) apply(list model.AssetList, o op) (model.AssetList, bool) {
	switch o.kind {
	case opMove:
		next, err := Move(list, o.from, o.to)
		if err != nil {
			return list, false
		}
		if o.from != o.to && m.onReorder != nil {
			m.onReorder(next)
		}
		return next, true
	case opRemove:
		next, err := RemoveAt(list, o.from)
		if err != nil {
			return list, false
		}
		if m.onRemove != nil {
			m.onRemove(o.from)
		}
		return next, true
	}
	return list, false
}

// rebase points a queued op at its element's position in list. The move
// target keeps its slot, clamped to the list. An element that is gone
// leaves from at -1 so apply rejects the op.
func rebase(list model.AssetList, o op) op {
	o.from = locate(list, o.item, o.from)
	if o.kind == opMove && o.to > len(list)-1 {
		o.to = len(list) - 1
	}
	return o
}
