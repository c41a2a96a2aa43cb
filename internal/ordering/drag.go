package ordering

import "github.com/fhuszti/catalog-media-go/internal/model"

// Drag follows one pointer gesture over a list. Nothing is reported until
// Drop, and only when the item ended somewhere else.
type Drag struct {
	m       *Manager
	list    model.AssetList
	origin  int
	current int
	ended   bool
}

// StartDrag begins a gesture on the item at index.
func (m *Manager) StartDrag(current model.AssetList, index int) (*Drag, error) {
	if err := checkIndex(current, index); err != nil {
		return nil, err
	}
	return &Drag{m: m, list: current.Clone(), origin: index, current: index}, nil
}

// Over records the slot the item currently hovers.
func (d *Drag) Over(index int) error {
	if err := checkIndex(d.list, index); err != nil {
		return err
	}
	d.current = index
	return nil
}

// Drop ends the gesture and commits the move if the position changed. The
// move applies to current, the owner's list as it is now: the dragged item
// is looked up again, so entries appended during the gesture are kept.
func (d *Drag) Drop(current model.AssetList) (bool, error) {
	if d.ended {
		return false, nil
	}
	d.ended = true
	if d.current == d.origin {
		return false, nil
	}
	from := locate(current, d.list[d.origin], d.origin)
	if from < 0 {
		return false, ErrItemGone
	}
	if err := checkIndex(current, d.current); err != nil {
		return false, err
	}
	if from == d.current {
		return false, nil
	}
	return true, d.m.Move(current, from, d.current)
}

// Cancel ends the gesture without committing anything.
func (d *Drag) Cancel() {
	d.ended = true
}

// Preview returns the order the list would take if dropped now.
func (d *Drag) Preview() model.AssetList {
	out, err := Move(d.list, d.origin, d.current)
	if err != nil {
		return d.list.Clone()
	}
	return out
}
