// Package ordering reorders and prunes caller-owned asset lists. Every
// operation returns a new list; index 0 stays the primary image and indices
// stay dense.
package ordering

import (
	"errors"
	"fmt"

	"github.com/fhuszti/catalog-media-go/internal/model"
)

var (
	ErrIndexOutOfRange = errors.New("ordering: index out of range")
	ErrItemGone        = errors.New("ordering: item is no longer in the list")
)

// Move removes the element at from and inserts it at to.
func Move(list model.AssetList, from, to int) (model.AssetList, error) {
	if err := checkIndex(list, from); err != nil {
		return nil, err
	}
	if err := checkIndex(list, to); err != nil {
		return nil, err
	}
	out := list.Clone()
	if from == to {
		return out, nil
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(model.AssetList{item}, out[to:]...)...)
	return out, nil
}

// RemoveAt returns the list without the element at index.
func RemoveAt(list model.AssetList, index int) (model.AssetList, error) {
	if err := checkIndex(list, index); err != nil {
		return nil, err
	}
	out := make(model.AssetList, 0, len(list)-1)
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)
	return out, nil
}

func checkIndex(list model.AssetList, i int) error {
	if i < 0 || i >= len(list) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(list))
	}
	return nil
}

// locate returns the index of item in list, preferring hint when the item
// still sits there, or -1.
func locate(list model.AssetList, item model.AssetRef, hint int) int {
	if hint >= 0 && hint < len(list) && list[hint].Equal(item) {
		return hint
	}
	for i, r := range list {
		if r.Equal(item) {
			return i
		}
	}
	return -1
}
