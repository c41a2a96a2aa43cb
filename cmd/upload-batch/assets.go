package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fhuszti/catalog-media-go/internal/model"
)

// loadList reads the asset list; a missing file is an empty list.
func loadList(path string) (model.AssetList, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.AssetList{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read asset list: %w", err)
	}
	var list model.AssetList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode asset list %s: %w", path, err)
	}
	return list, nil
}

// saveList replaces the file through a rename so readers never see a
// partial list.
func saveList(path string, list model.AssetList) error {
	if list == nil {
		list = model.AssetList{}
	}
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode asset list: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".assets-*.json")
	if err != nil {
		return fmt.Errorf("create temp list: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp list: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp list: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace asset list: %w", err)
	}
	return nil
}
