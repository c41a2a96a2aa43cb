package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MediaAsset describes one image stored by the storage provider.
type MediaAsset struct {
	URL         string `json:"url"`
	PublicID    string `json:"public_id"`
	OriginalURL string `json:"original_url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	Bytes       int64  `json:"bytes"`
}

// AssetRef is one element of an ordered asset list. Lists persisted before
// the pipeline existed hold bare URLs, which are kept as LegacyURL.
type AssetRef struct {
	Asset     *MediaAsset
	LegacyURL string
}

func FromAsset(a MediaAsset) AssetRef {
	return AssetRef{Asset: &a}
}

func FromURL(url string) AssetRef {
	return AssetRef{LegacyURL: url}
}

// URL returns the delivery URL of the referenced image.
func (r AssetRef) URL() string {
	if r.Asset != nil {
		return r.Asset.URL
	}
	return r.LegacyURL
}

func (r AssetRef) IsLegacy() bool {
	return r.Asset == nil
}

// Equal reports whether both refs point to the same stored image.
func (r AssetRef) Equal(o AssetRef) bool {
	if r.Asset != nil && o.Asset != nil {
		return *r.Asset == *o.Asset
	}
	if r.Asset == nil && o.Asset == nil {
		return r.LegacyURL == o.LegacyURL
	}
	return false
}

func (r AssetRef) MarshalJSON() ([]byte, error) {
	if r.Asset != nil {
		return json.Marshal(r.Asset)
	}
	return json.Marshal(r.LegacyURL)
}

func (r *AssetRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return fmt.Errorf("unmarshal legacy asset url: %w", err)
		}
		*r = AssetRef{LegacyURL: url}
		return nil
	}
	var a MediaAsset
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("unmarshal media asset: %w", err)
	}
	*r = AssetRef{Asset: &a}
	return nil
}

// AssetList is the ordered list owned by a catalog entity. Index 0 is the
// primary image.
type AssetList []AssetRef

// Primary returns the element at index 0.
func (l AssetList) Primary() (AssetRef, bool) {
	if len(l) == 0 {
		return AssetRef{}, false
	}
	return l[0], true
}

// Clone returns a shallow copy so callers never share a backing array.
func (l AssetList) Clone() AssetList {
	if l == nil {
		return nil
	}
	out := make(AssetList, len(l))
	copy(out, l)
	return out
}

func (l AssetList) Equal(o AssetList) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if !l[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Append returns a new list with the given assets added at the end.
func (l AssetList) Append(assets ...MediaAsset) AssetList {
	out := make(AssetList, 0, len(l)+len(assets))
	out = append(out, l...)
	for _, a := range assets {
		out = append(out, FromAsset(a))
	}
	return out
}
