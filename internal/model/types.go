package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MediaKeys is the ordered list of object keys attached to a submission,
// stored as a JSON column.
type MediaKeys []string

func (k MediaKeys) Value() (driver.Value, error) {
	if k == nil {
		k = MediaKeys{}
	}
	b, err := json.Marshal(k)
	if err != nil {
		return nil, fmt.Errorf("marshal MediaKeys: %w", err)
	}
	return b, nil
}

func (k *MediaKeys) Scan(src interface{}) error {
	if src == nil {
		*k = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("MediaKeys.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, k); err != nil {
		return fmt.Errorf("unmarshal MediaKeys: %w", err)
	}
	return nil
}

// Contains reports whether the given object key is attached.
func (k MediaKeys) Contains(key string) bool {
	for _, existing := range k {
		if existing == key {
			return true
		}
	}
	return false
}

// Without returns a copy with the given object key removed, preserving order.
func (k MediaKeys) Without(key string) MediaKeys {
	out := make(MediaKeys, 0, len(k))
	for _, existing := range k {
		if existing != key {
			out = append(out, existing)
		}
	}
	return out
}
