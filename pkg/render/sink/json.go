package sink

import (
	"encoding/json"
	"fmt"
)

// RenderJSON exports the field as a pretty-printed JSON document: run
// metadata, the field settings, and every badge with its position in item
// order. The output round-trips through [ParseJSON].
func RenderJSON(f Field) ([]byte, error) {
	if f.Badges == nil {
		f.Badges = []Badge{}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal field: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseJSON reads a field previously written by [RenderJSON].
func ParseJSON(data []byte) (Field, error) {
	var f Field
	if err := json.Unmarshal(data, &f); err != nil {
		return Field{}, fmt.Errorf("parse field: %w", err)
	}
	return f, nil
}
