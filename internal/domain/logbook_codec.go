package domain

import (
	"encoding/json"
	"fmt"
)

// EncodeLogbook renders a logbook in its stored JSON form. A nil logbook is
// stored as an empty array.
func EncodeLogbook(l Logbook) ([]byte, error) {
	if l == nil {
		l = Logbook{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode logbook: %w", err)
	}
	return b, nil
}

// DecodeLogbook parses stored JSON. It never returns a nil logbook on success.
func DecodeLogbook(data []byte) (Logbook, error) {
	var l Logbook
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode logbook: %w", err)
	}
	if l == nil {
		l = Logbook{}
	}
	return l, nil
}
