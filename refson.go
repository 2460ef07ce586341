package refson

import (
	"github.com/segmentio/encoding/json"
)

// Marshal encodes v to self-describing JSON. Composite roots produce a
// reference table; atom roots produce a single value. Two Marshal calls on
// an unmodified graph produce identical bytes.
func Marshal(v any, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts...)
	e := &encoder{cfg: cfg, ids: map[identity]int{}}
	top, err := e.encodeRoot(v)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(top)
	if err != nil {
		return nil, &EncodeError{Message: "serializing", Err: err}
	}
	return data, nil
}

// Unmarshal decodes data produced by Marshal. Objects decode to
// map[string]any, or, when revival is enabled and an entry carries a type
// marker, to a pointer to the resolved struct type. Arrays decode to
// []any. Reference topology, including cycles, is reconstructed exactly.
func Unmarshal(data []byte, opts ...Option) (any, error) {
	cfg := newConfig(opts...)
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &DecodeError{Message: "malformed input", Err: err}
	}
	d := &decoder{cfg: cfg}
	switch t := top.(type) {
	case []any:
		return d.decodeTable(t)
	case map[string]any:
		return d.decodeRecord(t)
	}
	return top, nil
}
