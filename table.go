package refson

import (
	"fmt"

	"github.com/refson/go-refson/atom"
)

// Absent is the reserved identifier denoting Undefined. All real
// identifiers are dense non-negative table positions.
const Absent = -1

func (c *config) refRecord(id int) map[string]any {
	return map[string]any{c.refKey(): id}
}

func (c *config) buildRecord(kind atom.Kind, args []string) map[string]any {
	as := make([]any, len(args))
	for i, a := range args {
		as[i] = a
	}
	return map[string]any{c.buildKey(): string(kind), c.argsKey(): as}
}

// asRef recognizes a reference record. The bool is false when m carries no
// reference marker at all; a marker with a non-integer value is an error.
func (c *config) asRef(m map[string]any) (int, bool, error) {
	v, ok := m[c.refKey()]
	if !ok {
		return 0, false, nil
	}
	switch id := v.(type) {
	case float64:
		if id != float64(int(id)) {
			return 0, true, fmt.Errorf("%w: non-integer id %v", ErrBadReference, id)
		}
		return int(id), true, nil
	case int:
		return id, true, nil
	case int64:
		return int(id), true, nil
	}
	return 0, true, fmt.Errorf("%w: id %v", ErrBadReference, v)
}

// asBuild recognizes a builder record.
func (c *config) asBuild(m map[string]any) (string, []string, bool, error) {
	v, ok := m[c.buildKey()]
	if !ok {
		return "", nil, false, nil
	}
	name, ok := v.(string)
	if !ok {
		return "", nil, true, fmt.Errorf("%w: builder name %v", ErrUnknownEncoding, v)
	}
	var args []string
	if raw, ok := m[c.argsKey()]; ok {
		seq, ok := raw.([]any)
		if !ok {
			return "", nil, true, fmt.Errorf("%w: builder args %v", ErrUnknownEncoding, raw)
		}
		args = make([]string, len(seq))
		for i, a := range seq {
			s, ok := a.(string)
			if !ok {
				return "", nil, true, fmt.Errorf("%w: builder arg %v", ErrUnknownEncoding, a)
			}
			args[i] = s
		}
	}
	return name, args, true, nil
}
