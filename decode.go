package refson

import (
	"fmt"
	"reflect"

	"github.com/refson/go-refson/debug"
)

// decoder holds one call's resolution state: the raw parsed entries and
// the parallel slice of shells references resolve to.
type decoder struct {
	cfg     *config
	entries []any
	objs    []any
}

// decodeTable runs the two decoder passes over a parsed reference table:
// first revival (shell allocation), then one-level resolution of every
// entry's own fields. Deep structure is already indirected through
// identifiers, so one level per entry is all there is.
func (d *decoder) decodeTable(entries []any) (any, error) {
	if len(entries) == 0 {
		return nil, &DecodeError{Message: "empty reference table", Err: ErrUnknownEncoding}
	}
	d.entries = entries
	d.objs = make([]any, len(entries))

	for i, entry := range entries {
		shell, err := d.revive(i, entry)
		if err != nil {
			return nil, err
		}
		d.objs[i] = shell
	}
	// leaf-first: a value-struct field copies its pointee, so the pointee's
	// own fields must already be in place. Ids are assigned pre-order, so an
	// entry's children always sit at higher positions; back-references in a
	// cycle pass through pointers, which share the shell regardless of order.
	for i := len(entries) - 1; i >= 0; i-- {
		if err := d.resolveEntry(i); err != nil {
			return nil, err
		}
	}
	return d.objs[0], nil
}

// revive allocates the concrete value for one entry. Object entries with a
// type marker become new values of the resolved type when revival is on;
// everything else decodes to the parsed map or slice itself.
func (d *decoder) revive(i int, entry any) (any, error) {
	switch entry := entry.(type) {
	case map[string]any:
		name, ok := entry[d.cfg.typeKey()].(string)
		if !ok || !d.cfg.revive {
			return entry, nil
		}
		rt, err := d.cfg.resolver.TypeFor(name)
		if err != nil {
			return nil, &DecodeError{Path: entryPath(i), Message: name, Err: err}
		}
		if rt.Kind() != reflect.Struct {
			return nil, &DecodeError{
				Path:    entryPath(i),
				Message: fmt.Sprintf("%q resolves to non-struct %s", name, rt),
				Err:     ErrUnknownType,
			}
		}
		if debug.Revive() {
			debug.Logf("refson: entry %d revives as %s\n", i, rt)
		}
		return reflect.New(rt).Interface(), nil
	case []any:
		return entry, nil
	}
	return nil, &DecodeError{
		Path:    entryPath(i),
		Message: fmt.Sprintf("table entry of type %T", entry),
		Err:     ErrUnknownEncoding,
	}
}

func (d *decoder) resolveEntry(i int) error {
	path := entryPath(i)
	switch obj := d.objs[i].(type) {
	case map[string]any:
		for k, raw := range obj {
			if d.cfg.isMarker(k) {
				if d.cfg.purge {
					delete(obj, k)
				} else {
					obj[k] = nil
				}
				continue
			}
			v, err := d.resolveChild(raw, childPath(path, k))
			if err != nil {
				return err
			}
			obj[k] = v
		}
	case []any:
		for j, raw := range obj {
			v, err := d.resolveChild(raw, indexPath(path, j))
			if err != nil {
				return err
			}
			obj[j] = v
		}
	default:
		entry, ok := d.entries[i].(map[string]any)
		if !ok {
			return &DecodeError{Path: path, Message: "revived entry is not an object", Err: ErrUnknownEncoding}
		}
		if err := d.populateStruct(obj, entry, path); err != nil {
			return err
		}
	}
	return nil
}

// resolveChild turns one raw child record into its decoded value: plain
// atoms pass through, reference records resolve into the table, builder
// records construct typed atoms. Anything else is unknown.
func (d *decoder) resolveChild(raw any, path string) (any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		if _, isSeq := raw.([]any); isSeq {
			return nil, &DecodeError{Path: path, Message: "composite not indirected through the table", Err: ErrUnknownEncoding}
		}
		return raw, nil
	}
	id, isRef, err := d.cfg.asRef(m)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if isRef {
		if id == Absent {
			return Undefined, nil
		}
		if id < 0 || id >= len(d.objs) {
			return nil, &DecodeError{
				Path:    path,
				Message: fmt.Sprintf("id %d outside table of %d entries", id, len(d.objs)),
				Err:     ErrBadReference,
			}
		}
		return d.objs[id], nil
	}
	name, args, isBuild, err := d.cfg.asBuild(m)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if isBuild {
		v, err := d.cfg.atoms.Decode(name, args)
		if err != nil {
			return nil, &DecodeError{Path: path, Message: name, Err: err}
		}
		return v, nil
	}
	return nil, &DecodeError{Path: path, Message: "record with no known marker", Err: ErrUnknownEncoding}
}

// decodeRecord handles a top-level document that is a single record rather
// than a table: the root was a typed atom or Undefined.
func (d *decoder) decodeRecord(m map[string]any) (any, error) {
	id, isRef, err := d.cfg.asRef(m)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if isRef {
		if id == Absent {
			return Undefined, nil
		}
		return nil, &DecodeError{
			Message: fmt.Sprintf("id %d with no reference table", id),
			Err:     ErrBadReference,
		}
	}
	name, args, isBuild, err := d.cfg.asBuild(m)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if isBuild {
		v, err := d.cfg.atoms.Decode(name, args)
		if err != nil {
			return nil, &DecodeError{Message: name, Err: err}
		}
		return v, nil
	}
	return nil, &DecodeError{Message: "top-level record with no known marker", Err: ErrUnknownEncoding}
}

func entryPath(i int) string {
	return fmt.Sprintf("table[%d]", i)
}
