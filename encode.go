package refson

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/refson/go-refson/debug"
)

// identity distinguishes composites that merely share memory: two slices
// over one backing array differ in length, and a pointer at a slice's
// first element shares its address but not its kind.
type identity struct {
	addr uintptr
	len  int
	kind reflect.Kind
}

// encoder holds one call's traversal state. The identity table is keyed by
// the pointer identity of caller-owned nodes, so it must be fresh per call;
// nothing here survives or is shared.
type encoder struct {
	cfg   *config
	ids   map[identity]int
	table []any
}

// encodeRoot produces the top-level wire value: the reference table when
// the root is a composite, the atom's own encoding otherwise.
func (e *encoder) encodeRoot(v any) (any, error) {
	enc, err := e.visit(reflect.ValueOf(v), "")
	if err != nil {
		return nil, err
	}
	if len(e.table) > 0 {
		return e.table, nil
	}
	return enc, nil
}

// visit returns the wire-shaped child for one node: an inline scalar, a
// builder record, or a reference record.
func (e *encoder) visit(val reflect.Value, path string) (any, error) {
	if !val.IsValid() {
		return nil, nil
	}
	if val.Kind() == reflect.Interface {
		if val.IsNil() {
			return nil, nil
		}
		val = val.Elem()
	}
	v := val.Interface()
	if IsUndefined(v) {
		return e.cfg.refRecord(Absent), nil
	}

	kind, args, ok, err := e.cfg.atoms.Encode(v)
	if err != nil {
		return nil, &EncodeError{Path: path, Message: fmt.Sprintf("%s atom", kind), Err: err}
	}
	if ok {
		return e.cfg.buildRecord(kind, args), nil
	}

	switch val.Kind() {
	case reflect.Bool:
		return val.Bool(), nil
	case reflect.String:
		return val.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// oversized integers were already routed to a Number builder
		return val.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return val.Float(), nil
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, &EncodeError{
			Path:    path,
			Message: fmt.Sprintf("%s value", val.Kind()),
			Err:     ErrUnserializable,
		}
	case reflect.Ptr:
		if val.IsNil() {
			return nil, nil
		}
		if val.Type().Elem().Kind() == reflect.Struct {
			return e.visitComposite(val, path)
		}
		return e.visit(val.Elem(), path)
	case reflect.Map, reflect.Slice:
		if val.IsNil() {
			return nil, nil
		}
		return e.visitComposite(val, path)
	case reflect.Array, reflect.Struct:
		return e.visitComposite(val, path)
	}
	return nil, &EncodeError{
		Path:    path,
		Message: fmt.Sprintf("unsupported type %s", val.Type()),
		Err:     ErrUnserializable,
	}
}

// visitComposite assigns val the next identifier, builds its table entry
// and returns a reference record. A repeat visit of a node already in the
// identity table short-circuits to a reference; this is what breaks cycles.
func (e *encoder) visitComposite(val reflect.Value, path string) (any, error) {
	var ident identity
	hasIdentity := false
	switch val.Kind() {
	case reflect.Map, reflect.Ptr:
		ident = identity{addr: val.Pointer(), kind: val.Kind()}
		hasIdentity = true
	case reflect.Slice:
		// zero-capacity slices may share the runtime's zero base address
		if val.Cap() > 0 {
			ident = identity{addr: val.Pointer(), len: val.Len(), kind: reflect.Slice}
			hasIdentity = true
		}
	}
	if hasIdentity {
		if id, ok := e.ids[ident]; ok {
			return e.cfg.refRecord(id), nil
		}
	}

	// pre-order: the id mapping must exist before recursing so a
	// self-reference resolves to a reference record
	id := len(e.table)
	e.table = append(e.table, nil)
	if hasIdentity {
		e.ids[ident] = id
	}
	if debug.Encode() {
		debug.Logf("refson: id %d <- %s (%s)\n", id, path, val.Type())
	}

	var entry any
	var err error
	switch val.Kind() {
	case reflect.Map:
		entry, err = e.mapEntry(val, path)
	case reflect.Slice, reflect.Array:
		entry, err = e.sliceEntry(val, path)
	case reflect.Ptr:
		entry, err = e.structEntry(val.Elem(), path)
	case reflect.Struct:
		entry, err = e.structEntry(val, path)
	}
	if err != nil {
		return nil, err
	}
	e.table[id] = entry
	return e.cfg.refRecord(id), nil
}

func (e *encoder) mapEntry(val reflect.Value, path string) (any, error) {
	if val.Type().Key().Kind() != reflect.String {
		return nil, &EncodeError{
			Path:    path,
			Message: fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}
	keys := make([]string, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	// object fields have no insertion order here; sorted order keeps two
	// encodes of the same graph byte-identical
	sort.Strings(keys)

	entry := make(map[string]any, len(keys))
	for _, k := range keys {
		child := val.MapIndex(reflect.ValueOf(k).Convert(val.Type().Key())).Interface()
		child, keep := e.replace(k, child)
		if !keep {
			continue
		}
		enc, err := e.visit(reflect.ValueOf(child), childPath(path, k))
		if err != nil {
			return nil, err
		}
		entry[k] = enc
	}
	return entry, nil
}

func (e *encoder) sliceEntry(val reflect.Value, path string) (any, error) {
	n := val.Len()
	entry := make([]any, n)
	for i := 0; i < n; i++ {
		enc, err := e.visit(val.Index(i), indexPath(path, i))
		if err != nil {
			return nil, err
		}
		entry[i] = enc
	}
	return entry, nil
}

func (e *encoder) structEntry(val reflect.Value, path string) (any, error) {
	typ := val.Type()
	entry := make(map[string]any, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		child := val.Field(i).Interface()
		child, keep := e.replace(field.Name, child)
		if !keep {
			continue
		}
		enc, err := e.visit(reflect.ValueOf(child), childPath(path, field.Name))
		if err != nil {
			return nil, err
		}
		entry[field.Name] = enc
	}
	if e.cfg.revive {
		name, err := e.cfg.resolver.TypeName(typ)
		if err != nil {
			return nil, &EncodeError{Path: path, Message: typ.String(), Err: err}
		}
		if name != "" {
			rt, err := e.cfg.resolver.TypeFor(name)
			if err != nil {
				return nil, &EncodeError{Path: path, Message: name, Err: err}
			}
			if rt != typ {
				return nil, &EncodeError{
					Path:    path,
					Message: fmt.Sprintf("%q resolves to %s, node is %s", name, rt, typ),
					Err:     ErrConstructorMismatch,
				}
			}
			entry[e.cfg.typeKey()] = name
		}
	}
	return entry, nil
}

// replace runs the configured replacer for one object field. Marker-named
// keys are never passed through it.
func (e *encoder) replace(key string, v any) (any, bool) {
	if e.cfg.replacer == nil || e.cfg.isMarker(key) {
		return v, true
	}
	return e.cfg.replacer(key, v)
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
