package refson

import (
	"fmt"
	"reflect"
)

// populateStruct fills a revived *T shell from its raw table entry. Fields
// are matched by exported name, case-sensitive; entry keys with no
// matching field are dropped, the way a revived object simply would not
// have them.
func (d *decoder) populateStruct(ptr any, entry map[string]any, path string) error {
	sv := reflect.ValueOf(ptr).Elem()
	st := sv.Type()
	for k, raw := range entry {
		if d.cfg.isMarker(k) {
			continue
		}
		v, err := d.resolveChild(raw, childPath(path, k))
		if err != nil {
			return err
		}
		field, ok := st.FieldByName(k)
		if !ok || !field.IsExported() {
			continue
		}
		if err := setField(sv.FieldByIndex(field.Index), v, childPath(path, k)); err != nil {
			return err
		}
	}
	return nil
}

// setField assigns a decoded value to a struct field, converting across
// the numeric kinds JSON collapses to float64.
func setField(fv reflect.Value, v any, path string) error {
	if v == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}
	if IsUndefined(v) {
		if fv.Kind() == reflect.Interface {
			fv.Set(reflect.ValueOf(v))
		} else {
			fv.Set(reflect.Zero(fv.Type()))
		}
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(fv.Type()) {
		fv.Set(rv)
		return nil
	}
	// a value-struct field is indirected through the table on encode, so
	// the reference resolves to the revived *T shell; the field gets its
	// own copy of the pointee
	if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Type().Elem().AssignableTo(fv.Type()) {
		fv.Set(rv.Elem())
		return nil
	}

	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := asInt(v)
		if !ok || fv.OverflowInt(i) {
			return typeMismatch(fv, v, path)
		}
		fv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := asInt(v)
		if !ok || i < 0 || fv.OverflowUint(uint64(i)) {
			return typeMismatch(fv, v, path)
		}
		fv.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		switch x := v.(type) {
		case float64:
			fv.SetFloat(x)
			return nil
		case int64:
			fv.SetFloat(float64(x))
			return nil
		}
	case reflect.Ptr:
		// a reference into the table may hand us *T where the field is
		// also *T; that case was assignable above. Anything else here is
		// a shape mismatch.
	}
	if rv.Type().ConvertibleTo(fv.Type()) && rv.Kind() == reflect.String && fv.Kind() == reflect.String {
		fv.Set(rv.Convert(fv.Type()))
		return nil
	}
	return typeMismatch(fv, v, path)
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case float64:
		if x != float64(int64(x)) {
			return 0, false
		}
		return int64(x), true
	case int64:
		return x, true
	case int:
		return int64(x), true
	}
	return 0, false
}

func typeMismatch(fv reflect.Value, v any, path string) error {
	return &DecodeError{
		Path:    path,
		Message: fmt.Sprintf("cannot assign %T to field of type %s", v, fv.Type()),
	}
}
