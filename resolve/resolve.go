// Package resolve maps between runtime types and the stable names used to
// revive behavior on decode. The mapping is an explicit, injected registry;
// nothing is ever looked up in ambient process state.
package resolve

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrUnresolvable means a type has no registered name and so cannot
	// be tagged for revival.
	ErrUnresolvable = errors.New("unresolvable type")
	// ErrUnknownType means a name on the wire has no registered type.
	ErrUnknownType = errors.New("unknown type name")
)

// Resolver converts between a runtime type and its stable name.
//
// TypeName returns "" with a nil error for types that need no revival
// info. TypeFor is the inverse lookup used during the decode revival pass.
type Resolver interface {
	TypeName(t reflect.Type) (string, error)
	TypeFor(name string) (reflect.Type, error)
}

// Registry is a bidirectional name<->type map. The zero value is not
// usable; use NewRegistry. Registration is typically done at init time but
// the registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

func NewRegistry() *Registry {
	return &Registry{
		byName: map[string]reflect.Type{},
		byType: map[reflect.Type]string{},
	}
}

// Register binds name to the struct type of v. v may be a value, a pointer
// to one, or a reflect.Type. A name or type already bound otherwise is
// rejected; the binding stays one-to-one in both directions.
func (r *Registry) Register(name string, v any) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnresolvable)
	}
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %q must name a struct type", ErrUnresolvable, name)
	}
	if t.Name() == "" {
		return fmt.Errorf("%w: %q names an anonymous type", ErrUnresolvable, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byName[name]; ok && prev != t {
		return fmt.Errorf("%w: %q already bound to %s", ErrUnresolvable, name, prev)
	}
	if prev, ok := r.byType[t]; ok && prev != name {
		return fmt.Errorf("%w: %s already bound to %q", ErrUnresolvable, t, prev)
	}
	r.byName[name] = t
	r.byType[t] = name
	return nil
}

func (r *Registry) TypeName(t reflect.Type) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byType[t]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnresolvable, t)
	}
	return name, nil
}

func (r *Registry) TypeFor(name string) (reflect.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// Default is the registry used when no resolver is configured explicitly.
var Default = NewRegistry()

// Register binds name to v's type in the Default registry.
func Register(name string, v any) error {
	return Default.Register(name, v)
}
