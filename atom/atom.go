package atom

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind names a typed-atom kind. The Kind string is also the builder name
// used on the wire.
type Kind string

const (
	Number Kind = "Number"
	BigInt Kind = "BigInt"
	Date   Kind = "Date"
	Regexp Kind = "RegExp"
	Node   Kind = "Node"
)

var (
	ErrUnknownKind = errors.New("unknown atom kind")
	ErrBadArgs     = errors.New("bad atom args")
)

// maxExactInt is the largest integer magnitude a float64 carries exactly.
// Integers beyond it go through a Number builder to avoid drift in JSON.
const maxExactInt = int64(1) << 53

// NodeCodec captures and replays opaque host values as markup text. It is
// an external collaborator; the registry only routes to it.
type NodeCodec interface {
	// CanEncode reports whether v is an opaque value this codec handles.
	CanEncode(v any) bool
	// EncodeNode serializes v to markup.
	EncodeNode(v any) (string, error)
	// DecodeNode reconstructs a value from markup.
	DecodeNode(markup string) (any, error)
}

// Registry is the typed-atom dispatch table. The kinds are fixed; the only
// injectable part is the NodeCodec collaborator for the Node kind.
type Registry struct {
	node NodeCodec
}

// NewRegistry returns a registry. node may be nil, in which case the Node
// kind is disabled on both sides.
func NewRegistry(node NodeCodec) *Registry {
	return &Registry{node: node}
}

// Encode classifies v. If v is a typed atom it returns the kind, the
// builder arguments and ok=true. ok=false means v is not a typed atom and
// the caller should encode it some other way.
func (r *Registry) Encode(v any) (Kind, []string, bool, error) {
	switch x := v.(type) {
	case float64:
		if !isFinite(x) {
			return Number, []string{formatFloat(x)}, true, nil
		}
	case float32:
		f := float64(x)
		if !isFinite(f) {
			return Number, []string{formatFloat(f)}, true, nil
		}
	case int64:
		if x > maxExactInt || x < -maxExactInt {
			return Number, []string{strconv.FormatInt(x, 10)}, true, nil
		}
	case int:
		if int64(x) > maxExactInt || int64(x) < -maxExactInt {
			return Number, []string{strconv.FormatInt(int64(x), 10)}, true, nil
		}
	case uint64:
		if x > uint64(maxExactInt) {
			return Number, []string{strconv.FormatUint(x, 10)}, true, nil
		}
	case uint:
		if uint64(x) > uint64(maxExactInt) {
			return Number, []string{strconv.FormatUint(uint64(x), 10)}, true, nil
		}
	case *big.Int:
		if x != nil {
			return BigInt, []string{x.String()}, true, nil
		}
	case big.Int:
		return BigInt, []string{x.String()}, true, nil
	case time.Time:
		return Date, []string{x.Format(time.RFC3339Nano)}, true, nil
	case *time.Time:
		if x != nil {
			return Date, []string{x.Format(time.RFC3339Nano)}, true, nil
		}
	case *regexp.Regexp:
		if x != nil {
			return Regexp, []string{x.String(), ""}, true, nil
		}
	}
	if r.node != nil && r.node.CanEncode(v) {
		markup, err := r.node.EncodeNode(v)
		if err != nil {
			return Node, nil, true, err
		}
		return Node, []string{markup}, true, nil
	}
	return "", nil, false, nil
}

// Decode constructs an atom from a builder name and its arguments.
func (r *Registry) Decode(name string, args []string) (any, error) {
	switch Kind(name) {
	case Number:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: Number wants 1 arg, got %d", ErrBadArgs, len(args))
		}
		return parseNumber(args[0])
	case BigInt:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: BigInt wants 1 arg, got %d", ErrBadArgs, len(args))
		}
		z, ok := new(big.Int).SetString(args[0], 10)
		if !ok {
			return nil, fmt.Errorf("%w: BigInt %q", ErrBadArgs, args[0])
		}
		return z, nil
	case Date:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: Date wants 1 arg, got %d", ErrBadArgs, len(args))
		}
		t, err := time.Parse(time.RFC3339Nano, args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: Date %q: %v", ErrBadArgs, args[0], err)
		}
		return t, nil
	case Regexp:
		if len(args) == 0 || len(args) > 2 {
			return nil, fmt.Errorf("%w: RegExp wants 1 or 2 args, got %d", ErrBadArgs, len(args))
		}
		src := args[0]
		if len(args) == 2 {
			src = applyFlags(src, args[1])
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("%w: RegExp %q: %v", ErrBadArgs, args[0], err)
		}
		return re, nil
	case Node:
		if r.node == nil {
			return nil, fmt.Errorf("%w: no node codec configured", ErrUnknownKind)
		}
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: Node wants 1 arg, got %d", ErrBadArgs, len(args))
		}
		return r.node.DecodeNode(args[0])
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func formatFloat(f float64) string {
	// FormatFloat yields "NaN", "+Inf", "-Inf" for the non-finite values,
	// all of which ParseFloat accepts back.
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func parseNumber(s string) (any, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: Number %q", ErrBadArgs, s)
	}
	return f, nil
}

// applyFlags folds a flag string of another host's pattern dialect into the
// source. i, m and s map onto inline groups; flags with no meaning here
// (g, u, y, d) are dropped.
func applyFlags(src, flags string) string {
	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			inline.WriteRune(f)
		}
	}
	if inline.Len() == 0 {
		return src
	}
	return "(?" + inline.String() + ")" + src
}
