// Package refson encodes arbitrary object graphs, including shared
// references and cycles, to self-describing JSON text and back.
//
// # Overview
//
// Plain JSON can only express trees. refson linearizes a graph into a flat
// reference table: every composite node (map, slice, array, struct) found
// during a depth-first walk is assigned a dense identifier in discovery
// order and becomes one table entry; every link between composites is
// replaced by a lightweight reference record. A node reached twice, whether
// through sharing or through a cycle, is encoded once and referenced after
// that, so decode reconstructs the exact reference topology.
//
// Values JSON cannot carry natively (time.Time, *regexp.Regexp, *big.Int,
// non-finite floats, integers beyond exact float64 range, opaque host
// values) travel as builder records, a constructor name plus string
// arguments, handled by the closed registry in package atom.
//
// # Wire format
//
// The top level of an encoded document is one of:
//
//   - a plain scalar, when the root itself was a plain atom
//   - a single builder or reference record, when the root was a typed atom
//     or Undefined
//   - an array of table entries, when the root was a composite; entry 0 is
//     the root
//
// Records use reserved marker keys built from a configurable prefix,
// "!" by default: !ref, !build, !args and !type. The prefix must agree
// between the encode and decode of a document, and must not collide with
// field names in the caller's data.
//
// # Behavior revival
//
// With ReviveTypes enabled (the default), struct-typed nodes are tagged
// with a stable type name obtained from a resolve.Resolver, and decode
// reconstructs values of that type. With it disabled, type markers are
// omitted and every object decodes to map[string]any. Graph shape and
// typed atoms round-trip either way.
//
// # Undefined
//
// refson.Undefined is a distinguished value, distinct from nil, that
// round-trips through a field. It encodes as a reference to the reserved
// identifier Absent.
//
// # Errors
//
// Encode and decode are all-or-nothing: any failure (a callable in the
// graph, an unresolvable type, a malformed record) aborts the call with no
// partial output. Sentinel errors in this package and in package resolve
// classify the failure; errors.Is works through the wrapping
// *EncodeError / *DecodeError, which carry the field path.
package refson
