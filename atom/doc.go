// Package atom defines the fixed set of typed atoms: values that the wire
// format cannot represent as plain scalars and that are instead carried as
// builder records, a constructor name plus string arguments.
//
// The set is closed. Each kind has an encode rule producing the argument
// list and a decode rule reconstructing the value:
//
//   - Number: non-finite floats (NaN, +Inf, -Inf) and integers whose
//     magnitude exceeds the range a float64 represents exactly
//   - BigInt: *big.Int, decimal string form
//   - Date: time.Time, RFC 3339 string form
//   - RegExp: *regexp.Regexp, (source, flags) pair
//   - Node: opaque host values, delegated to an injected NodeCodec
//
// Dispatch is registry-driven rather than a general reflective constructor
// call: an unknown kind name on the wire is an error, never a lookup in
// some wider namespace.
package atom
