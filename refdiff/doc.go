// Package refdiff computes structural diffs between two refson-encoded
// documents. It works on the wire form, entry by entry: since deep
// structure is indirected through the reference table, every entry is at
// most one level deep and the comparison never chases cycles.
//
// # Usage
//
//	changes, err := refdiff.Diff(oldDoc, newDoc)
//	fmt.Print(refdiff.Format(changes))
package refdiff
