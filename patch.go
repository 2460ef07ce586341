package refson

import (
	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies an RFC 6902 patch to an encoded document and returns the
// patched encoding. Patch paths address the wire form, i.e. table entries
// and their raw fields, not the decoded graph.
func Patch(doc, patch []byte) ([]byte, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, &DecodeError{Message: "decoding patch", Err: err}
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, &DecodeError{Message: "applying patch", Err: err}
	}
	return out, nil
}
