package refdiff

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/segmentio/encoding/json"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/refson/go-refson/debug"
)

// Change records a single difference between two encoded documents. From
// is nil for an addition, To is nil for a removal.
type Change struct {
	Path string
	From any
	To   any
}

// Diff parses two encoded documents and compares them. Both sides must be
// valid JSON; they need not share a shape.
func Diff(a, b []byte) ([]Change, error) {
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return nil, fmt.Errorf("left document: %w", err)
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return nil, fmt.Errorf("right document: %w", err)
	}
	var out []Change
	diffValue("$", av, bv, &out)
	if debug.Diff() {
		debug.Logf("refdiff: %d changes\n", len(out))
	}
	return out, nil
}

func diffValue(path string, a, b any, out *[]Change) {
	am, aIsObj := a.(map[string]any)
	bm, bIsObj := b.(map[string]any)
	if aIsObj && bIsObj {
		diffObject(path, am, bm, out)
		return
	}
	as, aIsSeq := a.([]any)
	bs, bIsSeq := b.([]any)
	if aIsSeq && bIsSeq {
		diffSeq(path, as, bs, out)
		return
	}
	if !reflect.DeepEqual(a, b) {
		*out = append(*out, Change{Path: path, From: a, To: b})
	}
}

// diffObject lines the two key sets up with a rune-level diff: each field
// name maps to one rune, so equal/insert/delete runs translate directly to
// kept, added and removed fields.
func diffObject(path string, a, b map[string]any, out *[]Change) {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	aKeys := sortedKeys(a)
	bKeys := sortedKeys(b)
	aRunes := mapFieldsTo(fieldMap, runeMap, aKeys)
	bRunes := mapFieldsTo(fieldMap, runeMap, bKeys)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(aRunes, bRunes, false)
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for _, r := range diff.Text {
				k := runeMap[r]
				*out = append(*out, Change{Path: fieldPath(path, k), From: a[k]})
			}
		case diffpatch.DiffEqual:
			for _, r := range diff.Text {
				k := runeMap[r]
				diffValue(fieldPath(path, k), a[k], b[k], out)
			}
		case diffpatch.DiffInsert:
			for _, r := range diff.Text {
				k := runeMap[r]
				*out = append(*out, Change{Path: fieldPath(path, k), To: b[k]})
			}
		}
	}
}

func diffSeq(path string, a, b []any, out *[]Change) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		diffValue(fmt.Sprintf("%s[%d]", path, i), a[i], b[i], out)
	}
	for i := n; i < len(a); i++ {
		*out = append(*out, Change{Path: fmt.Sprintf("%s[%d]", path, i), From: a[i]})
	}
	for i := n; i < len(b); i++ {
		*out = append(*out, Change{Path: fmt.Sprintf("%s[%d]", path, i), To: b[i]})
	}
}

func mapFieldsTo(m map[string]rune, im map[rune]string, keys []string) []rune {
	rs := make([]rune, len(keys))
	for i, k := range keys {
		r, ok := m[k]
		if !ok {
			r = rune(len(m))
			m[k] = r
			im[r] = k
		}
		rs[i] = r
	}
	return rs
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fieldPath(path, key string) string {
	return path + "." + key
}

// Format renders changes one per line, additions as "+", removals as "-"
// and replacements as "from -> to".
func Format(changes []Change) string {
	var sb strings.Builder
	for _, c := range changes {
		switch {
		case c.From == nil && c.To != nil:
			fmt.Fprintf(&sb, "+ %s: %s\n", c.Path, render(c.To))
		case c.To == nil && c.From != nil:
			fmt.Fprintf(&sb, "- %s: %s\n", c.Path, render(c.From))
		default:
			fmt.Fprintf(&sb, "~ %s: %s -> %s\n", c.Path, render(c.From), render(c.To))
		}
	}
	return sb.String()
}

func render(v any) string {
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(d)
}
