package refson

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDeterministic(t *testing.T) {
	shared := map[string]any{"k": "v"}
	in := map[string]any{
		"zebra": 1,
		"apple": []any{shared, shared, nil},
		"mango": map[string]any{"deep": []any{1.25, false}},
	}
	a, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("two encodes differ:\n%s\n%s", a, b)
	}
}

func TestCallableRejected(t *testing.T) {
	in := map[string]any{
		"ok": 1,
		"fn": func() {},
	}
	_, err := Marshal(in)
	if err == nil {
		t.Fatal("expected error for callable value")
	}
	if !errors.Is(err, ErrUnserializable) {
		t.Errorf("expected ErrUnserializable, got %v", err)
	}
}

func TestChannelRejected(t *testing.T) {
	_, err := Marshal([]any{make(chan int)})
	if !errors.Is(err, ErrUnserializable) {
		t.Errorf("expected ErrUnserializable, got %v", err)
	}
}

func TestReplacerOmission(t *testing.T) {
	in := map[string]any{"a": 1, "b": 2}
	data, err := Marshal(in, WithReplacer(func(key string, v any) (any, bool) {
		if key == "b" {
			return nil, false
		}
		return v, true
	}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{"a": float64(1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("replacer omission (-want +got):\n%s", diff)
	}
}

func TestReplacerRewrite(t *testing.T) {
	in := map[string]any{"secret": "hunter2"}
	data, err := Marshal(in, WithReplacer(func(key string, v any) (any, bool) {
		if key == "secret" {
			return "****", true
		}
		return v, true
	}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.(map[string]any)["secret"] != "****" {
		t.Errorf("expected rewrite, got %#v", got)
	}
}

func TestReplacerSkipsArrayElements(t *testing.T) {
	calls := 0
	in := map[string]any{"xs": []any{1, 2, 3}}
	_, err := Marshal(in, WithReplacer(func(key string, v any) (any, bool) {
		calls++
		return v, true
	}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// once for "xs", never for its elements
	if calls != 1 {
		t.Errorf("expected 1 replacer call, got %d", calls)
	}
}

func TestAliasedSubslice(t *testing.T) {
	s := []any{"a", "b", "c"}
	data, err := Marshal([]any{s, s[:1]})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	arr := got.([]any)
	if len(arr) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(arr))
	}
	full := arr[0].([]any)
	head := arr[1].([]any)
	if len(full) != 3 || len(head) != 1 {
		t.Errorf("aliased slices conflated: len %d and %d", len(full), len(head))
	}
	if head[0] != "a" {
		t.Errorf("bad sub-slice element: %#v", head[0])
	}
}

func TestSameSliceSharesEntry(t *testing.T) {
	s := []any{"a", "b", "c"}
	got, err := Unmarshal(mustMarshal(t, []any{s, s}))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	arr := got.([]any)
	a := arr[0].([]any)
	b := arr[1].([]any)
	if &a[0] != &b[0] {
		t.Error("identical slice encoded as two entries")
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestMarkerPrefix(t *testing.T) {
	x := map[string]any{"n": 1}
	in := []any{x, x}
	data, err := Marshal(in, MarkerPrefix("@"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"@ref"`) {
		t.Errorf("expected @ref markers in %s", data)
	}
	got, err := Unmarshal(data, MarkerPrefix("@"))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	arr := got.([]any)
	if len(arr) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(arr))
	}
}

func TestNilAndEmptyComposites(t *testing.T) {
	in := map[string]any{
		"nilMap":   map[string]any(nil),
		"nilSlice": []any(nil),
		"empty":    map[string]any{},
	}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"nilMap":   nil,
		"nilSlice": nil,
		"empty":    map[string]any{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
