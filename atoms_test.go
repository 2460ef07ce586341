package refson

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"testing"
	"time"

	"github.com/refson/go-refson/atom"
)

func mustRoundTrip(t *testing.T, in any, opts ...Option) any {
	t.Helper()
	data, err := Marshal(in, opts...)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data, opts...)
	if err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return got
}

func TestNaNRoundTrip(t *testing.T) {
	got := mustRoundTrip(t, math.NaN())
	f, ok := got.(float64)
	if !ok || !math.IsNaN(f) {
		t.Errorf("expected NaN, got %#v", got)
	}
}

func TestInfinityRoundTrip(t *testing.T) {
	for _, sign := range []int{1, -1} {
		got := mustRoundTrip(t, math.Inf(sign))
		f, ok := got.(float64)
		if !ok || !math.IsInf(f, sign) {
			t.Errorf("expected Inf(%d), got %#v", sign, got)
		}
	}
}

func TestOversizedIntExact(t *testing.T) {
	in := int64(1) << 60
	got := mustRoundTrip(t, map[string]any{"big": in})
	v := got.(map[string]any)["big"]
	if v != in {
		t.Errorf("expected %d exactly, got %#v", in, v)
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	in, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	got := mustRoundTrip(t, in)
	z, ok := got.(*big.Int)
	if !ok {
		t.Fatalf("expected *big.Int, got %T", got)
	}
	if z.Cmp(in) != 0 {
		t.Errorf("expected %s, got %s", in, z)
	}
}

func TestDateRoundTrip(t *testing.T) {
	in := time.Date(2024, 5, 1, 2, 3, 4, 567000000, time.UTC)
	got := mustRoundTrip(t, map[string]any{"when": in})
	ts, ok := got.(map[string]any)["when"].(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", got.(map[string]any)["when"])
	}
	if !ts.Equal(in) {
		t.Errorf("expected %s, got %s", in, ts)
	}
}

func TestRegexpRoundTrip(t *testing.T) {
	in := regexp.MustCompile(`a+b[0-9]*`)
	got := mustRoundTrip(t, in)
	re, ok := got.(*regexp.Regexp)
	if !ok {
		t.Fatalf("expected *regexp.Regexp, got %T", got)
	}
	if re.String() != in.String() {
		t.Errorf("expected %q, got %q", in, re)
	}
}

// markupCodec is a stand-in for a host markup collaborator.
type markupCodec struct{}

type widget struct{ ID string }

func (markupCodec) CanEncode(v any) bool {
	_, ok := v.(widget)
	return ok
}

func (markupCodec) EncodeNode(v any) (string, error) {
	w, ok := v.(widget)
	if !ok {
		return "", fmt.Errorf("not a widget: %T", v)
	}
	return "<widget id=" + w.ID + "/>", nil
}

func (markupCodec) DecodeNode(markup string) (any, error) {
	re := regexp.MustCompile(`<widget id=(.*)/>`)
	m := re.FindStringSubmatch(markup)
	if m == nil {
		return nil, fmt.Errorf("bad widget markup %q", markup)
	}
	return widget{ID: m[1]}, nil
}

var _ atom.NodeCodec = markupCodec{}

func TestOpaqueNodeRoundTrip(t *testing.T) {
	in := map[string]any{"w": widget{ID: "w1"}}
	got := mustRoundTrip(t, in, WithNodeCodec(markupCodec{}))
	w, ok := got.(map[string]any)["w"].(widget)
	if !ok {
		t.Fatalf("expected widget, got %T", got.(map[string]any)["w"])
	}
	if w.ID != "w1" {
		t.Errorf("expected w1, got %q", w.ID)
	}
}
