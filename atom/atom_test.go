package atom

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"testing"
	"time"
)

func TestEncodeClassification(t *testing.T) {
	r := NewRegistry(nil)
	tests := []struct {
		name     string
		in       any
		wantKind Kind
		wantAtom bool
	}{
		{name: "nan", in: math.NaN(), wantKind: Number, wantAtom: true},
		{name: "pos inf", in: math.Inf(1), wantKind: Number, wantAtom: true},
		{name: "finite float", in: 1.5, wantAtom: false},
		{name: "small int", in: int64(7), wantAtom: false},
		{name: "oversized int", in: int64(1) << 60, wantKind: Number, wantAtom: true},
		{name: "oversized uint", in: uint64(1) << 60, wantKind: Number, wantAtom: true},
		{name: "big int", in: big.NewInt(5), wantKind: BigInt, wantAtom: true},
		{name: "time", in: time.Now(), wantKind: Date, wantAtom: true},
		{name: "regexp", in: regexp.MustCompile("x"), wantKind: Regexp, wantAtom: true},
		{name: "string", in: "x", wantAtom: false},
		{name: "nil big int", in: (*big.Int)(nil), wantAtom: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, args, ok, err := r.Encode(tt.in)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if ok != tt.wantAtom {
				t.Fatalf("atom=%v, want %v", ok, tt.wantAtom)
			}
			if !ok {
				return
			}
			if kind != tt.wantKind {
				t.Errorf("kind=%s, want %s", kind, tt.wantKind)
			}
			if len(args) == 0 {
				t.Error("no args")
			}
		})
	}
}

func TestDecodeNumber(t *testing.T) {
	r := NewRegistry(nil)
	got, err := r.Decode("Number", []string{"12"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != int64(12) {
		t.Errorf("expected int64 12, got %#v", got)
	}
	got, err = r.Decode("Number", []string{"NaN"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f, ok := got.(float64); !ok || !math.IsNaN(f) {
		t.Errorf("expected NaN, got %#v", got)
	}
}

func TestDecodeRegexpFlags(t *testing.T) {
	r := NewRegistry(nil)
	got, err := r.Decode("RegExp", []string{"abc", "ig"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	re := got.(*regexp.Regexp)
	if !re.MatchString("xABCx") {
		t.Errorf("case-insensitive flag not applied: %s", re)
	}
}

func TestDecodeDateRoundTrip(t *testing.T) {
	r := NewRegistry(nil)
	in := time.Date(2024, 5, 1, 2, 3, 4, 567000000, time.UTC)
	_, args, ok, err := r.Encode(in)
	if err != nil || !ok {
		t.Fatalf("encode: ok=%v err=%v", ok, err)
	}
	got, err := r.Decode("Date", args)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.(time.Time).Equal(in) {
		t.Errorf("expected %s, got %s", in, got)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	r := NewRegistry(nil)
	if _, err := r.Decode("Nope", nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestDecodeBadArgs(t *testing.T) {
	r := NewRegistry(nil)
	tests := []struct {
		kind string
		args []string
	}{
		{kind: "Number", args: []string{"x"}},
		{kind: "Number", args: nil},
		{kind: "BigInt", args: []string{"12.5"}},
		{kind: "Date", args: []string{"yesterday"}},
		{kind: "RegExp", args: []string{"("}},
	}
	for _, tt := range tests {
		if _, err := r.Decode(tt.kind, tt.args); !errors.Is(err, ErrBadArgs) {
			t.Errorf("%s%v: expected ErrBadArgs, got %v", tt.kind, tt.args, err)
		}
	}
}

func TestNodeWithoutCodec(t *testing.T) {
	r := NewRegistry(nil)
	if _, err := r.Decode("Node", []string{"<x/>"}); err == nil {
		t.Fatal("expected error with no node codec")
	}
}
