package dtype

import (
	"testing"
)

func TestTypeSizes(t *testing.T) {
	tests := []struct {
		typ      Type
		ext      Extended
		expected int
	}{
		{LongDouble, Extended80, 16},
		{LongDouble, Extended64, 8},
		{Double, Extended80, 8},
		{Float, Extended80, 4},
		{Long64, Extended80, 8},
		{ULong64, Extended80, 8},
		{Long, Extended80, 4},
		{ULong, Extended80, 4},
		{Short, Extended80, 2},
		{UShort, Extended80, 2},
		{Character, Extended80, 1},
		{String, Extended80, 0},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.ext.String(), func(t *testing.T) {
			if got := tt.typ.Size(tt.ext); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestTypeCodes(t *testing.T) {
	// The numeric values are part of the on-disk vocabulary.
	if LongDouble != 1 || Double != 2 || String != 10 || Character != 11 {
		t.Fatalf("type codes moved: longdouble=%d double=%d string=%d character=%d",
			LongDouble, Double, String, Character)
	}
}

func TestParseType(t *testing.T) {
	for typ := LongDouble; typ <= Character; typ++ {
		got, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q) failed: %v", typ.String(), err)
		}
		if got != typ {
			t.Errorf("expected %v, got %v", typ, got)
		}
	}
	if _, err := ParseType("quad"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestTypeText(t *testing.T) {
	var typ Type
	if err := typ.UnmarshalText([]byte(" Double ")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if typ != Double {
		t.Errorf("expected double, got %v", typ)
	}
	b, err := Short.MarshalText()
	if err != nil || string(b) != "short" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
	if _, err := Type(99).MarshalText(); err == nil {
		t.Error("expected error for invalid type")
	}
}

func TestTypeClasses(t *testing.T) {
	for _, typ := range []Type{LongDouble, Double, Float} {
		if !typ.IsFloating() || typ.IsInteger() {
			t.Errorf("%v should be floating", typ)
		}
	}
	for _, typ := range []Type{Long64, ULong64, Long, ULong, Short, UShort} {
		if typ.IsFloating() || !typ.IsInteger() {
			t.Errorf("%v should be integer", typ)
		}
	}
	if String.Swappable() || Character.Swappable() {
		t.Error("strings and characters must not be swappable")
	}
	if !Double.Swappable() {
		t.Error("double should be swappable")
	}
}

func TestExtendedFromEnv(t *testing.T) {
	t.Setenv(LongDouble64Env, "")
	if ExtendedFromEnv() != Extended80 {
		t.Error("expected 80-bit mode without opt-out")
	}
	t.Setenv(LongDouble64Env, "1")
	if ExtendedFromEnv() != Extended64 {
		t.Error("expected 64-bit mode with opt-out")
	}
}
