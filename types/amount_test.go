package types

import (
	"errors"
	"math"
	"testing"
)

func TestTokens(t *testing.T) {
	if Tokens(1000) != 1_000_000_000_000 {
		t.Errorf("Tokens(1000): got %d", Tokens(1000))
	}
	if got := Tokens(1000).String(); got != "1000.000000000 UNIV" {
		t.Errorf("String: got %q", got)
	}
	if got := Amount(-1).FormatMajor(); got != "-0.000000001" {
		t.Errorf("FormatMajor: got %q", got)
	}
}

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name string
		x    Amount
		num  int64
		den  int64
		want Amount
	}{
		{"exact", 1000, 4, 100, 40},
		{"truncates", 52, 2, 5, 20},
		{"truncates toward zero for negatives", -52, 2, 5, -20},
		{"zero numerator", 1000, 0, 5, 0},
		{"wide intermediate", Tokens(1_000_000_000), 14, 100, Tokens(140_000_000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulDiv(tt.x, tt.num, tt.den)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMulDivN(t *testing.T) {
	// 1e21 intermediate does not fit int64, the quotient does.
	got, err := MulDivN(Tokens(1000), 100*28800, 14, 28800*100_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := Tokens(1000) * 14 * 1000; got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func TestMulDivErrors(t *testing.T) {
	if _, err := MulDiv(10, 1, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
	if _, err := MulDiv(math.MaxInt64, 2, 1); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestCheckedArithmetic(t *testing.T) {
	if s, err := Amount(1).Add(2); err != nil || s != 3 {
		t.Errorf("Add: got %d, %v", s, err)
	}
	if _, err := Amount(math.MaxInt64).Add(1); !errors.Is(err, ErrOverflow) {
		t.Errorf("Add overflow: got %v", err)
	}
	if _, err := Amount(math.MinInt64).Sub(1); !errors.Is(err, ErrOverflow) {
		t.Errorf("Sub overflow: got %v", err)
	}
	if got := Amount(5).SaturatingSub(7); got != 0 {
		t.Errorf("SaturatingSub: got %d", got)
	}
	if got := Amount(7).SaturatingSub(5); got != 2 {
		t.Errorf("SaturatingSub: got %d", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    Amount
		wantErr bool
	}{
		{"1000", Tokens(1000), false},
		{"0.5", Unit / 2, false},
		{" 0.000000001 ", 1, false},
		{"0.0000000001", 0, true},
		{"abc", 0, true},
		{"99999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func BenchmarkMulDiv(b *testing.B) {
	for b.Loop() {
		_, _ = MulDivN(Tokens(1040), 100*28800, 5, 43200)
	}
}
