package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/universe/id"
)

var kinds = []struct {
	prefix id.Prefix
	newFn  func() id.ID
	parse  func(string) (id.ID, error)
}{
	{id.PrefixPlanet, id.NewPlanetID, id.ParsePlanetID},
	{id.PrefixUser, id.NewUserID, id.ParseUserID},
	{id.PrefixActivity, id.NewActivityID, id.ParseActivityID},
}

func TestKinds(t *testing.T) {
	for i, k := range kinds {
		t.Run(string(k.prefix), func(t *testing.T) {
			v := k.newFn()
			if !strings.HasPrefix(v.String(), string(k.prefix)+"_") || v.Prefix() != k.prefix {
				t.Errorf("unexpected id %q", v)
			}

			parsed, err := k.parse(v.String())
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if parsed != v {
				t.Errorf("parsed %q, want %q", parsed, v)
			}

			other := kinds[(i+1)%len(kinds)].newFn().String()
			if _, err := k.parse(other); err == nil {
				t.Errorf("parsing %q as %s should fail", other, k.prefix)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "planet", "planet_not-a-suffix", "PLANET_01h2xcejqtf2nbrexx3vqjhp41"} {
		if _, err := id.Parse(s); err == nil {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
}

func TestNil(t *testing.T) {
	var v id.ID
	if !v.IsNil() || v.String() != "" || v.Prefix() != "" {
		t.Errorf("zero value is not nil: %q", v)
	}

	data, err := v.MarshalText()
	if err != nil || len(data) != 0 {
		t.Errorf("MarshalText = %q, %v", data, err)
	}
	if val, _ := v.Value(); val != nil {
		t.Errorf("Value = %v, want NULL", val)
	}

	restored := id.NewPlanetID()
	if err := restored.UnmarshalText(nil); err != nil || !restored.IsNil() {
		t.Errorf("UnmarshalText(empty): err=%v nil=%v", err, restored.IsNil())
	}
}

func TestScan(t *testing.T) {
	original := id.NewUserID()

	tests := []struct {
		name string
		src  any
		want id.ID
	}{
		{"string", original.String(), original},
		{"bytes", []byte(original.String()), original},
		{"null", nil, id.Nil},
		{"empty", "", id.Nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got id.ID
			if err := got.Scan(tt.src); err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Scan = %q, want %q", got, tt.want)
			}
		})
	}

	var v id.ID
	if err := v.Scan(42); err == nil {
		t.Error("expected error scanning an int")
	}
}

func TestUnique(t *testing.T) {
	seen := make(map[id.ID]bool)
	for range 100 {
		v := id.NewActivityID()
		if seen[v] {
			t.Fatalf("duplicate id %q", v)
		}
		seen[v] = true
	}
}
