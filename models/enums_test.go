package models

import "testing"

func TestParseUnitMeasurement(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		want  UnitMeasurement
		ok    bool
	}{
		{"ml", UnitMilliliter, true},
		{" G ", UnitGram, true},
		{"pcs", UnitPiece, true},
		{"oz", UnitMeasurement("oz"), false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseUnitMeasurement(tt.value)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Fatalf("ParseUnitMeasurement(%q) = %q, %t; want %q, %t", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseABVCategory(t *testing.T) {
	t.Parallel()

	if got, ok := ParseABVCategory(""); !ok || got != nil {
		t.Fatalf("expected blank strength to be accepted as absent, got %v %t", got, ok)
	}
	got, ok := ParseABVCategory("Strong")
	if !ok || got == nil || *got != ABVStrong {
		t.Fatalf("expected strong category, got %v %t", got, ok)
	}
	if _, ok := ParseABVCategory("medium"); ok {
		t.Fatal("expected unknown strength to be rejected")
	}
}

func TestParseIngredientType(t *testing.T) {
	t.Parallel()

	if got, ok := ParseIngredientType(""); !ok || got != DefaultIngredientType {
		t.Fatalf("expected default type for blank input, got %q %t", got, ok)
	}
	if got, ok := ParseIngredientType("Strong Part"); !ok || got != TypeStrongPart {
		t.Fatalf("expected strong_part, got %q %t", got, ok)
	}
	if _, ok := ParseIngredientType("spice"); ok {
		t.Fatal("expected unknown type to be rejected")
	}
}

func TestLabelsFallBackToCode(t *testing.T) {
	t.Parallel()

	if UnitGram.Label() != "Gram" {
		t.Fatalf("unexpected unit label %q", UnitGram.Label())
	}
	if IngredientType("spice").Label() != "spice" {
		t.Fatal("expected unknown type label to echo its code")
	}
	if len(IngredientTypes()) != len(ingredientTypeLabels) {
		t.Fatal("expected every ingredient type to be listed")
	}
}
