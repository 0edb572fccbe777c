package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductUnitConverter_MeterToYard(t *testing.T) {
	conv := NewProductUnitConverter()

	res := conv.Convert(decimal.NewFromInt(10), UnitMeter)
	if !res.ConversionApplied {
		t.Error("Expected ConversionApplied=true for meter input")
	}
	if res.Unit != UnitYard {
		t.Errorf("Expected unit yard, got %s", res.Unit)
	}
	// 10 × 1.09361 = 10.9361 → 10.936 at 3 decimals
	if want := decimal.NewFromFloat(10.936); !res.Value.Equal(want) {
		t.Errorf("Expected %s, got %s", want, res.Value)
	}
	if !res.OriginalValue.Equal(decimal.NewFromInt(10)) || res.OriginalUnit != UnitMeter {
		t.Errorf("Original pair not preserved: %s %s", res.OriginalValue, res.OriginalUnit)
	}
}

func TestProductUnitConverter_Identity(t *testing.T) {
	conv := NewProductUnitConverter()

	tests := []struct {
		name string
		qty  decimal.Decimal
		unit Unit
	}{
		{"yard stays yard", decimal.NewFromFloat(42.5), UnitYard},
		{"kg stays kg", decimal.NewFromFloat(3.75), UnitKg},
		{"zero yard", decimal.Zero, UnitYard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := conv.Convert(tt.qty, tt.unit)
			if res.ConversionApplied {
				t.Error("Expected ConversionApplied=false")
			}
			if !res.Value.Equal(tt.qty) {
				t.Errorf("Expected value unchanged (%s), got %s", tt.qty, res.Value)
			}
			if res.Unit != tt.unit {
				t.Errorf("Expected unit %s, got %s", tt.unit, res.Unit)
			}
		})
	}
}

func TestProductUnitConverter_UnknownUnitPassthrough(t *testing.T) {
	conv := NewProductUnitConverter()

	// Piece-count and unknown units degrade to identity, never error.
	for _, unit := range []Unit{UnitPiece, UnitRoll, Unit("bolt")} {
		res := conv.Convert(decimal.NewFromInt(7), unit)
		if res.ConversionApplied {
			t.Errorf("%s: expected ConversionApplied=false", unit)
		}
		if !res.Value.Equal(decimal.NewFromInt(7)) || res.Unit != unit {
			t.Errorf("%s: expected passthrough, got %s %s", unit, res.Value, res.Unit)
		}
	}
}

func TestProductUnitConverter_NormalizesInput(t *testing.T) {
	conv := NewProductUnitConverter()

	res := conv.Convert(decimal.NewFromInt(5), Unit("  Meter "))
	if !res.ConversionApplied || res.Unit != UnitYard {
		t.Errorf("Expected normalized meter input to convert, got %s (applied=%v)", res.Unit, res.ConversionApplied)
	}
}

func TestStandardUnitConverter_LengthUnits(t *testing.T) {
	conv := NewStandardUnitConverter()

	tests := []struct {
		unit Unit
		qty  decimal.Decimal
		want decimal.Decimal
	}{
		{UnitMeter, decimal.NewFromInt(10), decimal.NewFromFloat(10.936)},
		{UnitFoot, decimal.NewFromInt(9), decimal.NewFromInt(3)},
		{UnitInch, decimal.NewFromInt(72), decimal.NewFromInt(2)},
		{UnitCentimeter, decimal.NewFromFloat(91.44), decimal.NewFromInt(1)},
	}
	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			res := conv.Convert(tt.qty, tt.unit)
			if !res.ConversionApplied || res.Unit != UnitYard {
				t.Fatalf("Expected conversion to yard, got %s (applied=%v)", res.Unit, res.ConversionApplied)
			}
			if !res.Value.Equal(tt.want) {
				t.Errorf("Expected %s yard, got %s", tt.want, res.Value)
			}
		})
	}
}

func TestStandardUnitConverter_WeightUnits(t *testing.T) {
	conv := NewStandardUnitConverter()

	// Density-based approximations all land in yard at 3 decimals.
	res := conv.Convert(decimal.NewFromInt(2), UnitKg)
	if res.Unit != UnitYard || !res.Value.Equal(decimal.NewFromInt(7)) {
		t.Errorf("2 kg: expected 7 yard, got %s %s", res.Value, res.Unit)
	}

	res = conv.Convert(decimal.NewFromInt(500), UnitGram)
	if res.Unit != UnitYard || !res.Value.Equal(decimal.NewFromFloat(1.75)) {
		t.Errorf("500 gram: expected 1.75 yard, got %s %s", res.Value, res.Unit)
	}

	res = conv.Convert(decimal.NewFromInt(1), UnitPound)
	// 3.5 / 2.20462 = 1.58758... → 1.588
	if res.Unit != UnitYard || !res.Value.Equal(decimal.NewFromFloat(1.588)) {
		t.Errorf("1 pound: expected 1.588 yard, got %s %s", res.Value, res.Unit)
	}
}

func TestStandardUnitConverter_YardIdentity(t *testing.T) {
	conv := NewStandardUnitConverter()

	res := conv.Convert(decimal.NewFromFloat(12.345), UnitYard)
	if res.ConversionApplied {
		t.Error("Expected ConversionApplied=false for yard input")
	}
	if !res.Value.Equal(decimal.NewFromFloat(12.345)) {
		t.Errorf("Expected value unchanged, got %s", res.Value)
	}
}

func TestStandardUnitConverter_UnknownUnitPassthrough(t *testing.T) {
	conv := NewStandardUnitConverter()

	res := conv.Convert(decimal.NewFromInt(4), UnitRoll)
	if res.ConversionApplied || res.Unit != UnitRoll {
		t.Errorf("Expected roll passthrough, got %s (applied=%v)", res.Unit, res.ConversionApplied)
	}
}

func TestParseUnit(t *testing.T) {
	if got := ParseUnit(" YARD "); got != UnitYard {
		t.Errorf("Expected yard, got %q", got)
	}
	if got := ParseUnit("Kg"); got != UnitKg {
		t.Errorf("Expected kg, got %q", got)
	}
	// Unknown strings pass through normalized, not rejected.
	if got := ParseUnit(" Bolt"); got != Unit("bolt") {
		t.Errorf("Expected bolt, got %q", got)
	}
}
