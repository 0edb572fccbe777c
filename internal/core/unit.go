package core

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Unit is a physical measurement unit attached to a fabric quantity.
type Unit string

const (
	UnitYard       Unit = "yard"
	UnitMeter      Unit = "meter"
	UnitFoot       Unit = "foot"
	UnitInch       Unit = "inch"
	UnitCentimeter Unit = "centimeter"
	UnitKg         Unit = "kg"
	UnitGram       Unit = "gram"
	UnitPound      Unit = "pound"
	UnitPiece      Unit = "piece"
	UnitRoll       Unit = "roll"
)

// ParseUnit normalizes raw unit input (case, surrounding whitespace) before
// rule matching. Unknown strings are passed through untouched; the converters
// degrade to identity on them rather than rejecting.
func ParseUnit(s string) Unit {
	return Unit(strings.ToLower(strings.TrimSpace(s)))
}

// conversionPrecision is the number of fractional digits kept on any
// converted quantity.
const conversionPrecision = 3

var (
	yardsPerMeter = decimal.NewFromFloat(1.09361)

	feetPerYard   = decimal.NewFromInt(3)
	inchesPerYard = decimal.NewFromInt(36)
	cmPerYard     = decimal.NewFromFloat(91.44)

	// fabricYardsPerKg is the assumed yield of a mid-weight fabric, used only
	// by the legacy weight-based intake path. Approximate by nature.
	fabricYardsPerKg = decimal.NewFromFloat(3.5)
	gramsPerKg       = decimal.NewFromInt(1000)
	poundsPerKg      = decimal.NewFromFloat(2.20462)
)

// ConversionResult carries a converted quantity together with its provenance.
// ConversionApplied is false both for units that are already canonical and for
// unknown units that were passed through with a warning.
type ConversionResult struct {
	Value             decimal.Decimal
	Unit              Unit
	OriginalValue     decimal.Decimal
	OriginalUnit      Unit
	ConversionApplied bool
}

// UnitConversion converts a quantity/unit pair into the canonical unit used
// by a particular intake path. Implementations never return an error: unknown
// units degrade to identity with a logged warning.
type UnitConversion interface {
	Convert(quantity decimal.Decimal, unit Unit) ConversionResult
}

// ProductUnitConverter is the narrow rule set used for warehouse stock
// intake: meter becomes yard, yard and kg are already canonical, everything
// else is stored as-is.
type ProductUnitConverter struct{}

func NewProductUnitConverter() ProductUnitConverter {
	return ProductUnitConverter{}
}

func (ProductUnitConverter) Convert(quantity decimal.Decimal, unit Unit) ConversionResult {
	u := ParseUnit(string(unit))
	res := ConversionResult{
		Value:         quantity,
		Unit:          u,
		OriginalValue: quantity,
		OriginalUnit:  u,
	}

	switch u {
	case UnitMeter:
		res.Value = quantity.Mul(yardsPerMeter).Round(conversionPrecision)
		res.Unit = UnitYard
		res.ConversionApplied = true
	case UnitYard, UnitKg:
		// already canonical
	default:
		logrus.WithFields(logrus.Fields{
			"unit":     u,
			"quantity": quantity.String(),
		}).Warn("no conversion rule for unit, storing quantity as-is")
	}
	return res
}

// StandardUnitConverter is the broader length/weight rule set used by the
// legacy per-product weight field. Length units convert exactly; weight units
// convert through fabricYardsPerKg. It is not used by the warehouse stock
// path, which only ever sees the ProductUnitConverter rules.
type StandardUnitConverter struct{}

func NewStandardUnitConverter() StandardUnitConverter {
	return StandardUnitConverter{}
}

func (StandardUnitConverter) Convert(quantity decimal.Decimal, unit Unit) ConversionResult {
	u := ParseUnit(string(unit))
	res := ConversionResult{
		Value:         quantity,
		Unit:          u,
		OriginalValue: quantity,
		OriginalUnit:  u,
	}

	var factor decimal.Decimal
	switch u {
	case UnitYard:
		return res
	case UnitMeter:
		factor = yardsPerMeter
	case UnitFoot:
		factor = decimal.NewFromInt(1).Div(feetPerYard)
	case UnitInch:
		factor = decimal.NewFromInt(1).Div(inchesPerYard)
	case UnitCentimeter:
		factor = decimal.NewFromInt(1).Div(cmPerYard)
	case UnitKg:
		factor = fabricYardsPerKg
	case UnitGram:
		factor = fabricYardsPerKg.Div(gramsPerKg)
	case UnitPound:
		factor = fabricYardsPerKg.Div(poundsPerKg)
	default:
		logrus.WithFields(logrus.Fields{
			"unit":     u,
			"quantity": quantity.String(),
		}).Warn("no standard conversion rule for unit, keeping value as-is")
		return res
	}

	res.Value = quantity.Mul(factor).Round(conversionPrecision)
	res.Unit = UnitYard
	res.ConversionApplied = true
	logrus.WithFields(logrus.Fields{
		"from_unit":  u,
		"from_value": quantity.String(),
		"to_value":   res.Value.String(),
	}).Debug("converted quantity to yard")
	return res
}
