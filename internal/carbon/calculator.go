package carbon

import (
	"fmt"
	"math"
	"regexp"
)

// Level is a coarse banding of an emission amount for display purposes.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// CalculateEmission returns round(factor * quantity) in grams. Quantity must
// be positive for a meaningful result; validating it is the caller's job.
func CalculateEmission(factorGramsPerUnit, quantity float64) int {
	return int(math.Round(factorGramsPerUnit * quantity))
}

// FormatEmission renders grams as "Ng CO₂" below 1 kg, kilograms to two
// decimals below 1 tonne, and tonnes to two decimals above that.
func FormatEmission(grams int) string {
	if grams < 1000 {
		return fmt.Sprintf("%dg CO₂", grams)
	}
	if grams < 1000000 {
		return fmt.Sprintf("%.2fkg CO₂", float64(grams)/1000)
	}
	return fmt.Sprintf("%.2ft CO₂", float64(grams)/1000000)
}

// ActivityLevel bands a logged activity's emissions. Receipt items use
// ReceiptItemLevel instead; the two scales are intentionally different and
// must not be unified.
func ActivityLevel(grams int) Level {
	if grams < 500 {
		return LevelLow
	}
	if grams < 2000 {
		return LevelMedium
	}
	return LevelHigh
}

// ReceiptItemLevel bands a single receipt item's emissions (<2 kg low,
// 2-10 kg medium, above that high).
func ReceiptItemLevel(grams int) Level {
	if grams < 2000 {
		return LevelLow
	}
	if grams < 10000 {
		return LevelMedium
	}
	return LevelHigh
}

var leadingNumber = regexp.MustCompile(`(\d+(\.\d+)?)`)

// wasteOffsetPerKg is the credit for diverting one kilogram of waste from
// landfill: 500 g of CO2.
const wasteOffsetPerKg = 500

// WasteCarbonOffset estimates the CO2 offset for a free-text waste quantity
// such as "5 kg" or "2-3 bags". This is a deliberately lossy heuristic: the
// first numeric token found is taken as kilograms, and 0 is returned when the
// text carries no number at all. Point awards depend on exactly this policy.
func WasteCarbonOffset(amountText string) int {
	match := leadingNumber.FindString(amountText)
	if match == "" {
		return 0
	}
	var amount float64
	if _, err := fmt.Sscanf(match, "%f", &amount); err != nil {
		return 0
	}
	return int(math.Round(amount * wasteOffsetPerKg))
}

// DailyAverage returns the rounded per-day average, 0 when days is 0.
func DailyAverage(totalGrams, days int) int {
	if days == 0 {
		return 0
	}
	return int(math.Round(float64(totalGrams) / float64(days)))
}
