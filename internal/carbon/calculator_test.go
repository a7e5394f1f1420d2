package carbon

import "testing"

func TestCalculateEmission(t *testing.T) {
	cases := []struct {
		name     string
		factor   float64
		quantity float64
		want     int
	}{
		{name: "petrol_car_10km", factor: 192, quantity: 10, want: 1920},
		{name: "fractional_quantity_rounds", factor: 192, quantity: 2.5, want: 480},
		{name: "rounds_half_up", factor: 3, quantity: 0.5, want: 2},
		{name: "zero_factor", factor: 0, quantity: 100, want: 0},
		{name: "beef_fraction", factor: 27000, quantity: 0.25, want: 6750},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateEmission(tc.factor, tc.quantity)
			if got != tc.want {
				t.Fatalf("CalculateEmission(%v, %v)=%d, want %d", tc.factor, tc.quantity, got, tc.want)
			}
		})
	}
}

func TestCalculateEmissionMonotonic(t *testing.T) {
	factors := []float64{0, 41, 192, 475, 27000}
	quantities := []float64{0.5, 1, 2, 10, 100}
	for i := 1; i < len(factors); i++ {
		for _, q := range quantities {
			lo := CalculateEmission(factors[i-1], q)
			hi := CalculateEmission(factors[i], q)
			if hi < lo {
				t.Fatalf("not monotonic in factor: f=%v..%v q=%v got %d < %d", factors[i-1], factors[i], q, hi, lo)
			}
		}
	}
	for _, f := range factors {
		for i := 1; i < len(quantities); i++ {
			lo := CalculateEmission(f, quantities[i-1])
			hi := CalculateEmission(f, quantities[i])
			if hi < lo {
				t.Fatalf("not monotonic in quantity: f=%v q=%v..%v got %d < %d", f, quantities[i-1], quantities[i], hi, lo)
			}
		}
	}
}

func TestFormatEmission(t *testing.T) {
	cases := []struct {
		grams int
		want  string
	}{
		{0, "0g CO₂"},
		{999, "999g CO₂"},
		{1000, "1.00kg CO₂"},
		{1920, "1.92kg CO₂"},
		{999999, "1000.00kg CO₂"},
		{1000000, "1.00t CO₂"},
		{2345678, "2.35t CO₂"},
	}
	for _, tc := range cases {
		if got := FormatEmission(tc.grams); got != tc.want {
			t.Fatalf("FormatEmission(%d)=%q, want %q", tc.grams, got, tc.want)
		}
	}
}

func TestEmissionLevels(t *testing.T) {
	cases := []struct {
		grams   int
		act     Level
		receipt Level
	}{
		{0, LevelLow, LevelLow},
		{499, LevelLow, LevelLow},
		{500, LevelMedium, LevelLow},
		{1999, LevelMedium, LevelLow},
		{2000, LevelHigh, LevelMedium},
		{9999, LevelHigh, LevelMedium},
		{10000, LevelHigh, LevelHigh},
	}
	for _, tc := range cases {
		if got := ActivityLevel(tc.grams); got != tc.act {
			t.Fatalf("ActivityLevel(%d)=%q, want %q", tc.grams, got, tc.act)
		}
		if got := ReceiptItemLevel(tc.grams); got != tc.receipt {
			t.Fatalf("ReceiptItemLevel(%d)=%q, want %q", tc.grams, got, tc.receipt)
		}
	}
}

func TestWasteCarbonOffset(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		want   int
	}{
		{name: "decimal_kg", amount: "2.5 kg", want: 1250},
		{name: "plain_kg", amount: "5 kg", want: 2500},
		{name: "range_takes_first_number", amount: "2-3 bags", want: 1000},
		{name: "no_number", amount: "small pile", want: 0},
		{name: "empty", amount: "", want: 0},
		{name: "number_embedded", amount: "about 1.5kg of plastic", want: 750},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WasteCarbonOffset(tc.amount); got != tc.want {
				t.Fatalf("WasteCarbonOffset(%q)=%d, want %d", tc.amount, got, tc.want)
			}
		})
	}
}

func TestDailyAverage(t *testing.T) {
	if got := DailyAverage(7000, 7); got != 1000 {
		t.Fatalf("DailyAverage(7000, 7)=%d, want 1000", got)
	}
	if got := DailyAverage(100, 0); got != 0 {
		t.Fatalf("DailyAverage(100, 0)=%d, want 0", got)
	}
	if got := DailyAverage(1000, 3); got != 333 {
		t.Fatalf("DailyAverage(1000, 3)=%d, want 333", got)
	}
}
