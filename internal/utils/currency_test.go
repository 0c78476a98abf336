package utils

import (
	"errors"
	"math"
	"testing"

	"tcmb_rates_api/internal/models"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		start    *float64
		end      *float64
		expected float64
		wantErr  error
	}{
		{
			name:     "Growth",
			start:    ptr(30.0),
			end:      ptr(31.5),
			expected: 5.0,
		},
		{
			name:     "Decline",
			start:    ptr(40.0),
			end:      ptr(39.0),
			expected: -2.5,
		},
		{
			name:     "No change",
			start:    ptr(34.2524),
			end:      ptr(34.2524),
			expected: 0,
		},
		{
			name:     "Rounded to 4 places",
			start:    ptr(3.0),
			end:      ptr(4.0),
			expected: 33.3333,
		},
		{
			name:    "Zero start",
			start:   ptr(0),
			end:     ptr(31.5),
			wantErr: ErrZeroBase,
		},
		{
			name:    "Missing start",
			start:   nil,
			end:     ptr(31.5),
			wantErr: ErrMissingValue,
		},
		{
			name:    "Missing end",
			start:   ptr(30.0),
			end:     nil,
			wantErr: ErrMissingValue,
		},
		{
			name:    "Overflow",
			start:   ptr(1e-308),
			end:     ptr(1e308),
			wantErr: ErrNotFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := PercentChange(tt.start, tt.end)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("PercentChange() error = %v, expected %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("PercentChange() unexpected error: %v", err)
				return
			}

			if !isApproximatelyEqual(result, tt.expected, 0.00001) {
				t.Errorf("PercentChange() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestCalculateConversion(t *testing.T) {
	tests := []struct {
		name              string
		amount            float64
		sourceSelling     float64
		targetBuying      float64
		expectedRate      float64
		expectedConverted float64
		wantErr           bool
	}{
		{
			name:              "TRY to USD",
			amount:            300,
			sourceSelling:     1.0,
			targetBuying:      30.0,
			expectedRate:      0.0333,
			expectedConverted: 10.00,
		},
		{
			name:              "USD to TRY",
			amount:            10,
			sourceSelling:     30.1,
			targetBuying:      1.0,
			expectedRate:      30.1,
			expectedConverted: 301.00,
		},
		{
			name:              "EUR to USD (cross rate)",
			amount:            100,
			sourceSelling:     45.2,
			targetBuying:      39.4,
			expectedRate:      1.1472, // 45.2 / 39.4 ≈ 1.147208
			expectedConverted: 114.72,
		},
		{
			name:          "Zero target rate",
			amount:        100,
			sourceSelling: 45.2,
			targetBuying:  0,
			wantErr:       true,
		},
		{
			name:          "Overflowing amount",
			amount:        1e308,
			sourceSelling: 30.1,
			targetBuying:  1.0,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, converted, err := CalculateConversion(tt.amount, tt.sourceSelling, tt.targetBuying)

			if tt.wantErr {
				if err == nil {
					t.Errorf("CalculateConversion() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("CalculateConversion() unexpected error: %v", err)
				return
			}

			if !isApproximatelyEqual(rate, tt.expectedRate, 0.00001) {
				t.Errorf("CalculateConversion() rate = %v, expected %v", rate, tt.expectedRate)
			}
			if !isApproximatelyEqual(converted, tt.expectedConverted, 0.00001) {
				t.Errorf("CalculateConversion() converted = %v, expected %v", converted, tt.expectedConverted)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		value    float64
		places   int32
		expected float64
	}{
		{value: 1.0 / 30.0, places: 4, expected: 0.0333},
		{value: 39.12345, places: 4, expected: 39.1234}, // двоичное значение чуть меньше 39.12345
		{value: 1.03125, places: 4, expected: 1.0312},
		{value: 2.5, places: 0, expected: 2},
		{value: 0.125, places: 2, expected: 0.12},
		{value: 9.999, places: 2, expected: 10.0},
		{value: -2.34567, places: 2, expected: -2.35},
	}

	for _, tt := range tests {
		if result := Round(tt.value, tt.places); result != tt.expected {
			t.Errorf("Round(%v, %d) = %v, expected %v", tt.value, tt.places, result, tt.expected)
		}
	}
}

func TestRound_NonFinite(t *testing.T) {
	if result := Round(math.NaN(), 2); !math.IsNaN(result) {
		t.Errorf("Round(NaN) = %v, expected NaN", result)
	}
	if result := Round(math.Inf(1), 2); !math.IsInf(result, 1) {
		t.Errorf("Round(+Inf) = %v, expected +Inf", result)
	}
}

func TestTopChanges(t *testing.T) {
	past := publication(map[string]string{
		"USD": "30.0",
		"EUR": "40.0",
		"GBP": "50.0",
		"JPY": "0",
		"CHF": "",
		"SEK": "3.0",
	})
	today := publication(map[string]string{
		"USD": "30.3",  // +1%
		"EUR": "36.0",  // -10%
		"GBP": "51.0",  // +2%
		"JPY": "0.21",  // нулевая база
		"CHF": "48.0",  // нет прошлого курса
		"NOK": "3.1",   // нет в прошлой публикации
		"SEK": "3.003", // +0.1%
	})
	watchlist := []string{"USD", "EUR", "GBP", "CHF", "NOK", "JPY", "SEK", "RUB"}

	t.Run("Sorted by absolute change", func(t *testing.T) {
		result := TopChanges(today, past, watchlist, 10)

		expectedCodes := []string{"EUR", "GBP", "USD", "SEK"}
		if len(result) != len(expectedCodes) {
			t.Fatalf("TopChanges() returned %d records, expected %d: %+v", len(result), len(expectedCodes), result)
		}
		for i, code := range expectedCodes {
			if result[i].Code != code {
				t.Errorf("TopChanges()[%d].Code = %s, expected %s", i, result[i].Code, code)
			}
		}
		if !isApproximatelyEqual(result[0].ChangePercent, -10, 0.00001) {
			t.Errorf("EUR change = %v, expected -10", result[0].ChangePercent)
		}
		if result[0].Start != 40.0 || result[0].End != 36.0 {
			t.Errorf("EUR start/end = %v/%v, expected 40/36", result[0].Start, result[0].End)
		}
	})

	t.Run("Limited by count", func(t *testing.T) {
		result := TopChanges(today, past, watchlist, 2)

		if len(result) != 2 {
			t.Fatalf("TopChanges() returned %d records, expected 2", len(result))
		}
		if result[0].Code != "EUR" || result[1].Code != "GBP" {
			t.Errorf("TopChanges() = %+v, expected EUR, GBP", result)
		}
	})

	t.Run("Non-positive count", func(t *testing.T) {
		if result := TopChanges(today, past, watchlist, 0); len(result) != 0 {
			t.Errorf("TopChanges() with count 0 returned %d records", len(result))
		}
		if result := TopChanges(today, past, watchlist, -3); len(result) != 0 {
			t.Errorf("TopChanges() with negative count returned %d records", len(result))
		}
	})

	t.Run("Missing publication", func(t *testing.T) {
		if result := TopChanges(today, nil, watchlist, 5); len(result) != 0 {
			t.Errorf("TopChanges() without past publication returned %d records", len(result))
		}
	})
}

func publication(buying map[string]string) *models.Publication {
	pub := &models.Publication{Date: "18.06.2025"}
	for code, value := range buying {
		pub.Currencies = append(pub.Currencies, models.PublishedCurrency{
			Kod:          code,
			CurrencyCode: code,
			ForexBuying:  models.RawValue(value),
			ForexSelling: models.RawValue(value),
		})
	}
	return pub
}

func ptr(v float64) *float64 {
	return &v
}

// Проверяем, что два float64 значения приблизительно равны
func isApproximatelyEqual(a, b, tolerance float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
