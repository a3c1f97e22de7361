package solar

import (
	"errors"
	"testing"
	"time"
)

func TestSunrise(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	jst := time.FixedZone("JST", 9*3600)
	lint := time.FixedZone("LINT", 14*3600)

	tests := []struct {
		name      string
		date      time.Time
		latitude  float64
		longitude float64
		expected  time.Time // ±15 min tolerance
	}{
		{
			name:      "Equator at equinox",
			date:      time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			latitude:  0.0,
			longitude: 0.0,
			expected:  time.Date(2024, 3, 20, 6, 4, 0, 0, time.UTC),
		},
		{
			name:      "Seattle WA summer solstice",
			date:      time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
			latitude:  47.6,
			longitude: -122.3,
			expected:  time.Date(2024, 6, 21, 12, 11, 0, 0, time.UTC), // 5:11 AM PDT
		},
		{
			name:      "London UK summer",
			date:      time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
			latitude:  51.5,
			longitude: -0.1,
			expected:  time.Date(2024, 6, 21, 3, 43, 0, 0, time.UTC), // 4:43 AM BST
		},
		{
			name:      "New Delhi winter",
			date:      time.Date(2024, 1, 7, 0, 0, 0, 0, ist),
			latitude:  28.61,
			longitude: 77.21,
			expected:  time.Date(2024, 1, 7, 7, 14, 0, 0, ist),
		},
		{
			// Sunrise in Tokyo falls on the previous UTC day
			name:      "Tokyo winter",
			date:      time.Date(2024, 1, 7, 12, 0, 0, 0, jst),
			latitude:  35.68,
			longitude: 139.69,
			expected:  time.Date(2024, 1, 7, 6, 51, 0, 0, jst),
		},
		{
			// UTC+14 at 157W: the rising for the UTC date is a civil day late
			name:      "Kiritimati new year",
			date:      time.Date(2024, 1, 1, 0, 0, 0, 0, lint),
			latitude:  1.87,
			longitude: -157.4,
			expected:  time.Date(2024, 1, 1, 6, 32, 0, 0, lint),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sunrise, err := Sunrise(tt.date, tt.latitude, tt.longitude)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			diff := sunrise.Sub(tt.expected)
			if diff < 0 {
				diff = -diff
			}
			if diff > 15*time.Minute {
				t.Errorf("sunrise = %v, expected ~%v (±15m)", sunrise, tt.expected)
			}
			if sy, sm, sd := sunrise.Date(); sy != tt.date.Year() || sm != tt.date.Month() || sd != tt.date.Day() {
				t.Errorf("sunrise %v is not on the civil date of %v", sunrise, tt.date)
			}
			if sunrise.Location() != tt.date.Location() {
				t.Errorf("sunrise location = %v, expected %v", sunrise.Location(), tt.date.Location())
			}
		})
	}
}

func TestSunrisePolar(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
	}{
		{"Arctic circle summer (polar day)", time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)},
		{"Arctic circle winter (polar night)", time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Sunrise(tt.date, 70.0, 25.0); !errors.Is(err, ErrNoSunrise) {
				t.Errorf("err = %v, expected ErrNoSunrise", err)
			}
		})
	}
}

func TestSunriseConsecutiveDays(t *testing.T) {
	// Sunrises on consecutive days must be ordered and roughly a day apart
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev, err := Sunrise(start, 45.0, 0.0)
	if err != nil {
		t.Fatal(err)
	}

	for day := 1; day <= 366; day++ {
		sunrise, err := Sunrise(start.AddDate(0, 0, day), 45.0, 0.0)
		if err != nil {
			t.Fatalf("day %d: unexpected error: %v", day, err)
		}
		gap := sunrise.Sub(prev)
		if gap < 23*time.Hour || gap > 25*time.Hour {
			t.Errorf("day %d: sunrise gap %v", day, gap)
		}
		prev = sunrise
	}
}
