package panchanga

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/chrissnell/panchanga/pkg/nomenclature"
)

var testInstant = time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)

func snap(moon, sun float64) Snapshot {
	return Snapshot{Instant: testInstant, Moon: moon, Sun: sun}
}

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestComputeUnit(t *testing.T) {
	tests := []struct {
		name             string
		angle, width     float64
		expectedIndex    int
		expectedConsumed float64
	}{
		{"start of first unit", 0, 12, 1, 0},
		{"inside first unit", 10, 12, 1, 10.0 / 12},
		{"exact boundary", 24, 12, 3, 0},
		{"last tithi", 359.5, 12, 30, 11.5 / 12},
		{"nakshatra width", 100, 360.0 / 27, 8, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, consumed, err := ComputeUnit(tt.angle, tt.width)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if index != tt.expectedIndex {
				t.Errorf("index = %d, expected %d", index, tt.expectedIndex)
			}
			if !approxEqual(consumed, tt.expectedConsumed, 1e-9) {
				t.Errorf("consumed = %.9f, expected %.9f", consumed, tt.expectedConsumed)
			}
		})
	}
}

func TestComputeUnitRejectsBadInput(t *testing.T) {
	tests := []struct {
		name         string
		angle, width float64
	}{
		{"NaN angle", math.NaN(), 12},
		{"negative angle", -1, 12},
		{"infinite angle", math.Inf(1), 12},
		{"zero width", 10, 0},
		{"negative width", 10, -12},
		{"NaN width", 10, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ComputeUnit(tt.angle, tt.width)
			if !errors.Is(err, ErrOutOfDomain) {
				t.Errorf("err = %v, expected ErrOutOfDomain", err)
			}
		})
	}
}

func TestComputeUnitProperties(t *testing.T) {
	for _, width := range []float64{TithiWidth, YogaWidth} {
		prevIndex := 0
		for angle := 0.0; angle < 360; angle += 0.01 {
			index, consumed, err := ComputeUnit(angle, width)
			if err != nil {
				t.Fatalf("ComputeUnit(%v, %v): %v", angle, width, err)
			}
			if index < 1 {
				t.Fatalf("ComputeUnit(%v, %v) index %d < 1", angle, width, index)
			}
			if index < prevIndex {
				t.Fatalf("index decreased from %d to %d at angle %v", prevIndex, index, angle)
			}
			if consumed < 0 || consumed >= 1 {
				t.Fatalf("consumed %v out of [0,1) at angle %v", consumed, angle)
			}
			left := percentLeft(consumed)
			if left <= 0 || left > 100 {
				t.Fatalf("left %v out of (0,100] at angle %v", left, angle)
			}
			prevIndex = index
		}
		if maxIndex := int(math.Round(360 / width)); prevIndex != maxIndex {
			t.Errorf("width %v: last index %d, expected %d", width, prevIndex, maxIndex)
		}
	}
}

func TestComputeTithi(t *testing.T) {
	tests := []struct {
		name           string
		moon, sun      float64
		expectedNumber int
		expectedLeft   float64
		expectedPaksha Paksha
	}{
		{"moon ahead of sun", 200, 190, 1, 100.0 * 2 / 12, Waxing},
		{"moon behind sun wraps", 5, 350, 2, 100.0 * 9 / 12, Waxing},
		{"full moon tithi", 178, 0, 15, 100.0 * 2 / 12, Waxing},
		{"first waning tithi", 190, 0, 16, 100.0 * 2 / 12, Waning},
		{"new moon tithi", 355, 0, 30, 100.0 * 5 / 12, Waning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tithi, err := ComputeTithi(snap(tt.moon, tt.sun))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tithi.Number != tt.expectedNumber {
				t.Errorf("Number = %d, expected %d", tithi.Number, tt.expectedNumber)
			}
			if !approxEqual(tithi.Left, tt.expectedLeft, 1e-6) {
				t.Errorf("Left = %.4f, expected %.4f", tithi.Left, tt.expectedLeft)
			}
			if tithi.Paksha != tt.expectedPaksha {
				t.Errorf("Paksha = %q, expected %q", tithi.Paksha, tt.expectedPaksha)
			}
			name, _ := nomenclature.Tithi(tt.expectedNumber)
			if tithi.Name != name {
				t.Errorf("Name = %q, expected %q", tithi.Name, name)
			}
			if tithi.Ratio != 1 || !tithi.At.Equal(testInstant) || tithi.End != nil {
				t.Errorf("unexpected anga fields: %+v", tithi.Anga)
			}
		})
	}
}

func TestComputeYoga(t *testing.T) {
	tests := []struct {
		name           string
		moon, sun      float64
		expectedNumber int
		expectedLeft   float64
	}{
		{"sum below 360", 20, 10, 3, 75},
		{"sum wraps past 360", 300, 110, 4, 25},
		{"sum exactly 360", 200, 160, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yoga, err := ComputeYoga(snap(tt.moon, tt.sun))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if yoga.Number != tt.expectedNumber {
				t.Errorf("Number = %d, expected %d", yoga.Number, tt.expectedNumber)
			}
			if !approxEqual(yoga.Left, tt.expectedLeft, 1e-6) {
				t.Errorf("Left = %.4f, expected %.4f", yoga.Left, tt.expectedLeft)
			}
		})
	}
}

func TestComputeNakshatra(t *testing.T) {
	arc := nomenclature.NakshatraArc.Decimal()
	abhijitStart := nomenclature.AbhijitStart.Decimal()
	abhijitEnd := nomenclature.AbhijitEnd.Decimal()

	tests := []struct {
		name           string
		moon           float64
		withAbhijit    bool
		expectedNumber int
		expectedLeft   float64
		expectedRatio  float64
	}{
		{"plain", 100, false, 8, 50, 1},
		{"unit 21 without abhijit", 278, false, 21, (280 - 278) * 100 / arc, 1},
		{"abhijit rule outside 21/22", 100, true, 8, 50, 1},
		{"21 before abhijit", 270, true, 21, (abhijitStart - 270) * 10, 10 / arc},
		{"inside abhijit", 278, true, 28, (abhijitEnd - 278) * 100 / (abhijitEnd - abhijitStart), (abhijitEnd - abhijitStart) / arc},
		{"22 after abhijit", 285, true, 22, (22*arc - 285) * 100 / (22*arc - abhijitEnd), (22*arc - abhijitEnd) / arc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ComputeNakshatra(snap(tt.moon, 0), tt.withAbhijit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.Number != tt.expectedNumber {
				t.Errorf("Number = %d, expected %d", n.Number, tt.expectedNumber)
			}
			if !approxEqual(n.Left, tt.expectedLeft, 1e-6) {
				t.Errorf("Left = %.4f, expected %.4f", n.Left, tt.expectedLeft)
			}
			if !approxEqual(n.Ratio, tt.expectedRatio, 1e-9) {
				t.Errorf("Ratio = %.6f, expected %.6f", n.Ratio, tt.expectedRatio)
			}
			if n.Abhijit != tt.withAbhijit {
				t.Errorf("Abhijit = %v, expected %v", n.Abhijit, tt.withAbhijit)
			}
		})
	}
}

func TestAbhijitPartition(t *testing.T) {
	arc := nomenclature.NakshatraArc.Decimal()
	widths := make(map[int]float64)

	for moon := nomenclature.NakshatraStart(21) + 0.001; moon < nomenclature.NakshatraEnd(22); moon += 0.01 {
		n, err := ComputeNakshatra(snap(moon, 0), true)
		if err != nil {
			t.Fatalf("moon %v: %v", moon, err)
		}
		switch n.Number {
		case 21, 22, nomenclature.Abhijit:
		default:
			t.Fatalf("moon %v: unexpected nakshatra %d", moon, n.Number)
		}
		if n.Left <= 0 || n.Left > 100 {
			t.Fatalf("moon %v: left %v out of range", moon, n.Left)
		}
		widths[n.Number] = n.Ratio * arc
	}

	if len(widths) != 3 {
		t.Fatalf("saw %d units, expected 3", len(widths))
	}
	total := widths[21] + widths[22] + widths[nomenclature.Abhijit]
	if !approxEqual(total, 2*arc, 1e-9) {
		t.Errorf("effective widths sum to %.9f, expected %.9f", total, 2*arc)
	}
}

func TestComputeRejectsBadLongitudes(t *testing.T) {
	for _, s := range []Snapshot{snap(math.NaN(), 0), snap(10, 360), snap(-1, 10), snap(10, math.Inf(-1))} {
		if _, err := ComputeTithi(s); !errors.Is(err, ErrOutOfDomain) {
			t.Errorf("ComputeTithi(%v, %v) err = %v", s.Moon, s.Sun, err)
		}
		if _, err := ComputeYoga(s); !errors.Is(err, ErrOutOfDomain) {
			t.Errorf("ComputeYoga(%v, %v) err = %v", s.Moon, s.Sun, err)
		}
		if _, err := ComputeNakshatra(s, true); !errors.Is(err, ErrOutOfDomain) {
			t.Errorf("ComputeNakshatra(%v, %v) err = %v", s.Moon, s.Sun, err)
		}
	}
}

// nextNumber returns the unit that follows prev as time advances.
func nextNumber(prev, units int, abhijit bool) int {
	if abhijit {
		switch prev {
		case 21:
			return nomenclature.Abhijit
		case nomenclature.Abhijit:
			return 22
		}
	}
	return prev%units + 1
}

func TestContinuityOverTime(t *testing.T) {
	tests := []struct {
		name    string
		units   int
		abhijit bool
		compute func(Snapshot) (Anga, error)
	}{
		{"tithi", nomenclature.TithiCount, false, func(s Snapshot) (Anga, error) {
			r, err := ComputeTithi(s)
			return r.Anga, err
		}},
		{"yoga", nomenclature.YogaCount, false, func(s Snapshot) (Anga, error) {
			r, err := ComputeYoga(s)
			return r.Anga, err
		}},
		{"nakshatra", nomenclature.NakshatraCount, false, func(s Snapshot) (Anga, error) {
			r, err := ComputeNakshatra(s, false)
			return r.Anga, err
		}},
		{"nakshatra with abhijit", nomenclature.NakshatraCount, true, func(s Snapshot) (Anga, error) {
			r, err := ComputeNakshatra(s, true)
			return r.Anga, err
		}},
	}

	for _, wobble := range []float64{0, 6} {
		e := newLinearEphemeris(testInstant, 0, 0)
		e.wobble = wobble

		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/wobble %v", tt.name, wobble), func(t *testing.T) {
				var (
					prev       Anga
					changes    int
					sawAbhijit bool
				)
				for step := 0; step <= 60*24*6; step++ {
					at := testInstant.Add(time.Duration(step) * 10 * time.Minute)
					s, err := longitudeSnapshot(e, at)
					if err != nil {
						t.Fatal(err)
					}
					a, err := tt.compute(s)
					if err != nil {
						t.Fatalf("%v: %v", at, err)
					}
					if a.Left <= 0 || a.Left > 100 {
						t.Fatalf("%v: left %v out of (0,100]", at, a.Left)
					}
					if a.Number == nomenclature.Abhijit {
						sawAbhijit = true
					}

					if step > 0 {
						switch a.Number {
						case prev.Number:
							if a.Left >= prev.Left {
								t.Fatalf("%v: left went from %.6f to %.6f in unit %d", at, prev.Left, a.Left, a.Number)
							}
						case nextNumber(prev.Number, tt.units, tt.abhijit):
							if a.Left < 95 {
								t.Fatalf("%v: unit %d started with left %.4f", at, a.Number, a.Left)
							}
							changes++
						default:
							t.Fatalf("%v: unit jumped from %d to %d", at, prev.Number, a.Number)
						}
					}
					prev = a
				}
				if changes < tt.units {
					t.Errorf("only %d unit changes in 60 days", changes)
				}
				if sawAbhijit != tt.abhijit {
					t.Errorf("abhijit seen = %v, expected %v", sawAbhijit, tt.abhijit)
				}
			})
		}
	}
}
