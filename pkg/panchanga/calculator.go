package panchanga

import (
	"fmt"
	"math"

	"github.com/chrissnell/panchanga/pkg/nomenclature"
)

// TithiWidth is the Moon-Sun elongation covered by one Tithi.
const TithiWidth = 12.0

// YogaWidth is the combined longitude covered by one Yoga.
const YogaWidth = 360.0 / nomenclature.YogaCount

// ComputeUnit maps angle onto units of width degrees. It returns the
// 1-based unit index and the fraction of that unit already consumed.
func ComputeUnit(angle, width float64) (index int, consumed float64, err error) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) || angle < 0 {
		return 0, 0, fmt.Errorf("%w: angle %v", ErrOutOfDomain, angle)
	}
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return 0, 0, fmt.Errorf("%w: unit width %v", ErrOutOfDomain, width)
	}

	q := math.Floor(angle / width)
	rem := angle - q*width
	// Keep the index and the remainder consistent at unit edges.
	if rem < 0 {
		q--
		rem += width
	} else if rem >= width {
		q++
		rem -= width
	}

	return int(q) + 1, rem / width, nil
}

// percentLeft converts a consumed fraction to percent remaining.
func percentLeft(consumed float64) float64 {
	return (1 - consumed) * 100
}

// ComputeTithi derives the Tithi from the Moon-Sun elongation.
func ComputeTithi(s Snapshot) (Tithi, error) {
	if err := s.validate(); err != nil {
		return Tithi{}, err
	}

	moon := s.Moon
	if moon < s.Sun {
		moon += 360
	}
	n, consumed, err := ComputeUnit(moon-s.Sun, TithiWidth)
	if err != nil {
		return Tithi{}, err
	}
	name, err := nomenclature.Tithi(n)
	if err != nil {
		return Tithi{}, fmt.Errorf("%w: %v", ErrOutOfDomain, err)
	}

	paksha := Waxing
	if n > nomenclature.TithiCount/2 {
		paksha = Waning
	}

	return Tithi{
		Anga: Anga{
			Number: n,
			Name:   name,
			Left:   percentLeft(consumed),
			Ratio:  1,
			At:     s.Instant,
		},
		Paksha: paksha,
	}, nil
}

// ComputeYoga derives the Yoga from the sum of the Moon and Sun longitudes.
func ComputeYoga(s Snapshot) (Yoga, error) {
	if err := s.validate(); err != nil {
		return Yoga{}, err
	}

	sum := s.Moon + s.Sun
	if sum >= 360 {
		sum -= 360
	}
	n, consumed, err := ComputeUnit(sum, YogaWidth)
	if err != nil {
		return Yoga{}, err
	}
	name, err := nomenclature.Yoga(n)
	if err != nil {
		return Yoga{}, fmt.Errorf("%w: %v", ErrOutOfDomain, err)
	}

	return Yoga{Anga{
		Number: n,
		Name:   name,
		Left:   percentLeft(consumed),
		Ratio:  1,
		At:     s.Instant,
	}}, nil
}

// ComputeNakshatra derives the Nakshatra from the Moon longitude. With
// withAbhijit set, Nakshatras 21 and 22 are split around Abhijit (28) and
// Ratio reports the effective width against the nominal 13°20'.
func ComputeNakshatra(s Snapshot, withAbhijit bool) (Nakshatra, error) {
	if err := s.validate(); err != nil {
		return Nakshatra{}, err
	}

	arc := nomenclature.NakshatraArc.Decimal()
	n, consumed, err := ComputeUnit(s.Moon, arc)
	if err != nil {
		return Nakshatra{}, err
	}

	ratio := 1.0
	left := percentLeft(consumed)

	if withAbhijit && (n == 21 || n == 22) {
		start := nomenclature.AbhijitStart.Decimal()
		end := nomenclature.AbhijitEnd.Decimal()

		var width, rest float64
		switch {
		case s.Moon < start:
			n = 21
			width = start - nomenclature.NakshatraStart(21)
			rest = start - s.Moon
		case s.Moon < end:
			n = nomenclature.Abhijit
			width = end - start
			rest = end - s.Moon
		default:
			n = 22
			width = nomenclature.NakshatraEnd(22) - end
			rest = nomenclature.NakshatraEnd(22) - s.Moon
		}
		ratio = width / arc
		left = rest * 100 / width
	}

	name, err := nomenclature.Nakshatra(n)
	if err != nil {
		return Nakshatra{}, fmt.Errorf("%w: %v", ErrOutOfDomain, err)
	}

	return Nakshatra{
		Anga: Anga{
			Number: n,
			Name:   name,
			Left:   left,
			Ratio:  ratio,
			At:     s.Instant,
		},
		Abhijit: withAbhijit,
	}, nil
}
