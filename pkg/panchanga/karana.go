package panchanga

import (
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/panchanga/pkg/nomenclature"
)

// ComputeKarana derives the Karana from a Tithi computed for the same
// instant. When the Tithi carries an end timestamp the Karana gets one too:
// the second half ends with the Tithi, the first half at its midpoint.
func ComputeKarana(t Tithi) (Karana, error) {
	if t.Number < 1 || t.Number > nomenclature.TithiCount {
		return Karana{}, fmt.Errorf("%w: tithi number %d", ErrOutOfDomain, t.Number)
	}
	if math.IsNaN(t.Left) || t.Left < 0 || t.Left > 100 {
		return Karana{}, fmt.Errorf("%w: tithi left %v", ErrOutOfDomain, t.Left)
	}

	var (
		half int
		rest float64
		end  *time.Time
	)

	if t.Left >= 50 {
		half = 1
		rest = t.Left - 50
		if t.End != nil {
			toEnd := t.End.Sub(t.At).Seconds()
			if toEnd < 0 {
				return Karana{}, fmt.Errorf("%w: tithi ends before %s", ErrOutOfDomain, t.At.Format(time.RFC3339))
			}
			offset := math.Round(toEnd * 50 / t.Left)
			e := t.End.Add(-time.Duration(offset) * time.Second)
			end = &e
		}
	} else {
		half = 2
		rest = t.Left
		if t.End != nil {
			e := *t.End
			end = &e
		}
	}

	name, err := nomenclature.TithiKarana(t.Number, half)
	if err != nil {
		return Karana{}, fmt.Errorf("%w: %v", ErrOutOfDomain, err)
	}
	n, err := nomenclature.KaranaNumber(name)
	if err != nil {
		return Karana{}, fmt.Errorf("%w: %v", ErrOutOfDomain, err)
	}

	return Karana{
		Anga: Anga{
			Number: n,
			Name:   name,
			Left:   rest * 2,
			Ratio:  1,
			At:     t.At,
			End:    end,
		},
		Half: half,
	}, nil
}
