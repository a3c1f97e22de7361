package panchanga

import (
	"fmt"
	"time"

	"github.com/chrissnell/panchanga/pkg/nomenclature"
)

// ComputeVara resolves the sunrise-bounded weekday for t. The civil weekday
// is taken in t's location, so t and the sunrise window must describe the
// same place.
func ComputeVara(t time.Time, w SunriseWindow) (Vara, error) {
	prev, err := w.At(-1)
	if err != nil {
		return Vara{}, err
	}
	today, err := w.At(0)
	if err != nil {
		return Vara{}, err
	}
	next, err := w.At(1)
	if err != nil {
		return Vara{}, err
	}
	if !prev.Before(today) || !today.Before(next) {
		return Vara{}, fmt.Errorf("%w: sunrises out of order (%s, %s, %s)", ErrOutOfDomain,
			prev.Format(time.RFC3339), today.Format(time.RFC3339), next.Format(time.RFC3339))
	}

	weekday := int(t.Weekday())

	var (
		n          int
		start, end time.Time
	)
	if !t.Before(today) {
		n = weekday + 1
		start, end = today, next
	} else {
		n = weekday
		if n == 0 {
			n = nomenclature.VaraCount
		}
		start, end = prev, today
	}

	if t.Before(start) || !t.Before(end) {
		return Vara{}, fmt.Errorf("%w: %s falls outside sunrise window [%s, %s)", ErrOutOfDomain,
			t.Format(time.RFC3339), start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	name, err := nomenclature.Vara(n)
	if err != nil {
		return Vara{}, fmt.Errorf("%w: %v", ErrOutOfDomain, err)
	}

	left := float64(end.Sub(t)) * 100 / float64(end.Sub(start))

	return Vara{
		Anga: Anga{
			Number: n,
			Name:   name,
			Left:   left,
			Ratio:  1,
			At:     t,
			End:    &end,
		},
		Start: start,
	}, nil
}
