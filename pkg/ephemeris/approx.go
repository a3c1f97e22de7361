package ephemeris

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/panchanga/pkg/lunar"
	"github.com/chrissnell/panchanga/pkg/panchanga"
	"github.com/chrissnell/panchanga/pkg/solar"
)

// Approx uses the short Sun and Moon series from pkg/lunar and the
// day-of-year sunrise from pkg/solar. Boundaries land within about half an
// hour of the Meeus backend.
type Approx struct {
	observer Observer
	options
}

// NewApprox returns an Approx provider for the observer.
func NewApprox(observer Observer, opts ...Option) (*Approx, error) {
	if err := observer.Validate(); err != nil {
		return nil, err
	}
	return &Approx{observer: observer, options: newOptions(opts)}, nil
}

// Longitudes returns the sidereal longitudes of the Moon and Sun.
func (a *Approx) Longitudes(t time.Time) (moon, sun float64, err error) {
	if a == nil {
		return 0, 0, panchanga.ErrInvalidEphemeris
	}
	moon, sun = lunar.Longitudes(t.Add(a.deltaT))
	ayanamsa := a.ayanamsa(t)
	return normalize(moon - ayanamsa), normalize(sun - ayanamsa), nil
}

// SunriseWindow returns sunrises for the day before through two days after
// date's civil day.
func (a *Approx) SunriseWindow(date time.Time) (panchanga.SunriseWindow, error) {
	return window(date, a.sunrise)
}

func (a *Approx) sunrise(y int, m time.Month, d int, loc *time.Location) (time.Time, error) {
	if a == nil {
		return time.Time{}, panchanga.ErrInvalidEphemeris
	}
	t, err := solar.Sunrise(time.Date(y, m, d, 12, 0, 0, 0, loc), a.observer.Latitude, a.observer.Longitude)
	if errors.Is(err, solar.ErrNoSunrise) {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoSunrise, err)
	}
	return t, err
}
