package ephemeris

import (
	"fmt"
	"time"

	"github.com/chrissnell/panchanga/pkg/panchanga"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/rise"
	"github.com/soniakeys/meeus/v3/sidereal"
	meeussolar "github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// Sunrise altitude of the Sun's centre: refraction plus semi-diameter.
var sunriseAltitude = unit.AngleFromMin(-50)

// Meeus computes apparent longitudes from the full ELP lunar series and
// the solar theory of chapter 25, and sunrise from chapter 15.
type Meeus struct {
	observer Observer
	options
}

// NewMeeus returns a Meeus provider for the observer.
func NewMeeus(observer Observer, opts ...Option) (*Meeus, error) {
	if err := observer.Validate(); err != nil {
		return nil, err
	}
	return &Meeus{observer: observer, options: newOptions(opts)}, nil
}

// jde converts a UT Julian day to the dynamical time scale.
func (m *Meeus) jde(jd float64) float64 {
	return jd + m.deltaT.Seconds()/86400
}

// Longitudes returns the sidereal apparent longitudes of the Moon and Sun.
func (m *Meeus) Longitudes(t time.Time) (moon, sun float64, err error) {
	if m == nil {
		return 0, 0, panchanga.ErrInvalidEphemeris
	}
	jde := m.jde(julian.TimeToJD(t.UTC()))

	λSun := meeussolar.ApparentLongitude(base.J2000Century(jde))
	λMoon, _, _ := moonposition.Position(jde)
	Δψ, _ := nutation.Nutation(jde)

	ayanamsa := m.ayanamsa(t)
	moon = normalize(λMoon.Deg() + Δψ.Deg() - ayanamsa)
	sun = normalize(λSun.Deg() - ayanamsa)

	m.logger.Debugf("meeus longitudes at %s: moon %.6f sun %.6f ayanamsa %.6f",
		t.UTC().Format(time.RFC3339), moon, sun, ayanamsa)
	return moon, sun, nil
}

// SunriseWindow returns sunrises for the day before through two days after
// date's civil day.
func (m *Meeus) SunriseWindow(date time.Time) (panchanga.SunriseWindow, error) {
	return window(date, m.sunrise)
}

// sunrise finds the rising on the local civil date y-mo-d. The event may
// fall on the UT day before or after, so neighbouring UT days are tried.
// ApproxTimes wraps the rising into its UT day, so a rising close to 0h UT
// can come back a day late; each candidate is also tried a day either side.
func (m *Meeus) sunrise(y int, mo time.Month, d int, loc *time.Location) (time.Time, error) {
	if m == nil {
		return time.Time{}, panchanga.ErrInvalidEphemeris
	}
	coord := globe.Coord{
		Lat: unit.AngleFromDeg(m.observer.Latitude),
		// west positive
		Lon: unit.AngleFromDeg(-m.observer.Longitude),
	}

	var (
		lastErr    error
		candidates []time.Time
	)
	for _, off := range []int{0, -1, 1} {
		jd0 := julian.CalendarGregorianToJD(y, int(mo), float64(d+off))
		Th0 := sidereal.Apparent0UT(jd0)
		α, δ := meeussolar.ApparentEquatorial(m.jde(jd0))

		tRise, _, _, err := rise.ApproxTimes(coord, sunriseAltitude, Th0, α, δ)
		if err != nil {
			lastErr = err
			continue
		}
		candidates = append(candidates,
			julian.JDToTime(jd0).Add(time.Duration(tRise.Sec()*float64(time.Second))))
	}

	for _, shift := range []time.Duration{0, -24 * time.Hour, 24 * time.Hour} {
		for _, c := range candidates {
			at := c.Add(shift).In(loc)
			if ay, am, ad := at.Date(); ay == y && am == mo && ad == d {
				return at, nil
			}
		}
	}

	if lastErr != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoSunrise, lastErr)
	}
	return time.Time{}, fmt.Errorf("%w: no rising on %04d-%02d-%02d", ErrNoSunrise, y, mo, d)
}
