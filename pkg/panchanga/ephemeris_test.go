package panchanga

import (
	"errors"
	"math"
	"time"
)

// Mean sidereal rates in degrees per day.
const (
	moonRate = 360 / 27.321661
	sunRate  = 360 / 365.256363
)

// linearEphemeris moves the Sun and Moon at constant rates from an epoch,
// with an optional sinusoidal term on the Moon. Sunrise is at a fixed local
// time every day.
type linearEphemeris struct {
	epoch    time.Time
	moon0    float64
	sun0     float64
	moonRate float64
	sunRate  float64
	wobble   float64
	sunrise  time.Duration
	err      error
}

func newLinearEphemeris(epoch time.Time, moon0, sun0 float64) *linearEphemeris {
	return &linearEphemeris{
		epoch:    epoch,
		moon0:    moon0,
		sun0:     sun0,
		moonRate: moonRate,
		sunRate:  sunRate,
		sunrise:  6 * time.Hour,
	}
}

func (e *linearEphemeris) Longitudes(t time.Time) (float64, float64, error) {
	if e.err != nil {
		return 0, 0, e.err
	}
	days := t.Sub(e.epoch).Hours() / 24
	moon := e.moon0 + e.moonRate*days + e.wobble*math.Sin(2*math.Pi*days/27.554550)
	sun := e.sun0 + e.sunRate*days
	return norm360(moon), norm360(sun), nil
}

func (e *linearEphemeris) SunriseWindow(date time.Time) (SunriseWindow, error) {
	if e.err != nil {
		return nil, e.err
	}
	y, m, d := date.Date()
	w := make(SunriseWindow)
	for off := -1; off <= 2; off++ {
		w[off] = time.Date(y, m, d+off, 0, 0, 0, 0, date.Location()).Add(e.sunrise)
	}
	return w, nil
}

// fixedEphemeris always returns the same longitudes.
type fixedEphemeris struct {
	moon, sun float64
}

func (e fixedEphemeris) Longitudes(time.Time) (float64, float64, error) {
	return e.moon, e.sun, nil
}

func (e fixedEphemeris) SunriseWindow(time.Time) (SunriseWindow, error) {
	return nil, errors.New("no sunrise data")
}

func norm360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
