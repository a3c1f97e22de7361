// Package ephemeris provides Sun and Moon longitude and sunrise sources for
// the Panchanga. The Meeus backend uses the full lunar and solar theories
// from "Astronomical Algorithms"; the Approx backend uses short series and
// needs nothing beyond the standard math library.
package ephemeris

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chrissnell/panchanga/pkg/panchanga"
	"go.uber.org/zap"
)

// Backend names accepted by New.
const (
	BackendMeeus  = "meeus"
	BackendApprox = "approx"
)

// ErrNoSunrise is returned when the Sun does not rise on a date at the
// observer's latitude.
var ErrNoSunrise = fmt.Errorf("no sunrise: %w", panchanga.ErrOutOfDomain)

// Observer is a geographic position. Longitude is east positive.
type Observer struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// Validate checks the observer's coordinates.
func (o Observer) Validate() error {
	if math.IsNaN(o.Latitude) || o.Latitude < -90 || o.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", o.Latitude)
	}
	if math.IsNaN(o.Longitude) || o.Longitude < -180 || o.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", o.Longitude)
	}
	return nil
}

type options struct {
	ayanamsa Ayanamsa
	deltaT   time.Duration
	logger   *zap.SugaredLogger
}

// Option configures a provider.
type Option func(*options)

// WithAyanamsa sets the sidereal offset subtracted from tropical longitudes.
func WithAyanamsa(a Ayanamsa) Option {
	return func(o *options) {
		if a != nil {
			o.ayanamsa = a
		}
	}
}

// WithDeltaT sets TT-UT, the offset between dynamical and universal time.
func WithDeltaT(d time.Duration) Option {
	return func(o *options) {
		o.deltaT = d
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		ayanamsa: Lahiri,
		deltaT:   69 * time.Second,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the provider for the named backend.
func New(backend string, observer Observer, opts ...Option) (panchanga.Ephemeris, error) {
	switch strings.ToLower(backend) {
	case "", BackendMeeus:
		return NewMeeus(observer, opts...)
	case BackendApprox:
		return NewApprox(observer, opts...)
	default:
		return nil, fmt.Errorf("unknown ephemeris backend %q", backend)
	}
}

// sunriseFunc returns the sunrise for a civil date given as y/m/d in loc.
type sunriseFunc func(y int, m time.Month, d int, loc *time.Location) (time.Time, error)

// window assembles the sunrise window around date's civil day.
func window(date time.Time, sunrise sunriseFunc) (panchanga.SunriseWindow, error) {
	y, m, d := date.Date()
	w := make(panchanga.SunriseWindow, 4)
	for off := -1; off <= 2; off++ {
		day := time.Date(y, m, d+off, 12, 0, 0, 0, date.Location())
		t, err := sunrise(day.Year(), day.Month(), day.Day(), date.Location())
		if err != nil {
			return nil, fmt.Errorf("sunrise for %s: %w", day.Format(time.DateOnly), err)
		}
		w[off] = t
	}
	return w, nil
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// adding 360 to a tiny negative remainder rounds to exactly 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}
