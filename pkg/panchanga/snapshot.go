package panchanga

import (
	"fmt"
	"math"
	"time"
)

// Ephemeris supplies sidereal Sun and Moon longitudes and sunrise times.
// Implementations must be stateless with respect to the instant queried, so
// the boundary solver can evaluate trial instants freely.
type Ephemeris interface {
	// Longitudes returns the Moon and Sun longitudes in [0,360) degrees.
	Longitudes(t time.Time) (moon, sun float64, err error)

	// SunriseWindow returns sunrises keyed by day offset from the civil
	// date of date (in date's location), covering at least -1..+2.
	SunriseWindow(date time.Time) (SunriseWindow, error)
}

// SunriseWindow maps a day offset to the sunrise of that day.
type SunriseWindow map[int]time.Time

// At returns the sunrise for the given day offset.
func (w SunriseWindow) At(offset int) (time.Time, error) {
	t, ok := w[offset]
	if !ok || t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: no sunrise for day offset %d", ErrOutOfDomain, offset)
	}
	return t, nil
}

// Snapshot is the view of the sky at one instant. Sunrises is empty until
// the Vara is resolved, which is the only query that needs it.
type Snapshot struct {
	Instant  time.Time     `json:"instant"`
	Moon     float64       `json:"moon"`
	Sun      float64       `json:"sun"`
	Sunrises SunriseWindow `json:"-"`
}

// longitudeSnapshot fetches only the longitudes, which is all the angle
// based units and the boundary solver need.
func longitudeSnapshot(e Ephemeris, t time.Time) (Snapshot, error) {
	if e == nil {
		return Snapshot{}, ErrInvalidEphemeris
	}
	moon, sun, err := e.Longitudes(t)
	if err != nil {
		return Snapshot{}, fmt.Errorf("error fetching longitudes for %s: %w", t.Format(time.RFC3339), err)
	}
	s := Snapshot{Instant: t, Moon: moon, Sun: sun}
	if err := s.validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func (s Snapshot) validate() error {
	if !validLongitude(s.Moon) {
		return fmt.Errorf("%w: moon longitude %v", ErrOutOfDomain, s.Moon)
	}
	if !validLongitude(s.Sun) {
		return fmt.Errorf("%w: sun longitude %v", ErrOutOfDomain, s.Sun)
	}
	return nil
}

func validLongitude(l float64) bool {
	return !math.IsNaN(l) && !math.IsInf(l, 0) && l >= 0 && l < 360
}
