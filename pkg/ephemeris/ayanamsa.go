package ephemeris

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Ayanamsa returns the precession offset in degrees between the tropical
// and sidereal zodiacs at an instant.
type Ayanamsa func(t time.Time) float64

const (
	j2000 = 2451545.0

	// Lahiri (Chitrapaksha) value at J2000 and its annual drift.
	lahiriJ2000      = 23.853
	precessionPerDay = 50.29 / 3600 / 365.25
)

// Lahiri is the Chitrapaksha ayanamsa, linear in time around J2000.
func Lahiri(t time.Time) float64 {
	return lahiriJ2000 + (julian.TimeToJD(t.UTC())-j2000)*precessionPerDay
}

// Tropical applies no offset, so longitudes stay tropical.
func Tropical(time.Time) float64 {
	return 0
}

// Fixed returns an ayanamsa that is the same at every instant.
func Fixed(deg float64) Ayanamsa {
	return func(time.Time) float64 {
		return deg
	}
}

// ParseAyanamsa resolves "lahiri", "tropical" or a constant in degrees.
func ParseAyanamsa(s string) (Ayanamsa, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "lahiri", "chitrapaksha":
		return Lahiri, nil
	case "tropical", "none":
		return Tropical, nil
	}

	deg, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("unknown ayanamsa %q", s)
	}
	if deg < 0 || deg >= 360 {
		return nil, fmt.Errorf("ayanamsa %v out of range [0, 360)", deg)
	}
	return Fixed(deg), nil
}
