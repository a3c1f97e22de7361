// Package lunar provides low-precision tropical ecliptic longitudes of the
// Sun and Moon and the moon phase derived from them. The Moon series keeps
// only the dominant periodic terms, so longitudes are good to a few tenths
// of a degree, which places Tithi and Nakshatra boundaries within roughly
// half an hour.
package lunar

import (
	"math"
	"time"

	"github.com/chrissnell/panchanga/pkg/nomenclature"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
)

// SynodicMonth is the average length of the lunar cycle in days
const SynodicMonth = nomenclature.SynodicMonth

// MoonPhase contains calculated moon phase information
type MoonPhase struct {
	Phase        float64 `json:"phase"`        // Phase fraction [0,1): 0=new, 0.5=full
	Elongation   float64 `json:"elongation"`   // Sun→Moon angle in degrees [0,360)
	Illumination float64 `json:"illumination"` // Illuminated fraction [0,1]: 0=new, 1=full
	AgeDays      float64 `json:"age_days"`     // Days since new moon [0,SynodicMonth)
	IsWaxing     bool    `json:"waxing"`       // True when moon is waxing (getting fuller)
	PhaseName    string  `json:"name"`         // Human-readable phase name
}

// Longitudes returns the tropical ecliptic longitudes of the Moon and Sun
// in degrees [0,360) for the given instant
func Longitudes(t time.Time) (moon, sun float64) {
	T := base.J2000Century(julian.TimeToJD(t.UTC()))
	return moonEclipticLongitude(T), sunEclipticLongitude(T)
}

// Calculate computes the moon phase for a given instant
func Calculate(t time.Time) MoonPhase {
	lambdaMoon, lambdaSun := Longitudes(t)

	elongation := normalizeAngle(lambdaMoon - lambdaSun)
	phase := elongation / 360.0
	illumination := (1 - math.Cos(degToRad(elongation))) / 2
	ageDays := phase * SynodicMonth
	isWaxing := elongation < 180

	return MoonPhase{
		Phase:        phase,
		Elongation:   elongation,
		Illumination: illumination,
		AgeDays:      ageDays,
		IsWaxing:     isWaxing,
		PhaseName:    phaseName(illumination, isWaxing),
	}
}

// phaseName returns the 8-phase name based on illumination percentage and direction
func phaseName(illumination float64, isWaxing bool) string {
	switch {
	case illumination < 0.01:
		return "New Moon"
	case illumination > 0.99:
		return "Full Moon"
	case illumination >= 0.49 && illumination <= 0.51:
		if isWaxing {
			return "First Quarter"
		}
		return "Third Quarter"
	case illumination < 0.50:
		if isWaxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if isWaxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}

// normalizeAngle wraps an angle to the range [0, 360)
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

// degToRad converts degrees to radians
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// sunEclipticLongitude computes the Sun's ecliptic longitude in degrees
func sunEclipticLongitude(T float64) float64 {
	// Mean longitude
	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T

	// Mean anomaly
	M := 357.52911 + 35999.05029*T - 0.0001537*T*T
	Mrad := degToRad(normalizeAngle(M))

	// Equation of center
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(Mrad) +
		(0.019993-0.000101*T)*math.Sin(2*Mrad) +
		0.000289*math.Sin(3*Mrad)

	return normalizeAngle(L0 + C)
}

// moonEclipticLongitude computes the Moon's ecliptic longitude in degrees
func moonEclipticLongitude(T float64) float64 {
	// Mean longitude
	L := 218.3164477 +
		481267.88123421*T -
		0.0015786*T*T +
		T*T*T/538841 -
		T*T*T*T/65194000

	// Moon mean elongation
	D := 297.8501921 +
		445267.1114034*T -
		0.0018819*T*T +
		T*T*T/545868 -
		T*T*T*T/113065000

	// Sun mean anomaly
	M := 357.5291092 +
		35999.0502909*T -
		0.0001536*T*T +
		T*T*T/24490000

	// Moon mean anomaly
	Mp := 134.9633964 +
		477198.8675055*T +
		0.0087414*T*T +
		T*T*T/69699 -
		T*T*T*T/14712000

	// Moon argument of latitude
	F := 93.2720950 +
		483202.0175233*T -
		0.0036539*T*T -
		T*T*T/3526000 +
		T*T*T*T/863310000

	// Normalize before using in trig functions
	Drad := degToRad(normalizeAngle(D))
	Mrad := degToRad(normalizeAngle(M))
	Mprad := degToRad(normalizeAngle(Mp))
	Frad := degToRad(normalizeAngle(F))

	// Longitude correction (dominant terms of Meeus Table 47.A)
	lambdaMoon := L +
		6.288774*math.Sin(Mprad) +
		1.274027*math.Sin(2*Drad-Mprad) +
		0.658314*math.Sin(2*Drad) +
		0.213618*math.Sin(2*Mprad) -
		0.185116*math.Sin(Mrad) -
		0.114332*math.Sin(2*Frad) +
		0.058793*math.Sin(2*Drad-2*Mprad) +
		0.057066*math.Sin(2*Drad-Mrad-Mprad) +
		0.053322*math.Sin(2*Drad+Mprad) +
		0.045758*math.Sin(2*Drad-Mrad) -
		0.040923*math.Sin(Mrad-Mprad) -
		0.034720*math.Sin(Drad) -
		0.030383*math.Sin(Mrad+Mprad)

	return normalizeAngle(lambdaMoon)
}
