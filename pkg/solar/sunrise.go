// Package solar provides a low-precision sunrise calculation for a civil
// date and an observer position. It uses a day-of-year declination formula
// and the equation of time, which is accurate to a few minutes outside the
// polar regions.
package solar

import (
	"errors"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// ErrNoSunrise is returned for polar day (sun never sets) or polar night
// (sun never rises).
var ErrNoSunrise = errors.New("sun does not cross the horizon on this date")

// horizonAltitude is the altitude of the Sun's centre at apparent sunrise:
// 34' of refraction plus 16' of semidiameter.
const horizonAltitude = -0.8333

// degToRad converts an angle from degrees to radians for trigonometric calculations
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// radToDeg converts an angle from radians to degrees for human-readable output
func radToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// fixAngle normalizes an angle to the range [0, 360) degrees
func fixAngle(angle float64) float64 {
	return angle - 360.0*math.Floor(angle/360.0)
}

// equationOfTime calculates the Equation of Time (EoT) in minutes, the difference between apparent and mean solar time
func equationOfTime(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	T := (jd - 2451545.0) / 36525.0 // Julian centuries since J2000.0 (Jan 1, 2000, 12:00 TT)

	// Solar coordinates for EoT calculation
	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))            // Mean longitude of the Sun (degrees)
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))             // Mean anomaly of the Sun (degrees)
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)                  // Eccentricity of Earth's orbit
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60 // Mean obliquity of the ecliptic (degrees)

	// y approximates the effect of Earth's tilt; terms adjust for orbital variations
	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	eqTimeMin := radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4 // Convert to minutes (4 min/degree)

	return eqTimeMin
}

// declination returns the solar declination in radians for a day of the year
func declination(dayOfYear int) float64 {
	doy := float64(dayOfYear)
	innerAngle := (356.6 + 0.9856*doy) * (math.Pi / 180.0)
	outerAngle := (278.97 + 0.9856*doy + 1.9165*math.Sin(innerAngle)) * (math.Pi / 180.0)
	return math.Asin(0.39785 * math.Sin(outerAngle))
}

// Sunrise returns the sunrise on the civil date of date, taken in date's
// location, for an observer at latitude and longitude (east positive). The
// result is expressed in date's location.
func Sunrise(date time.Time, latitude, longitude float64) (time.Time, error) {
	y, m, d := date.Date()
	midnightUTC := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	noonUTC := midnightUTC.Add(12 * time.Hour)

	declinationRad := declination(noonUTC.YearDay())
	latRad := degToRad(latitude)

	// Hour angle at which the Sun's centre reaches the horizon altitude
	cosH := (math.Sin(degToRad(horizonAltitude)) - math.Sin(latRad)*math.Sin(declinationRad)) /
		(math.Cos(latRad) * math.Cos(declinationRad))
	if cosH < -1.0 || cosH > 1.0 {
		return time.Time{}, ErrNoSunrise
	}

	hourAngleMinutes := radToDeg(math.Acos(cosH)) * 4.0 // 4 minutes per degree

	// Solar noon in UTC minutes from midnight, adjusted for longitude and
	// the equation of time. East of Greenwich this can fall on the previous
	// UTC day, which is still the right civil date for the observer.
	solarNoonUTC := 720.0 - 4.0*longitude - equationOfTime(noonUTC)
	sunriseUTC := solarNoonUTC - hourAngleMinutes

	sunrise := midnightUTC.Add(time.Duration(sunriseUTC * float64(time.Minute))).In(date.Location())

	// Zones far from their longitude (Kiritimati, UTC+14 at 157W) put the
	// rising computed for the UTC date on a neighbouring civil date.
	civil := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		sy, sm, sd := sunrise.Date()
		got := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
		switch {
		case got.After(civil):
			sunrise = sunrise.Add(-24 * time.Hour)
		case got.Before(civil):
			sunrise = sunrise.Add(24 * time.Hour)
		default:
			return sunrise, nil
		}
	}
	return sunrise, nil
}
