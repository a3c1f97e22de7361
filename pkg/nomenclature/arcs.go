package nomenclature

// DMS is an arc expressed in degrees, minutes and seconds.
type DMS struct {
	D, M, S float64
}

// Decimal converts the arc to decimal degrees.
func (a DMS) Decimal() float64 {
	return a.D + a.M/60 + a.S/3600
}

// NakshatraArc is the nominal width of one Nakshatra, 13°20'.
var NakshatraArc = DMS{13, 20, 0}

// Fixed boundaries of Abhijit, carved out of the end of Uttara Ashadha (21)
// and the start of Shravana (22).
var (
	AbhijitStart = DMS{276, 40, 0}
	AbhijitEnd   = DMS{280, 53, 20}
)

// NakshatraStart returns the starting longitude of Nakshatra n (1..27).
func NakshatraStart(n int) float64 {
	return float64(n-1) * NakshatraArc.Decimal()
}

// NakshatraEnd returns the ending longitude of Nakshatra n (1..27).
func NakshatraEnd(n int) float64 {
	return float64(n) * NakshatraArc.Decimal()
}
