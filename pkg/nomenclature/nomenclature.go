// Package nomenclature holds the static name tables of the Panchanga: the
// labels for every Tithi, Nakshatra, Yoga, Vara and Karana, the mapping of
// each half-Tithi to its Karana, and the fixed arc boundaries used by the
// Abhijit rule.
package nomenclature

import "fmt"

// Month lengths in days, used to size the nominal duration of a unit.
const (
	SynodicMonth  = 29.530588853
	SiderealMonth = 27.321661
)

// Counts of units per cycle.
const (
	TithiCount     = 30
	NakshatraCount = 27
	YogaCount      = 27
	VaraCount      = 7
	KaranaCount    = 11
)

// Abhijit is the intercalary 28th Nakshatra.
const Abhijit = 28

var tithiNames = [TithiCount + 1]string{
	"",
	"Pratipada", "Dvitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dvadashi", "Trayodashi", "Chaturdashi", "Purnima",
	"Pratipada", "Dvitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dvadashi", "Trayodashi", "Chaturdashi", "Amavasya",
}

var nakshatraNames = [NakshatraCount + 2]string{
	"",
	"Ashvini", "Bharani", "Krittika", "Rohini", "Mrigashira",
	"Ardra", "Punarvasu", "Pushya", "Ashlesha", "Magha",
	"Purva Phalguni", "Uttara Phalguni", "Hasta", "Chitra", "Svati",
	"Vishakha", "Anuradha", "Jyeshtha", "Mula", "Purva Ashadha",
	"Uttara Ashadha", "Shravana", "Dhanishtha", "Shatabhisha", "Purva Bhadrapada",
	"Uttara Bhadrapada", "Revati", "Abhijit",
}

var yogaNames = [YogaCount + 1]string{
	"",
	"Vishkumbha", "Priti", "Ayushman", "Saubhagya", "Shobhana",
	"Atiganda", "Sukarma", "Dhriti", "Shula", "Ganda",
	"Vriddhi", "Dhruva", "Vyaghata", "Harshana", "Vajra",
	"Siddhi", "Vyatipata", "Variyana", "Parigha", "Shiva",
	"Siddha", "Sadhya", "Shubha", "Shukla", "Brahma",
	"Indra", "Vaidhriti",
}

// Vara 1 is Sunday.
var varaNames = [VaraCount + 1]string{
	"",
	"Ravivara", "Somavara", "Mangalavara", "Budhavara",
	"Guruvara", "Shukravara", "Shanivara",
}

// Karanas 1-7 repeat through the month; 8-11 occur once each.
var karanaNames = [KaranaCount + 1]string{
	"",
	"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija", "Vishti",
	"Shakuni", "Chatushpada", "Naga", "Kimstughna",
}

// tithiKarana[n][h] is the Karana number of half h (1 or 2) of Tithi n.
var tithiKarana = buildTithiKarana()

func buildTithiKarana() [TithiCount + 1][3]int {
	var table [TithiCount + 1][3]int
	for n := 1; n <= TithiCount; n++ {
		for h := 1; h <= 2; h++ {
			k := 2*(n-1) + h // 1..60
			switch {
			case k == 1:
				table[n][h] = 11
			case k >= 58:
				table[n][h] = k - 50 // Shakuni, Chatushpada, Naga
			default:
				table[n][h] = (k-2)%7 + 1
			}
		}
	}
	return table
}

// Tithi returns the name of Tithi n (1..30).
func Tithi(n int) (string, error) {
	if n < 1 || n > TithiCount {
		return "", fmt.Errorf("tithi number %d out of range", n)
	}
	return tithiNames[n], nil
}

// Nakshatra returns the name of Nakshatra n (1..28).
func Nakshatra(n int) (string, error) {
	if n < 1 || n > Abhijit {
		return "", fmt.Errorf("nakshatra number %d out of range", n)
	}
	return nakshatraNames[n], nil
}

// Yoga returns the name of Yoga n (1..27).
func Yoga(n int) (string, error) {
	if n < 1 || n > YogaCount {
		return "", fmt.Errorf("yoga number %d out of range", n)
	}
	return yogaNames[n], nil
}

// Vara returns the name of Vara n (1..7).
func Vara(n int) (string, error) {
	if n < 1 || n > VaraCount {
		return "", fmt.Errorf("vara number %d out of range", n)
	}
	return varaNames[n], nil
}

// Karana returns the name of Karana n (1..11).
func Karana(n int) (string, error) {
	if n < 1 || n > KaranaCount {
		return "", fmt.Errorf("karana number %d out of range", n)
	}
	return karanaNames[n], nil
}

// KaranaNumber is the reverse lookup of Karana.
func KaranaNumber(name string) (int, error) {
	for n := 1; n <= KaranaCount; n++ {
		if karanaNames[n] == name {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown karana %q", name)
}

// TithiKarana returns the name of the Karana active in half h (1 or 2) of
// Tithi n.
func TithiKarana(n, h int) (string, error) {
	if n < 1 || n > TithiCount {
		return "", fmt.Errorf("tithi number %d out of range", n)
	}
	if h != 1 && h != 2 {
		return "", fmt.Errorf("tithi half %d out of range", h)
	}
	return karanaNames[tithiKarana[n][h]], nil
}
