package panchanga

import "time"

// Anga is one occurrence of a calendar unit.
type Anga struct {
	Number int        `json:"number"`
	Name   string     `json:"name"`
	Left   float64    `json:"left"`  // percent of the unit remaining, (0,100]; 100 at the unit start
	Ratio  float64    `json:"ratio"` // effective width / nominal width
	At     time.Time  `json:"at"`    // instant the occurrence was computed for
	End    *time.Time `json:"end,omitempty"`
}

// Paksha is the lunar fortnight.
type Paksha string

const (
	Waxing Paksha = "shukla"
	Waning Paksha = "krishna"
)

// Tithi is the lunar day.
type Tithi struct {
	Anga
	Paksha Paksha `json:"paksha"`
}

// Nakshatra is the lunar mansion. Abhijit reports whether the Abhijit rule
// was applied; Number is 28 when the Moon is inside Abhijit itself.
type Nakshatra struct {
	Anga
	Abhijit bool `json:"abhijit"`
}

// Yoga is the unit of the combined Sun and Moon longitude.
type Yoga struct {
	Anga
}

// Karana is the half-Tithi. Half is 1 or 2.
type Karana struct {
	Anga
	Half int `json:"half"`
}

// Vara is the weekday bounded by sunrises. End carries the closing sunrise.
type Vara struct {
	Anga
	Start time.Time `json:"start"`
}

// Elements is a full Panchanga for one instant.
type Elements struct {
	Tithi     Tithi     `json:"tithi"`
	Nakshatra Nakshatra `json:"nakshatra"`
	Yoga      Yoga      `json:"yoga"`
	Karana    Karana    `json:"karana"`
	Vara      Vara      `json:"vara"`
}
