package types

import (
	"time"

	"github.com/chrissnell/panchanga/pkg/lunar"
	"github.com/chrissnell/panchanga/pkg/panchanga"
)

// Location is the observer as reported in query output
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude,omitempty"`
	Timezone  string  `json:"timezone"`
}

// Report is the full Panchanga for one instant, as printed by the CLI and
// served at /panchanga.
type Report struct {
	Instant   time.Time       `json:"instant"`
	Location  Location        `json:"location"`
	Moon      float64         `json:"moon_longitude"`
	Sun       float64         `json:"sun_longitude"`
	MoonPhase lunar.MoonPhase `json:"moon_phase"`
	panchanga.Elements
}

// NewReport computes every element of p.
func NewReport(p *panchanga.Panchanga, loc Location, withLimit, withAbhijit bool) (*Report, error) {
	elements, err := p.All(withLimit, withAbhijit)
	if err != nil {
		return nil, err
	}

	snap := p.Data()
	return &Report{
		Instant:   snap.Instant,
		Location:  loc,
		Moon:      snap.Moon,
		Sun:       snap.Sun,
		MoonPhase: lunar.Calculate(snap.Instant),
		Elements:  elements,
	}, nil
}
