package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chrissnell/panchanga/pkg/ephemeris"
	"github.com/chrissnell/panchanga/pkg/lunar"
	"github.com/chrissnell/panchanga/pkg/panchanga"
)

func main() {
	var timeStr string
	var backend string
	flag.StringVar(&timeStr, "time", "", "UTC time to calculate phase for (RFC3339 format, e.g., 2024-01-15T12:00:00Z)")
	flag.StringVar(&backend, "backend", ephemeris.BackendMeeus, "Ephemeris backend for the tithi: meeus or approx")
	flag.Parse()

	var t time.Time
	if timeStr == "" {
		t = time.Now().UTC()
	} else {
		var err error
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	phase := lunar.Calculate(t)

	fmt.Printf("Moon Phase for %s\n", t.Format(time.RFC3339))
	fmt.Printf("  Phase:        %.1f%% (%.4f)\n", phase.Phase*100, phase.Phase)
	fmt.Printf("  Phase Name:   %s\n", phase.PhaseName)
	fmt.Printf("  Illumination: %.1f%%\n", phase.Illumination*100)
	fmt.Printf("  Age:          %.1f days\n", phase.AgeDays)
	fmt.Printf("  Elongation:   %.1f°\n", phase.Elongation)
	if phase.IsWaxing {
		fmt.Printf("  Direction:    Waxing\n")
	} else {
		fmt.Printf("  Direction:    Waning\n")
	}

	// The tithi depends only on elongation, so any observer will do.
	e, err := ephemeris.New(backend, ephemeris.Observer{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating ephemeris: %v\n", err)
		os.Exit(1)
	}
	p, err := panchanga.New(e, t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing tithi: %v\n", err)
		os.Exit(1)
	}
	tithi, err := p.Tithi(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing tithi: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  Tithi:        %d %s (%s paksha, %.1f%% left)\n", tithi.Number, tithi.Name, tithi.Paksha, tithi.Left)
	if tithi.End != nil {
		fmt.Printf("  Tithi Ends:   %s\n", tithi.End.UTC().Format(time.RFC3339))
	}
}
