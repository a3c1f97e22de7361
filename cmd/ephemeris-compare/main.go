package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/chrissnell/panchanga/pkg/ephemeris"
	"github.com/chrissnell/panchanga/pkg/panchanga"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is one instant evaluated by both backends
type Sample struct {
	Time      time.Time
	MoonDiff  float64 // approx - meeus, degrees
	SunDiff   float64
	TithiDiff float64 // tithi end, approx - meeus, minutes
}

// Summary describes the distribution of one difference series
type Summary struct {
	Mean   float64
	StdDev float64
	MaxAbs float64
	// Linear drift per day, from a least-squares fit against elapsed days
	Slope float64
}

func main() {
	var (
		startStr = flag.String("start", "2024-01-01", "First day to sample (YYYY-MM-DD, UTC)")
		days     = flag.Int("days", 30, "Number of days to sample")
		step     = flag.Duration("step", 6*time.Hour, "Interval between samples")
		lat      = flag.Float64("lat", 28.6139, "Observer latitude")
		lon      = flag.Float64("lon", 77.2090, "Observer longitude, east positive")
		csvOut   = flag.String("csv", "", "Optional CSV output file path")
	)
	flag.Parse()

	start, err := time.Parse(time.DateOnly, *startStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start: %v\n", err)
		os.Exit(1)
	}

	observer := ephemeris.Observer{Latitude: *lat, Longitude: *lon}
	meeus, err := ephemeris.NewMeeus(observer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	approx, err := ephemeris.NewApprox(observer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	samples, err := Compare(meeus, approx, start, start.AddDate(0, 0, *days), *step)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing backends: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Compared %d samples from %s\n\n", len(samples), start.Format(time.DateOnly))
	fmt.Printf("%-18s %10s %10s %10s %12s\n", "series", "mean", "stddev", "max |d|", "drift/day")
	for _, s := range []struct {
		name string
		get  func(Sample) float64
	}{
		{"moon (deg)", func(s Sample) float64 { return s.MoonDiff }},
		{"sun (deg)", func(s Sample) float64 { return s.SunDiff }},
		{"tithi end (min)", func(s Sample) float64 { return s.TithiDiff }},
	} {
		sum := Summarize(samples, s.get)
		fmt.Printf("%-18s %10.4f %10.4f %10.4f %12.6f\n", s.name, sum.Mean, sum.StdDev, sum.MaxAbs, sum.Slope)
	}

	if *csvOut != "" {
		if err := writeCSV(*csvOut, samples); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nSamples written to %s\n", *csvOut)
	}
}

// Compare evaluates both backends every step in [from, to).
func Compare(reference, candidate panchanga.Ephemeris, from, to time.Time, step time.Duration) ([]Sample, error) {
	var samples []Sample
	for t := from; t.Before(to); t = t.Add(step) {
		rMoon, rSun, err := reference.Longitudes(t)
		if err != nil {
			return nil, err
		}
		cMoon, cSun, err := candidate.Longitudes(t)
		if err != nil {
			return nil, err
		}

		rEnd, err := tithiEnd(reference, t)
		if err != nil {
			return nil, err
		}
		cEnd, err := tithiEnd(candidate, t)
		if err != nil {
			return nil, err
		}

		samples = append(samples, Sample{
			Time:      t,
			MoonDiff:  wrap(cMoon - rMoon),
			SunDiff:   wrap(cSun - rSun),
			TithiDiff: cEnd.Sub(rEnd).Minutes(),
		})
	}
	return samples, nil
}

func tithiEnd(e panchanga.Ephemeris, t time.Time) (time.Time, error) {
	p, err := panchanga.New(e, t)
	if err != nil {
		return time.Time{}, err
	}
	tithi, err := p.Tithi(true)
	if err != nil {
		return time.Time{}, err
	}
	return *tithi.End, nil
}

// wrap maps an angle difference into (-180, 180].
func wrap(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// Summarize computes statistics for one series of samples.
func Summarize(samples []Sample, get func(Sample) float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	values := make([]float64, len(samples))
	abs := make([]float64, len(samples))
	elapsed := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = get(s)
		abs[i] = math.Abs(values[i])
		elapsed[i] = s.Time.Sub(samples[0].Time).Hours() / 24
	}

	mean, std := stat.MeanStdDev(values, nil)
	sum := Summary{Mean: mean, StdDev: std, MaxAbs: floats.Max(abs)}
	if len(samples) > 1 {
		_, sum.Slope = stat.LinearRegression(elapsed, values, nil, false)
	}
	return sum
}

func writeCSV(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"time", "moon_diff_deg", "sun_diff_deg", "tithi_end_diff_min"})
	for _, s := range samples {
		w.Write([]string{
			s.Time.Format(time.RFC3339),
			strconv.FormatFloat(s.MoonDiff, 'f', 6, 64),
			strconv.FormatFloat(s.SunDiff, 'f', 6, 64),
			strconv.FormatFloat(s.TithiDiff, 'f', 3, 64),
		})
	}
	w.Flush()
	return w.Error()
}
