package panchanga

import (
	"errors"
	"testing"
	"time"
)

func solveFrom(t *testing.T, e Ephemeris, q Query, at time.Time, opts ...Option) (Anga, time.Time) {
	t.Helper()

	solver, err := NewSolver(e, opts...)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	s, err := longitudeSnapshot(e, at)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	a, err := q.Evaluate(s)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	end, err := solver.End(q, a)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	return a, end
}

func evaluateAt(t *testing.T, e Ephemeris, q Query, at time.Time) Anga {
	t.Helper()

	s, err := longitudeSnapshot(e, at)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	a, err := q.Evaluate(s)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return a
}

func TestSolverLinearTithi(t *testing.T) {
	e := newLinearEphemeris(testInstant, 200, 190)
	q := Query{Kind: KindTithi}

	start, end := solveFrom(t, e, q, testInstant)

	// Elongation grows linearly from 10° and the unit ends at 12°.
	days := 2 / (e.moonRate - e.sunRate)
	analytic := testInstant.Add(time.Duration(days * 24 * float64(time.Hour)))

	if end.After(analytic) {
		t.Errorf("end %v is after the analytic boundary %v", end, analytic)
	}
	if analytic.Sub(end) > 200*time.Second {
		t.Errorf("end %v is %v before the analytic boundary", end, analytic.Sub(end))
	}

	a := evaluateAt(t, e, q, end)
	if a.Number != start.Number || a.Left > DefaultThreshold {
		t.Errorf("at end: tithi %d left %.4f", a.Number, a.Left)
	}
}

func TestSolverNonLinearNakshatra(t *testing.T) {
	e := newLinearEphemeris(testInstant, 100, 0)
	e.wobble = 6
	q := Query{Kind: KindNakshatra}

	start, end := solveFrom(t, e, q, testInstant)

	a := evaluateAt(t, e, q, end)
	if a.Number != start.Number || a.Left > DefaultThreshold {
		t.Errorf("at end: nakshatra %d left %.4f, started in %d", a.Number, a.Left, start.Number)
	}
	if next := evaluateAt(t, e, q, end.Add(10*time.Minute)); next.Number != start.Number+1 {
		t.Errorf("10 minutes after end: nakshatra %d, expected %d", next.Number, start.Number+1)
	}
}

func TestSolverOvershoot(t *testing.T) {
	// The Moon moves three times faster than the nominal month implies, so
	// the first trial lands past the boundary.
	e := newLinearEphemeris(testInstant, 200, 190)
	e.moonRate = 3 * moonRate
	q := Query{Kind: KindTithi}

	start, end := solveFrom(t, e, q, testInstant)

	a := evaluateAt(t, e, q, end)
	if a.Number != start.Number || a.Left > DefaultThreshold {
		t.Errorf("at end: tithi %d left %.4f, started in %d", a.Number, a.Left, start.Number)
	}
}

func TestSolverAbhijit(t *testing.T) {
	e := newLinearEphemeris(testInstant, 270, 0)
	q := Query{Kind: KindNakshatra, Abhijit: true}

	start, end := solveFrom(t, e, q, testInstant)
	if start.Number != 21 {
		t.Fatalf("started in nakshatra %d, expected 21", start.Number)
	}

	if a := evaluateAt(t, e, q, end); a.Number != 21 {
		t.Errorf("at end: nakshatra %d, expected 21", a.Number)
	}
	if a := evaluateAt(t, e, q, end.Add(time.Hour)); a.Number != 28 {
		t.Errorf("an hour after end: nakshatra %d, expected Abhijit", a.Number)
	}
}

func TestSolverYoga(t *testing.T) {
	e := newLinearEphemeris(testInstant, 20, 10)
	q := Query{Kind: KindYoga}

	start, end := solveFrom(t, e, q, testInstant)

	a := evaluateAt(t, e, q, end)
	if a.Number != start.Number || a.Left > DefaultThreshold {
		t.Errorf("at end: yoga %d left %.4f", a.Number, a.Left)
	}
}

func TestSolverIdempotent(t *testing.T) {
	e := newLinearEphemeris(testInstant, 200, 190)
	e.wobble = 4
	q := Query{Kind: KindTithi}

	_, end := solveFrom(t, e, q, testInstant)
	_, again := solveFrom(t, e, q, end)

	if !again.Equal(end) {
		t.Errorf("re-solving from %v moved the end to %v", end, again)
	}
}

func TestSolverNoConvergence(t *testing.T) {
	e := newLinearEphemeris(testInstant, 200, 190)
	q := Query{Kind: KindTithi}

	solver, err := NewSolver(e, WithMaxIterations(1))
	if err != nil {
		t.Fatal(err)
	}
	a := evaluateAt(t, e, q, testInstant)

	if _, err := solver.End(q, a); !errors.Is(err, ErrNoConvergence) {
		t.Errorf("err = %v, expected ErrNoConvergence", err)
	}
}

func TestSolverPropagatesEphemerisErrors(t *testing.T) {
	e := newLinearEphemeris(testInstant, 200, 190)
	q := Query{Kind: KindTithi}
	a := evaluateAt(t, e, q, testInstant)

	boom := errors.New("ephemeris offline")
	e.err = boom

	solver, err := NewSolver(e)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := solver.End(q, a); !errors.Is(err, boom) {
		t.Errorf("err = %v, expected %v", err, boom)
	}
}

func TestNewSolverRejectsNilEphemeris(t *testing.T) {
	if _, err := NewSolver(nil); !errors.Is(err, ErrInvalidEphemeris) {
		t.Errorf("err = %v, expected ErrInvalidEphemeris", err)
	}
}

func TestQueryUnknownKind(t *testing.T) {
	if _, err := (Query{Kind: Kind(99)}).Evaluate(snap(10, 0)); err == nil {
		t.Error("expected error for unknown kind")
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("String() = %q", got)
	}
}
