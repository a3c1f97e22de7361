package panchanga

import (
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/panchanga/pkg/nomenclature"
	"go.uber.org/zap"
)

// Kind selects which angle-based unit a Query evaluates.
type Kind int

const (
	KindTithi Kind = iota + 1
	KindNakshatra
	KindYoga
)

func (k Kind) String() string {
	switch k {
	case KindTithi:
		return "tithi"
	case KindNakshatra:
		return "nakshatra"
	case KindYoga:
		return "yoga"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Query identifies an angle-based unit computation. Abhijit only applies to
// KindNakshatra.
type Query struct {
	Kind    Kind
	Abhijit bool
}

// Evaluate computes the unit described by q from s.
func (q Query) Evaluate(s Snapshot) (Anga, error) {
	switch q.Kind {
	case KindTithi:
		t, err := ComputeTithi(s)
		return t.Anga, err
	case KindNakshatra:
		n, err := ComputeNakshatra(s, q.Abhijit)
		return n.Anga, err
	case KindYoga:
		y, err := ComputeYoga(s)
		return y.Anga, err
	default:
		return Anga{}, fmt.Errorf("unknown query kind %v", q.Kind)
	}
}

// cycle returns the nominal cycle length in days and the units per cycle.
func (q Query) cycle(m MonthLengths) (days float64, units int, err error) {
	switch q.Kind {
	case KindTithi:
		return m.Synodic, nomenclature.TithiCount, nil
	case KindYoga:
		return m.Synodic, nomenclature.YogaCount, nil
	case KindNakshatra:
		return m.Sidereal, nomenclature.NakshatraCount, nil
	default:
		return 0, 0, fmt.Errorf("unknown query kind %v", q.Kind)
	}
}

// Solver finds the instant at which a unit ends. Angular velocities are not
// constant, so it runs a damped fixed-point iteration: each step advances
// by half the time the remaining percentage would take at the nominal rate,
// then re-evaluates the unit at the trial instant.
type Solver struct {
	ephemeris     Ephemeris
	months        MonthLengths
	threshold     float64
	maxIterations int
	logger        *zap.SugaredLogger
}

// NewSolver creates a Solver that evaluates e at trial instants.
func NewSolver(e Ephemeris, opts ...Option) (*Solver, error) {
	if e == nil {
		return nil, ErrInvalidEphemeris
	}
	o := newOptions(opts)
	return &Solver{
		ephemeris:     e,
		months:        o.months,
		threshold:     o.threshold,
		maxIterations: o.maxIterations,
		logger:        o.logger,
	}, nil
}

// End returns the instant at which occurrence a of the unit described by q
// ends. a must have been computed by q at a.At.
func (s *Solver) End(q Query, a Anga) (time.Time, error) {
	if a.Left <= s.threshold {
		return a.At, nil
	}

	days, units, err := q.cycle(s.months)
	if err != nil {
		return time.Time{}, err
	}
	ratio := a.Ratio
	if ratio <= 0 {
		ratio = 1
	}
	unitSeconds := days * 86400 * ratio / float64(units)

	instant := a.At
	step := stepSeconds(unitSeconds, a.Left)

	for i := 1; i <= s.maxIterations; i++ {
		trial := instant.Add(time.Duration(step) * time.Second)

		snap, err := longitudeSnapshot(s.ephemeris, trial)
		if err != nil {
			return time.Time{}, err
		}
		ta, err := q.Evaluate(snap)
		if err != nil {
			return time.Time{}, err
		}

		if ta.Number != a.Number {
			// Overshot into the next unit; retry from the last instant
			// known to be inside this one with a shorter step.
			s.logger.Debugw("boundary overshoot", "kind", q.Kind, "iteration", i, "trial", trial, "step", step)
			step /= 2
			if step < 1 {
				return instant, nil
			}
			continue
		}

		s.logger.Debugw("boundary iteration", "kind", q.Kind, "iteration", i, "trial", trial, "left", ta.Left, "step", step)

		instant = trial
		if ta.Left <= s.threshold {
			return trial, nil
		}
		step = stepSeconds(unitSeconds, ta.Left)
	}

	return time.Time{}, fmt.Errorf("%w: %s %d after %d iterations", ErrNoConvergence, q.Kind, a.Number, s.maxIterations)
}

func stepSeconds(unitSeconds, left float64) int64 {
	step := int64(math.Round(unitSeconds * (left / 100) / 2))
	if step < 1 {
		step = 1
	}
	return step
}
