// Package panchanga computes the five limbs of the traditional lunar
// calendar (Tithi, Nakshatra, Yoga, Karana and Vara) for an instant, and
// solves for the instant at which each angle-based limb ends.
package panchanga

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Panchanga answers queries for a single instant. It caches the last Tithi
// because the Karana is derived from it; a Panchanga must not be shared
// between goroutines without external locking.
type Panchanga struct {
	ephemeris Ephemeris
	snapshot  Snapshot
	solver    *Solver
	logger    *zap.SugaredLogger

	tithi *Tithi
}

// New creates a Panchanga for instant t. Civil dates and weekdays are taken
// in t's location. Providers backed by a pointer should return
// ErrInvalidEphemeris from a nil receiver; New only sees an untyped nil.
func New(e Ephemeris, t time.Time, opts ...Option) (*Panchanga, error) {
	if e == nil {
		return nil, ErrInvalidEphemeris
	}

	o := newOptions(opts)
	solver, err := NewSolver(e, opts...)
	if err != nil {
		return nil, err
	}

	snap, err := longitudeSnapshot(e, t)
	if err != nil {
		return nil, err
	}
	o.logger.Debugw("snapshot", "instant", t, "moon", snap.Moon, "sun", snap.Sun)

	return &Panchanga{
		ephemeris: e,
		snapshot:  snap,
		solver:    solver,
		logger:    o.logger,
	}, nil
}

// Data returns the snapshot the Panchanga was built from. Sunrises is set
// once Vara has been called.
func (p *Panchanga) Data() Snapshot {
	return p.snapshot
}

// Tithi computes the Tithi and caches it for Karana.
func (p *Panchanga) Tithi(withLimit bool) (Tithi, error) {
	t, err := ComputeTithi(p.snapshot)
	if err != nil {
		return Tithi{}, err
	}
	if withLimit {
		if t.Anga, err = p.limit(Query{Kind: KindTithi}, t.Anga); err != nil {
			return Tithi{}, err
		}
	}

	p.tithi = &t
	return t, nil
}

// Nakshatra computes the Nakshatra, optionally with the Abhijit rule.
func (p *Panchanga) Nakshatra(withLimit, withAbhijit bool) (Nakshatra, error) {
	n, err := ComputeNakshatra(p.snapshot, withAbhijit)
	if err != nil {
		return Nakshatra{}, err
	}
	if withLimit {
		if n.Anga, err = p.limit(Query{Kind: KindNakshatra, Abhijit: withAbhijit}, n.Anga); err != nil {
			return Nakshatra{}, err
		}
	}
	return n, nil
}

// Yoga computes the Yoga.
func (p *Panchanga) Yoga(withLimit bool) (Yoga, error) {
	y, err := ComputeYoga(p.snapshot)
	if err != nil {
		return Yoga{}, err
	}
	if withLimit {
		if y.Anga, err = p.limit(Query{Kind: KindYoga}, y.Anga); err != nil {
			return Yoga{}, err
		}
	}
	return y, nil
}

// Karana derives the Karana from the cached Tithi. It fails with ErrNoTithi
// when Tithi has not been called. With withLimit set and no end on the
// cached Tithi, the Tithi end is solved first and the cache updated.
func (p *Panchanga) Karana(withLimit bool) (Karana, error) {
	if p.tithi == nil {
		return Karana{}, ErrNoTithi
	}

	t := *p.tithi
	if withLimit && t.End == nil {
		var err error
		if t.Anga, err = p.limit(Query{Kind: KindTithi}, t.Anga); err != nil {
			return Karana{}, err
		}
		p.tithi = &t
	}
	if !withLimit {
		t.End = nil
	}

	return ComputeKarana(t)
}

// Vara resolves the sunrise-bounded weekday. The sunrise window is fetched
// on first use and kept on the snapshot.
func (p *Panchanga) Vara() (Vara, error) {
	w, err := p.sunrises()
	if err != nil {
		return Vara{}, err
	}
	return ComputeVara(p.snapshot.Instant, w)
}

func (p *Panchanga) sunrises() (SunriseWindow, error) {
	if p.snapshot.Sunrises != nil {
		return p.snapshot.Sunrises, nil
	}
	t := p.snapshot.Instant
	w, err := p.ephemeris.SunriseWindow(t)
	if err != nil {
		return nil, fmt.Errorf("error fetching sunrise window for %s: %w", t.Format(time.DateOnly), err)
	}
	p.snapshot.Sunrises = w
	return w, nil
}

// All computes every element, Tithi first so Karana can derive from it.
func (p *Panchanga) All(withLimit, withAbhijit bool) (Elements, error) {
	var (
		e   Elements
		err error
	)

	if e.Tithi, err = p.Tithi(withLimit); err != nil {
		return Elements{}, err
	}
	if e.Nakshatra, err = p.Nakshatra(withLimit, withAbhijit); err != nil {
		return Elements{}, err
	}
	if e.Yoga, err = p.Yoga(withLimit); err != nil {
		return Elements{}, err
	}
	if e.Karana, err = p.Karana(withLimit); err != nil {
		return Elements{}, err
	}
	if e.Vara, err = p.Vara(); err != nil {
		return Elements{}, err
	}
	return e, nil
}

func (p *Panchanga) limit(q Query, a Anga) (Anga, error) {
	end, err := p.solver.End(q, a)
	if err != nil {
		return Anga{}, err
	}
	a.End = &end
	return a, nil
}
