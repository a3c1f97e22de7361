package panchanga

import (
	"github.com/chrissnell/panchanga/pkg/nomenclature"
	"go.uber.org/zap"
)

// Solver defaults.
const (
	DefaultThreshold     = 0.2
	DefaultMaxIterations = 64
)

// MonthLengths are the nominal cycle durations in days.
type MonthLengths struct {
	Synodic  float64
	Sidereal float64
}

// DefaultMonthLengths returns the mean synodic and sidereal months.
func DefaultMonthLengths() MonthLengths {
	return MonthLengths{
		Synodic:  nomenclature.SynodicMonth,
		Sidereal: nomenclature.SiderealMonth,
	}
}

type options struct {
	logger        *zap.SugaredLogger
	months        MonthLengths
	threshold     float64
	maxIterations int
}

// Option configures a Panchanga or Solver.
type Option func(*options)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMonthLengths overrides the nominal month lengths. Zero fields keep
// their defaults.
func WithMonthLengths(m MonthLengths) Option {
	return func(o *options) {
		if m.Synodic > 0 {
			o.months.Synodic = m.Synodic
		}
		if m.Sidereal > 0 {
			o.months.Sidereal = m.Sidereal
		}
	}
}

// WithThreshold sets the percent remaining at which a boundary counts as
// found.
func WithThreshold(percent float64) Option {
	return func(o *options) {
		if percent > 0 {
			o.threshold = percent
		}
	}
}

// WithMaxIterations caps the boundary search.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:        zap.NewNop().Sugar(),
		months:        DefaultMonthLengths(),
		threshold:     DefaultThreshold,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
