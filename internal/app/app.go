package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/chrissnell/panchanga/internal/controllers/restserver"
	"github.com/chrissnell/panchanga/internal/log"
	"github.com/chrissnell/panchanga/internal/types"
	"github.com/chrissnell/panchanga/pkg/config"
	"github.com/chrissnell/panchanga/pkg/ephemeris"
	"github.com/chrissnell/panchanga/pkg/panchanga"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	cfg       *config.ConfigData
	logger    *zap.SugaredLogger
	ephemeris panchanga.Ephemeris
	location  *time.Location
	options   []panchanga.Option
}

// New creates a new application instance from loaded configuration
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) (*App, error) {
	loc, err := cfg.Location.TimeLocation()
	if err != nil {
		return nil, err
	}

	ayanamsa, err := ephemeris.ParseAyanamsa(cfg.Ephemeris.Ayanamsa)
	if err != nil {
		return nil, err
	}

	observer := ephemeris.Observer{
		Latitude:  cfg.Location.Latitude,
		Longitude: cfg.Location.Longitude,
		Altitude:  cfg.Location.Altitude,
	}
	e, err := ephemeris.New(cfg.Ephemeris.Backend, observer,
		ephemeris.WithAyanamsa(ayanamsa),
		ephemeris.WithDeltaT(cfg.Ephemeris.DeltaTDuration()),
		ephemeris.WithLogger(logger.Named("ephemeris")),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating ephemeris: %w", err)
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		ephemeris: e,
		location:  loc,
		options: []panchanga.Option{
			panchanga.WithLogger(logger.Named("panchanga")),
			panchanga.WithThreshold(cfg.Solver.Threshold),
			panchanga.WithMaxIterations(cfg.Solver.MaxIterations),
			panchanga.WithMonthLengths(panchanga.MonthLengths{
				Synodic:  cfg.Solver.SynodicMonthDays,
				Sidereal: cfg.Solver.SiderealMonthDays,
			}),
		},
	}, nil
}

// Location returns the observer's time zone.
func (a *App) Location() *time.Location {
	return a.location
}

// Observer returns the configured location for reports.
func (a *App) Observer() types.Location {
	return types.Location{
		Latitude:  a.cfg.Location.Latitude,
		Longitude: a.cfg.Location.Longitude,
		Altitude:  a.cfg.Location.Altitude,
		Timezone:  a.location.String(),
	}
}

// Panchanga builds a Panchanga for at, taken in the observer's time zone.
func (a *App) Panchanga(at time.Time) (*panchanga.Panchanga, error) {
	return panchanga.New(a.ephemeris, at.In(a.location), a.options...)
}

// Report computes the full Panchanga for at.
func (a *App) Report(at time.Time, withLimit, withAbhijit bool) (*types.Report, error) {
	p, err := a.Panchanga(at)
	if err != nil {
		return nil, err
	}
	return types.NewReport(p, a.Observer(), withLimit, withAbhijit)
}

// Run starts the REST server and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl, err := restserver.NewController(ctx, &wg, a.cfg.REST, a, a.logger.Named("rest"))
	if err != nil {
		return err
	}
	if err := ctrl.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	cancel()

	log.Info("waiting for the REST server to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
