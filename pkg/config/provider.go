// Package config loads the observer location, ephemeris backend, solver
// tuning and REST listener settings.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chrissnell/panchanga/pkg/nomenclature"
)

// Defaults applied to fields left unset.
const (
	DefaultBackend           = "meeus"
	DefaultAyanamsa          = "lahiri"
	DefaultDeltaT            = 69.0
	DefaultThreshold         = 0.2
	DefaultMaxIterations     = 64
	DefaultSynodicMonthDays  = nomenclature.SynodicMonth
	DefaultSiderealMonthDays = nomenclature.SiderealMonth
	DefaultListenAddr        = "0.0.0.0"
	DefaultPort              = 8080
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetLocation() (*LocationData, error)
	GetEphemeris() (*EphemerisData, error)
	GetSolver() (*SolverData, error)
	GetRESTServer() (*RESTServerData, error)
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Location  LocationData   `json:"location"`
	Ephemeris EphemerisData  `json:"ephemeris"`
	Solver    SolverData     `json:"solver"`
	REST      RESTServerData `json:"rest"`
}

// LocationData is the observer. Longitude is east positive.
type LocationData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// TimeLocation resolves the IANA time zone, UTC when unset.
func (l LocationData) TimeLocation() (*time.Location, error) {
	if l.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", l.Timezone, err)
	}
	return loc, nil
}

// EphemerisData selects the longitude and sunrise source
type EphemerisData struct {
	Backend  string  `json:"backend"`
	Ayanamsa string  `json:"ayanamsa"`
	DeltaT   float64 `json:"delta_t"`
}

// DeltaTDuration returns DeltaT, given in seconds, as a duration.
func (e EphemerisData) DeltaTDuration() time.Duration {
	return time.Duration(e.DeltaT * float64(time.Second))
}

// SolverData tunes the boundary solver
type SolverData struct {
	Threshold         float64 `json:"threshold"`
	MaxIterations     int     `json:"max_iterations"`
	SynodicMonthDays  float64 `json:"synodic_month_days"`
	SiderealMonthDays float64 `json:"sidereal_month_days"`
}

// RESTServerData configures the HTTP listener
type RESTServerData struct {
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
}

// ApplyDefaults fills unset fields.
func (c *ConfigData) ApplyDefaults() {
	if c.Ephemeris.Backend == "" {
		c.Ephemeris.Backend = DefaultBackend
	}
	if c.Ephemeris.Ayanamsa == "" {
		c.Ephemeris.Ayanamsa = DefaultAyanamsa
	}
	if c.Ephemeris.DeltaT == 0 {
		c.Ephemeris.DeltaT = DefaultDeltaT
	}
	if c.Solver.Threshold == 0 {
		c.Solver.Threshold = DefaultThreshold
	}
	if c.Solver.MaxIterations == 0 {
		c.Solver.MaxIterations = DefaultMaxIterations
	}
	if c.Solver.SynodicMonthDays == 0 {
		c.Solver.SynodicMonthDays = DefaultSynodicMonthDays
	}
	if c.Solver.SiderealMonthDays == 0 {
		c.Solver.SiderealMonthDays = DefaultSiderealMonthDays
	}
	if c.REST.ListenAddr == "" {
		c.REST.ListenAddr = DefaultListenAddr
	}
	if c.REST.Port == 0 {
		c.REST.Port = DefaultPort
	}
}

// Validate checks ranges and names. It expects defaults to be applied.
func (c *ConfigData) Validate() error {
	l := c.Location
	if math.IsNaN(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("location: latitude %v out of range [-90, 90]", l.Latitude)
	}
	if math.IsNaN(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("location: longitude %v out of range [-180, 180]", l.Longitude)
	}
	if _, err := l.TimeLocation(); err != nil {
		return fmt.Errorf("location: %w", err)
	}

	switch strings.ToLower(c.Ephemeris.Backend) {
	case "meeus", "approx":
	default:
		return fmt.Errorf("ephemeris: unknown backend %q", c.Ephemeris.Backend)
	}

	s := c.Solver
	if s.Threshold <= 0 || s.Threshold >= 100 {
		return fmt.Errorf("solver: threshold %v out of range (0, 100)", s.Threshold)
	}
	if s.MaxIterations < 1 {
		return fmt.Errorf("solver: max_iterations must be positive, got %d", s.MaxIterations)
	}
	if s.SynodicMonthDays <= 0 || s.SiderealMonthDays <= 0 {
		return fmt.Errorf("solver: month lengths must be positive")
	}

	if c.REST.Port < 1 || c.REST.Port > 65535 {
		return fmt.Errorf("rest: port %d out of range", c.REST.Port)
	}
	if (c.REST.Cert == "") != (c.REST.Key == "") {
		return fmt.Errorf("rest: cert and key must be set together")
	}
	return nil
}
