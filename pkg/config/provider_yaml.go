package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file, applies
// defaults and validates the result.
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}
	return y.parse(cfgFile)
}

func (y *YAMLProvider) parse(cfgFile []byte) (*ConfigData, error) {
	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Location  LocationYAML   `yaml:"location"`
		Ephemeris EphemerisYAML  `yaml:"ephemeris,omitempty"`
		Solver    SolverYAML     `yaml:"solver,omitempty"`
		REST      RESTServerYAML `yaml:"rest,omitempty"`
	}

	if err := yaml.UnmarshalStrict(cfgFile, &yamlConfig); err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Location: LocationData{
			Latitude:  yamlConfig.Location.Latitude,
			Longitude: yamlConfig.Location.Longitude,
			Altitude:  yamlConfig.Location.Altitude,
			Timezone:  yamlConfig.Location.Timezone,
		},
		Ephemeris: EphemerisData{
			Backend:  yamlConfig.Ephemeris.Backend,
			Ayanamsa: yamlConfig.Ephemeris.Ayanamsa,
			DeltaT:   yamlConfig.Ephemeris.DeltaT,
		},
		Solver: SolverData{
			Threshold:         yamlConfig.Solver.Threshold,
			MaxIterations:     yamlConfig.Solver.MaxIterations,
			SynodicMonthDays:  yamlConfig.Solver.SynodicMonthDays,
			SiderealMonthDays: yamlConfig.Solver.SiderealMonthDays,
		},
		REST: RESTServerData{
			Cert:       yamlConfig.REST.Cert,
			Key:        yamlConfig.REST.Key,
			Port:       yamlConfig.REST.Port,
			ListenAddr: yamlConfig.REST.ListenAddr,
		},
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	y.config = config
	return config, nil
}

func (y *YAMLProvider) loaded() (*ConfigData, error) {
	if y.config == nil {
		if _, err := y.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return y.config, nil
}

// GetLocation returns the observer location
func (y *YAMLProvider) GetLocation() (*LocationData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Location, nil
}

// GetEphemeris returns the ephemeris configuration
func (y *YAMLProvider) GetEphemeris() (*EphemerisData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Ephemeris, nil
}

// GetSolver returns the solver configuration
func (y *YAMLProvider) GetSolver() (*SolverData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Solver, nil
}

// GetRESTServer returns the REST listener configuration
func (y *YAMLProvider) GetRESTServer() (*RESTServerData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.REST, nil
}

// YAML-specific structs with proper YAML tags for parsing the file format
type LocationYAML struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Altitude  float64 `yaml:"altitude,omitempty"`
	Timezone  string  `yaml:"timezone,omitempty"`
}

type EphemerisYAML struct {
	Backend  string  `yaml:"backend,omitempty"`
	Ayanamsa string  `yaml:"ayanamsa,omitempty"`
	DeltaT   float64 `yaml:"delta-t,omitempty"`
}

type SolverYAML struct {
	Threshold         float64 `yaml:"threshold,omitempty"`
	MaxIterations     int     `yaml:"max-iterations,omitempty"`
	SynodicMonthDays  float64 `yaml:"synodic-month-days,omitempty"`
	SiderealMonthDays float64 `yaml:"sidereal-month-days,omitempty"`
}

type RESTServerYAML struct {
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	ListenAddr string `yaml:"listen-addr,omitempty"`
}
