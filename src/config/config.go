package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	NumFloors         = 10
	Capacity          = 8
	MaxPassengers     = 12
	DwellDuration     = 460 * time.Millisecond
	DoorOpenDuration  = 240 * time.Millisecond
	DoorCloseDuration = 240 * time.Millisecond
	Speed             = 0.9 // floors per second
	MinTripDuration   = 360 * time.Millisecond
	FloorEpsilon      = 0.001
	SpawnMin          = 750 * time.Millisecond
	SpawnMax          = 1700 * time.Millisecond
	WarmUpPassengers  = 5
	ExitStagger       = 100 * time.Millisecond
	ExitDuration      = 360 * time.Millisecond
	BoardStagger      = 120 * time.Millisecond
	BoardDuration     = 300 * time.Millisecond
	FrameInterval     = 16 * time.Millisecond
	StatusInterval    = 250 * time.Millisecond
	PanelAddr         = "localhost:8080"
)

// Environment variables read by LoadEnv.
const (
	EnvConfigPath = "LIFTSIM_CONFIG"
	EnvPanelAddr  = "LIFTSIM_ADDR"
	EnvLogLevel   = "LIFTSIM_LOG_LEVEL"
)

// Config holds the tunables of one simulated car. Zero values are never valid, use Default.
type Config struct {
	NumFloors         int           `yaml:"num_floors"`
	Capacity          int           `yaml:"capacity"`
	MaxPassengers     int           `yaml:"max_passengers"`
	DwellDuration     time.Duration `yaml:"dwell"`
	DoorOpenDuration  time.Duration `yaml:"door_open"`
	DoorCloseDuration time.Duration `yaml:"door_close"`
	Speed             float64       `yaml:"speed"`
	MinTripDuration   time.Duration `yaml:"min_trip"`
	FloorEpsilon      float64       `yaml:"floor_epsilon"`
	SpawnMin          time.Duration `yaml:"spawn_min"`
	SpawnMax          time.Duration `yaml:"spawn_max"`
	WarmUpPassengers  int           `yaml:"warm_up_passengers"`
	ExitStagger       time.Duration `yaml:"exit_stagger"`
	ExitDuration      time.Duration `yaml:"exit_duration"`
	BoardStagger      time.Duration `yaml:"board_stagger"`
	BoardDuration     time.Duration `yaml:"board_duration"`
	FrameInterval     time.Duration `yaml:"frame_interval"`
	StatusInterval    time.Duration `yaml:"status_interval"`
	PanelAddr         string        `yaml:"panel_addr"`
	LogLevel          string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		NumFloors:         NumFloors,
		Capacity:          Capacity,
		MaxPassengers:     MaxPassengers,
		DwellDuration:     DwellDuration,
		DoorOpenDuration:  DoorOpenDuration,
		DoorCloseDuration: DoorCloseDuration,
		Speed:             Speed,
		MinTripDuration:   MinTripDuration,
		FloorEpsilon:      FloorEpsilon,
		SpawnMin:          SpawnMin,
		SpawnMax:          SpawnMax,
		WarmUpPassengers:  WarmUpPassengers,
		ExitStagger:       ExitStagger,
		ExitDuration:      ExitDuration,
		BoardStagger:      BoardStagger,
		BoardDuration:     BoardDuration,
		FrameInterval:     FrameInterval,
		StatusInterval:    StatusInterval,
		PanelAddr:         PanelAddr,
		LogLevel:          "info",
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv populates the process environment from the given .env files (".env" when none are
// given). Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading env file %s: %w", f, err)
		}
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.NumFloors < 2:
		return fmt.Errorf("num_floors must be at least 2, got %d", c.NumFloors)
	case c.Capacity < 1:
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	case c.MaxPassengers < 1:
		return fmt.Errorf("max_passengers must be positive, got %d", c.MaxPassengers)
	case c.Speed <= 0:
		return fmt.Errorf("speed must be positive, got %v", c.Speed)
	case c.FloorEpsilon <= 0 || c.FloorEpsilon >= 0.5:
		return fmt.Errorf("floor_epsilon must be in (0, 0.5), got %v", c.FloorEpsilon)
	case c.MinTripDuration <= 0 || c.DwellDuration <= 0 || c.DoorOpenDuration <= 0 || c.DoorCloseDuration <= 0:
		return errors.New("trip, dwell and door durations must be positive")
	case c.SpawnMin <= 0 || c.SpawnMax < c.SpawnMin:
		return fmt.Errorf("spawn interval [%v, %v] is invalid", c.SpawnMin, c.SpawnMax)
	case c.FrameInterval <= 0 || c.StatusInterval <= 0:
		return fmt.Errorf("frame_interval and status_interval must be positive, got %v and %v", c.FrameInterval, c.StatusInterval)
	}
	return nil
}
