package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/navgrid/internal/pathfind"
)

// NavGrid holds all configuration for the navgrid tool.
type NavGrid struct {
	LogLevel string `yaml:"log_level"`

	// Search
	Algorithm     string             `yaml:"algorithm"`
	Heuristic     string             `yaml:"heuristic"`
	Optimize      bool               `yaml:"optimize"`
	MaxIterations int                `yaml:"max_iterations"` // 0 = unlimited
	Workers       int                `yaml:"workers"`        // batch concurrency, 0 = unlimited
	Weights       map[string]float64 `yaml:"weights"`        // terrain name → multiplier

	Render RenderConfig `yaml:"render"`
	Watch  WatchConfig  `yaml:"watch"`

	// Database
	Database DatabaseConfig `yaml:"database"`
}

// RenderConfig controls PNG output.
type RenderConfig struct {
	Scale int `yaml:"scale"` // pixels per cell
}

// WatchConfig controls map file watching.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultNavGrid returns NavGrid config with sensible defaults.
func DefaultNavGrid() NavGrid {
	weights := make(map[string]float64)
	for t, w := range pathfind.DefaultWeights() {
		weights[t.String()] = w
	}
	return NavGrid{
		LogLevel:  "info",
		Algorithm: string(pathfind.AlgorithmAStar),
		Heuristic: string(pathfind.HeuristicAdmissible),
		Optimize:  true,
		Workers:   4,
		Weights:   weights,
		Render:    RenderConfig{Scale: 8},
		Watch:     WatchConfig{Debounce: 100 * time.Millisecond},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "navgrid",
			Password: "navgrid",
			DBName:   "navgrid",
			SSLMode:  "disable",
		},
	}
}

// LoadNavGrid loads navgrid config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadNavGrid(path string) (NavGrid, error) {
	cfg := DefaultNavGrid()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c NavGrid) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parsing log_level: %w", err)
	}
	return l, nil
}

// TerrainWeights converts the weight table to pathfind form.
func (c NavGrid) TerrainWeights() (pathfind.Weights, error) {
	w := make(pathfind.Weights, len(c.Weights))
	for name, v := range c.Weights {
		t, err := pathfind.ParseTerrain(name)
		if err != nil {
			return nil, fmt.Errorf("weights: %w", err)
		}
		w[t] = v
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	return w, nil
}

// SearchOptions returns the pathfind options described by the config.
func (c NavGrid) SearchOptions(logger *slog.Logger) ([]pathfind.Option, error) {
	w, err := c.TerrainWeights()
	if err != nil {
		return nil, err
	}
	return []pathfind.Option{
		pathfind.WithWeights(w),
		pathfind.WithHeuristic(pathfind.HeuristicMode(c.Heuristic)),
		pathfind.WithMaxIterations(c.MaxIterations),
		pathfind.WithLogger(logger),
	}, nil
}
