package sceneedit

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/sceneedit/rt/gizmo"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the editor session.
type Config struct {
	LogPrefix string       `yaml:"log_prefix"`
	Debug     bool         `yaml:"debug"`
	Gizmo     gizmo.Params `yaml:"gizmo"`
}

func DefaultConfig() Config {
	return Config{
		LogPrefix: "editor",
		Gizmo:     gizmo.DefaultParams(),
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the file
// keep their default value.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	g := c.Gizmo
	var errs []error
	if g.HandleThreshold <= 0 {
		errs = append(errs, fmt.Errorf("gizmo.handle_threshold must be positive, got %v", g.HandleThreshold))
	}
	if g.AxisLengthFactor <= 0 {
		errs = append(errs, fmt.Errorf("gizmo.axis_length_factor must be positive, got %v", g.AxisLengthFactor))
	}
	if g.MinAxisLength <= 0 || g.MinAxisLength > g.MaxAxisLength {
		errs = append(errs, fmt.Errorf("gizmo axis length bounds [%v, %v] are invalid", g.MinAxisLength, g.MaxAxisLength))
	}
	if g.RingSegments < 3 {
		errs = append(errs, fmt.Errorf("gizmo.ring_segments must be at least 3, got %d", g.RingSegments))
	}
	if g.MoveSpeed <= 0 || g.RotateSpeed <= 0 || g.ScaleSpeed <= 0 {
		errs = append(errs, errors.New("gizmo move, rotate and scale speeds must be positive"))
	}
	if g.MinDragDistance <= 0 {
		errs = append(errs, fmt.Errorf("gizmo.min_drag_distance must be positive, got %v", g.MinDragDistance))
	}
	if g.MinScaleFactor <= 0 || g.MinScaleFactor > 1 || g.MaxScaleFactor < 1 {
		errs = append(errs, fmt.Errorf("gizmo scale factor bounds [%v, %v] must contain 1", g.MinScaleFactor, g.MaxScaleFactor))
	}
	if g.MinScale <= 0 {
		errs = append(errs, fmt.Errorf("gizmo.min_scale must be positive, got %v", g.MinScale))
	}
	return errors.Join(errs...)
}
