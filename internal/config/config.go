package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/dotfield/internal/field"
	"github.com/san-kum/dotfield/internal/integrators"
	"github.com/san-kum/dotfield/internal/pointer"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGravity     = 9.81
	DefaultMultiplier  = 0.05
	DefaultRadius      = 10.0
	DefaultSpacing     = 60.0
	DefaultMaxVelocity = 60.0
	DefaultPadding     = 0.15
	DefaultFPS         = 60
	DefaultWidth       = 1280
	DefaultHeight      = 800

	envPrefix = "DOTFIELD"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Physics PhysicsConfig `yaml:"physics" mapstructure:"physics"`
	Palette PaletteConfig `yaml:"palette" mapstructure:"palette"`
	View    ViewConfig    `yaml:"view" mapstructure:"view"`
	Logger  LoggerConfig  `yaml:"logger" mapstructure:"logger"`
	Backend string        `yaml:"backend" mapstructure:"backend"`
	DataDir string        `yaml:"data_dir" mapstructure:"data_dir"`
}

type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity" mapstructure:"gravity"`
	Multiplier     float64 `yaml:"multiplier" mapstructure:"multiplier"`
	Radius         float64 `yaml:"radius" mapstructure:"radius"`
	Spacing        float64 `yaml:"spacing" mapstructure:"spacing"`
	MaxVelocity    float64 `yaml:"max_velocity" mapstructure:"max_velocity"`
	Padding        float64 `yaml:"padding" mapstructure:"padding"`
	Friction       Range   `yaml:"friction" mapstructure:"friction"`
	Restitution    Range   `yaml:"restitution" mapstructure:"restitution"`
	ForceMode      string  `yaml:"force_mode" mapstructure:"force_mode"`
	GateOnPress    bool    `yaml:"gate_on_press" mapstructure:"gate_on_press"`
	PointerMapping string  `yaml:"pointer_mapping" mapstructure:"pointer_mapping"`
	Collisions     bool    `yaml:"collisions" mapstructure:"collisions"`
	ResetOnRelease bool    `yaml:"reset_on_release" mapstructure:"reset_on_release"`
	Seed           int64   `yaml:"seed" mapstructure:"seed"`
}

// Range is a half-open interval [Min, Max) for per-particle random draws.
type Range struct {
	Min float64 `yaml:"min" mapstructure:"min"`
	Max float64 `yaml:"max" mapstructure:"max"`
}

type PaletteConfig struct {
	Mode       string  `yaml:"mode" mapstructure:"mode"`
	Base       string  `yaml:"base" mapstructure:"base"`
	Accent     string  `yaml:"accent" mapstructure:"accent"`
	NoiseScale float64 `yaml:"noise_scale" mapstructure:"noise_scale"`
}

type ViewConfig struct {
	FPS    int `yaml:"fps" mapstructure:"fps"`
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

type LoggerConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	AddSource   bool   `yaml:"add_source" mapstructure:"add_source"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	LogFile     string `yaml:"log_file" mapstructure:"log_file"`
	MaxSize     int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups  int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge      int    `yaml:"max_age" mapstructure:"max_age"`
	Compress    bool   `yaml:"compress" mapstructure:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:        DefaultGravity,
			Multiplier:     DefaultMultiplier,
			Radius:         DefaultRadius,
			Spacing:        DefaultSpacing,
			MaxVelocity:    DefaultMaxVelocity,
			Padding:        DefaultPadding,
			Friction:       Range{Min: 1.0 / 3, Max: 0.5},
			Restitution:    Range{Min: 1.0 / 3, Max: 0.5},
			ForceMode:      string(integrators.Displacement),
			GateOnPress:    true,
			PointerMapping: string(pointer.Linear),
			Collisions:     true,
			ResetOnRelease: true,
			Seed:           1,
		},
		Palette: PaletteConfig{
			Mode:       "region",
			Base:       "#339999",
			Accent:     "#ff8c42",
			NoiseScale: 0.01,
		},
		View: ViewConfig{
			FPS:    DefaultFPS,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "dotfield",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      7,
		},
		Backend: "cpu",
		DataDir: "data",
	}
}

// Load reads a YAML file on top of the defaults. Environment variables
// prefixed DOTFIELD_ override both, with dots in keys replaced by
// underscores (DOTFIELD_PHYSICS_SEED). An empty path reads defaults and
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	if err := setDefaults(v, DefaultConfig()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key of cfg with viper so that environment
// overrides apply even when the file omits the key.
func setDefaults(v *viper.Viper, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	v.SetConfigType("yaml")
	return v.ReadConfig(bytes.NewReader(data))
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// Params converts the physics section into integrator parameters.
func (c *Config) Params() integrators.Params {
	mode, err := integrators.ParseForceMode(c.Physics.ForceMode)
	if err != nil {
		mode = integrators.Displacement
	}
	return integrators.Params{
		Gravity:     c.Physics.Gravity,
		Multiplier:  c.Physics.Multiplier,
		MaxVelocity: c.Physics.MaxVelocity,
		Padding:     c.Physics.Padding,
		Mode:        mode,
		GateOnPress: c.Physics.GateOnPress,
	}
}

func (c *Config) Mapping() pointer.Mapping {
	m, err := pointer.ParseMapping(c.Physics.PointerMapping)
	if err != nil {
		return pointer.Linear
	}
	return m
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (r Range) validate(name string) error {
	if !finite(r.Min) || !finite(r.Max) || r.Min <= 0 || r.Max >= 1 || r.Min > r.Max {
		return invalid("%s range must satisfy 0 < min <= max < 1, got [%g, %g)", name, r.Min, r.Max)
	}
	return nil
}

func (c *Config) Validate() error {
	p := c.Physics
	switch {
	case !finite(p.Gravity) || !finite(p.Multiplier):
		return invalid("gravity and multiplier must be finite")
	case !(p.Radius > 0) || !finite(p.Radius):
		return invalid("radius must be positive, got %g", p.Radius)
	case !(p.Spacing > 0) || !finite(p.Spacing):
		return invalid("spacing must be positive, got %g", p.Spacing)
	case !(p.MaxVelocity > 0) || !finite(p.MaxVelocity):
		return invalid("max_velocity must be positive, got %g", p.MaxVelocity)
	case !(p.Padding >= 0 && p.Padding < field.MaxPadding):
		return invalid("padding must be in [0, %g), got %g", field.MaxPadding, p.Padding)
	}
	if err := p.Friction.validate("friction"); err != nil {
		return err
	}
	if err := p.Restitution.validate("restitution"); err != nil {
		return err
	}
	if _, err := integrators.ParseForceMode(p.ForceMode); err != nil {
		return invalid("%v", err)
	}
	if _, err := pointer.ParseMapping(p.PointerMapping); err != nil {
		return invalid("%v", err)
	}

	switch c.Palette.Mode {
	case "region", "random", "noise":
	default:
		return invalid("unknown palette mode: %s", c.Palette.Mode)
	}

	if c.View.FPS <= 0 || c.View.Width <= 0 || c.View.Height <= 0 {
		return invalid("view fps, width and height must be positive")
	}

	switch c.Logger.Format {
	case "", "console", "json":
	default:
		return invalid("unknown log format: %s", c.Logger.Format)
	}
	return nil
}
