package msdfpipe

import (
	"math"

	"github.com/gogpu/msdfpipe/msdf"
)

// Config holds pipeline parameters.
type Config struct {
	// Width and Height are the atlas canvas size in pixels.
	// Default: 1024 x 1024
	Width  int
	Height int

	// Padding is the bleed margin added on each side of every glyph.
	// Default: 2
	Padding int

	// AngleThreshold is the tangent turn, in radians, above which a join
	// between two edges is a sharp corner.
	// Default: pi/3 (60 degrees)
	AngleThreshold float64

	// FillRule decides inside/outside for the sign of the field.
	// Default: msdf.FillNonZero
	FillRule msdf.FillRule

	// Workers is the size of the fan-out pool a render pass runs on.
	// Zero means GOMAXPROCS.
	// Default: 0
	Workers int

	// CommandQueue is the buffer size of the command channel.
	// Default: 16
	CommandQueue int

	// ResultQueue is the buffer size of the result channel.
	// Default: 4
	ResultQueue int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Width:          1024,
		Height:         1024,
		Padding:        msdf.DefaultPadding,
		AngleThreshold: msdf.DefaultAngleThreshold,
		FillRule:       msdf.FillNonZero,
		CommandQueue:   16,
		ResultQueue:    4,
	}
}

// maxCanvas bounds the atlas side; larger textures are rejected by most
// GPU backends.
const maxCanvas = 16384

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return &ConfigError{Field: "Width/Height", Reason: "must be at least 1"}
	}
	if c.Width > maxCanvas || c.Height > maxCanvas {
		return &ConfigError{Field: "Width/Height", Reason: "must be at most 16384"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if 2*c.Padding >= min(c.Width, c.Height) {
		return &ConfigError{Field: "Padding", Reason: "must be less than half the canvas"}
	}
	if !(c.AngleThreshold > 0) || c.AngleThreshold > math.Pi {
		return &ConfigError{Field: "AngleThreshold", Reason: "must be in (0, pi]"}
	}
	if c.FillRule != msdf.FillNonZero && c.FillRule != msdf.FillEvenOdd {
		return &ConfigError{Field: "FillRule", Reason: "unknown fill rule"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "Workers", Reason: "must be non-negative"}
	}
	if c.CommandQueue < 0 {
		return &ConfigError{Field: "CommandQueue", Reason: "must be non-negative"}
	}
	if c.ResultQueue < 0 {
		return &ConfigError{Field: "ResultQueue", Reason: "must be non-negative"}
	}
	return nil
}

func (c *Config) options() msdf.Options {
	return msdf.Options{
		Padding:        c.Padding,
		AngleThreshold: c.AngleThreshold,
		FillRule:       c.FillRule,
	}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "msdfpipe: invalid config." + e.Field + ": " + e.Reason
}
