package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/motion"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/navgraph"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/steering"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrInvalidConfig = errors.New("invalid scene config")

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Pathfinding
	Obstacles    []geometry.Rect `json:"obstacles"`
	// BufferRadius is raised to PlayerRadius when smaller, see Clearance.
	BufferRadius float64         `json:"bufferRadius"`
	InsidePolicy string          `json:"insidePolicy"` // "snap" or "reject"

	// Move-to playback
	MoveSegmentSeconds float64 `json:"moveSegmentSeconds"`
	MoveEasing         string  `json:"moveEasing"`

	// Actors
	PlayerStart  geometry.Vector2D `json:"playerStart"`
	PlayerRadius float64           `json:"playerRadius"`
	MissileStart geometry.Vector2D `json:"missileStart"`
	Missile      steering.Params   `json:"missile"`
	SeekWeight   float64           `json:"seekWeight"`

	// Clock
	MaxStep float64 `json:"maxStep"`
}

// DefaultConfig reproduces the demo layout: three crates between the player
// and the right side of the screen, a buffer as wide as the player and a
// fast missile.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:  1000,
		WorldHeight: 800,
		Obstacles: []geometry.Rect{
			{X: 250, Y: 150, Width: 120, Height: 260},
			{X: 480, Y: 420, Width: 200, Height: 90},
			{X: 700, Y: 120, Width: 80, Height: 220},
		},
		BufferRadius:       16,
		InsidePolicy:       "snap",
		MoveSegmentSeconds: motion.DefaultSegmentDuration.Seconds(),
		MoveEasing:         "linear",
		PlayerStart:        geometry.Vector2D{X: 100, Y: 400},
		PlayerRadius:       16,
		MissileStart:       geometry.Vector2D{X: 900, Y: 700},
		Missile:            steering.DefaultParams(),
		SeekWeight:         1,
		MaxStep:            1.0 / 60,
	}
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
// Fields missing from the file keep their DefaultConfig value.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into Struct
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the cross field rules the schema cannot express, so a
// Config built in code gets the same guarantees as one loaded from disk.
func (c *Config) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("%w: world must have a positive size", ErrInvalidConfig)
	}
	if c.BufferRadius < 0 {
		return fmt.Errorf("%w: bufferRadius %v is negative", ErrInvalidConfig, c.BufferRadius)
	}
	if _, err := c.policy(); err != nil {
		return err
	}
	if _, err := motion.Easing(c.MoveEasing); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.MoveSegmentSeconds <= 0 {
		return fmt.Errorf("%w: moveSegmentSeconds must be positive", ErrInvalidConfig)
	}
	if c.MaxStep <= 0 {
		return fmt.Errorf("%w: maxStep must be positive", ErrInvalidConfig)
	}
	if err := c.Missile.Validate(); err != nil {
		return fmt.Errorf("%w: missile: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Bounds returns the world rectangle.
func (c *Config) Bounds() geometry.Rect {
	return geometry.NewRect(0, 0, c.WorldWidth, c.WorldHeight)
}

// Clearance is the radius obstacles are grown by for pathfinding: the
// buffer, but never less than the player's radius, so a routed player does
// not overlap a crate.
func (c *Config) Clearance() float64 {
	return math.Max(c.BufferRadius, c.PlayerRadius)
}

// MoveSegment returns the duration of one move-to.
func (c *Config) MoveSegment() time.Duration {
	return time.Duration(c.MoveSegmentSeconds * float64(time.Second))
}

func (c *Config) policy() (navgraph.InsidePolicy, error) {
	switch c.InsidePolicy {
	case "", "snap":
		return navgraph.PolicySnap, nil
	case "reject":
		return navgraph.PolicyReject, nil
	default:
		return 0, fmt.Errorf("%w: unknown insidePolicy %q", ErrInvalidConfig, c.InsidePolicy)
	}
}
