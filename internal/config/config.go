// Package config provides YAML/TOML configuration loading for the flappy
// simulation. All lengths are world units; world space is centered on the
// viewport with +Y up.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// FlappyConfig contains all tunables of the simulation.
type FlappyConfig struct {
	Viewport  Viewport  `yaml:"viewport" toml:"viewport"`
	Physics   Physics   `yaml:"physics" toml:"physics"`
	Avatar    Avatar    `yaml:"avatar" toml:"avatar"`
	Obstacles Obstacles `yaml:"obstacles" toml:"obstacles"`
	Scroll    Scroll    `yaml:"scroll" toml:"scroll"`
	Animation Animation `yaml:"animation" toml:"animation"`
	Timing    Timing    `yaml:"timing" toml:"timing"`
}

// Viewport is the logical window size.
type Viewport struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// HalfWidth returns Width/2.
func (v Viewport) HalfWidth() float64 { return v.Width / 2 }

// HalfHeight returns Height/2.
func (v Viewport) HalfHeight() float64 { return v.Height / 2 }

// Physics defines motion constants. Velocities are per-frame displacements.
type Physics struct {
	Gravity     float64 `yaml:"gravity" toml:"gravity"`           // Subtracted from vy as gravity*dt each frame
	FlapImpulse float64 `yaml:"flap_impulse" toml:"flap_impulse"` // vy after a flap
	Speed       float64 `yaml:"speed" toml:"speed"`               // Leftward obstacle/floor speed per frame
	TiltDivisor float64 `yaml:"tilt_divisor" toml:"tilt_divisor"` // angle = vy/divisor * 45deg
}

// Avatar defines the player entity.
type Avatar struct {
	StartX float64 `yaml:"start_x" toml:"start_x"`
	Hitbox float64 `yaml:"hitbox" toml:"hitbox"` // Width and height of the collision box
}

// Obstacles defines the gated obstacle pairs.
type Obstacles struct {
	Width     float64 `yaml:"width" toml:"width"`
	Height    float64 `yaml:"height" toml:"height"`
	Gap       float64 `yaml:"gap" toml:"gap"`
	MinOffset float64 `yaml:"min_offset" toml:"min_offset"` // Minimum distance between gap and viewport edge
	SpawnX    float64 `yaml:"spawn_x" toml:"spawn_x"`
}

// Scroll defines the floor and backdrop layers.
type Scroll struct {
	FloorHeight          float64 `yaml:"floor_height" toml:"floor_height"`
	FloorSegmentWidth    float64 `yaml:"floor_segment_width" toml:"floor_segment_width"`
	BackdropSegmentWidth float64 `yaml:"backdrop_segment_width" toml:"backdrop_segment_width"`
	BackdropFactor       float64 `yaml:"backdrop_factor" toml:"backdrop_factor"` // Backdrop speed as a fraction of Physics.Speed
}

// Animation defines the avatar sprite cycle.
type Animation struct {
	FrameTime  Duration `yaml:"frame_time" toml:"frame_time"`
	FirstFrame int      `yaml:"first_frame" toml:"first_frame"`
	LastFrame  int      `yaml:"last_frame" toml:"last_frame"`
}

// Timing defines the fixed cadences.
type Timing struct {
	SpawnInterval     Duration `yaml:"spawn_interval" toml:"spawn_interval"`
	CollisionInterval Duration `yaml:"collision_interval" toml:"collision_interval"`
}

// Duration is a time.Duration that reads and writes as "1s", "33ms", ...
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// FloorLine returns the y below which the avatar has hit the floor.
func (c FlappyConfig) FloorLine() float64 {
	return -c.Viewport.HalfHeight() + c.Scroll.FloorHeight
}

// GapRange returns the inclusive-exclusive range [lo, hi) for a gap's bottom edge.
func (c FlappyConfig) GapRange() (lo, hi float64) {
	h := c.Viewport.HalfHeight()
	return -h + c.Obstacles.MinOffset, h - c.Obstacles.MinOffset - c.Obstacles.Gap
}

// Validate checks that the configuration yields a playable simulation.
func (c FlappyConfig) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"viewport.width", c.Viewport.Width},
		{"viewport.height", c.Viewport.Height},
		{"physics.tilt_divisor", c.Physics.TiltDivisor},
		{"avatar.hitbox", c.Avatar.Hitbox},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.height", c.Obstacles.Height},
		{"obstacles.gap", c.Obstacles.Gap},
		{"scroll.floor_segment_width", c.Scroll.FloorSegmentWidth},
		{"scroll.backdrop_segment_width", c.Scroll.BackdropSegmentWidth},
		{"animation.frame_time", float64(c.Animation.FrameTime)},
		{"timing.spawn_interval", float64(c.Timing.SpawnInterval)},
		{"timing.collision_interval", float64(c.Timing.CollisionInterval)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.value)
		}
	}

	if c.Obstacles.MinOffset < 0 {
		return fmt.Errorf("%w: obstacles.min_offset must not be negative", ErrInvalid)
	}
	if lo, hi := c.GapRange(); lo >= hi {
		return fmt.Errorf("%w: gap range [%v, %v) is empty; reduce obstacles.gap or obstacles.min_offset", ErrInvalid, lo, hi)
	}
	if c.Animation.FirstFrame < 0 || c.Animation.LastFrame < c.Animation.FirstFrame {
		return fmt.Errorf("%w: animation frames [%d, %d] out of order", ErrInvalid, c.Animation.FirstFrame, c.Animation.LastFrame)
	}
	return nil
}
