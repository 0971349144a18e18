package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Viewport: Viewport{
			Width:  400,
			Height: 700,
		},
		Physics: Physics{
			Gravity:     9.8,
			FlapImpulse: 4.5,
			Speed:       4.5,
			TiltDivisor: 5,
		},
		Avatar: Avatar{
			StartX: -150,
			Hitbox: 45,
		},
		Obstacles: Obstacles{
			Width:     26 * 3,
			Height:    160 * 3,
			Gap:       150,
			MinOffset: 100,
			SpawnX:    400,
		},
		Scroll: Scroll{
			FloorHeight:          50,
			FloorSegmentWidth:    168 * 3,
			BackdropSegmentWidth: 144 * 3,
			BackdropFactor:       0.2,
		},
		Animation: Animation{
			FrameTime:  Duration(100 * time.Millisecond),
			FirstFrame: 0,
			LastFrame:  3,
		},
		Timing: Timing{
			SpawnInterval:     Duration(time.Second),
			CollisionInterval: Duration(33 * time.Millisecond),
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
