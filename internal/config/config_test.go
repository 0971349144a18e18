package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := config.Parse(config.DefaultYAML(), "yaml")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultFlappyConfig(), cfg)
}

func TestDefaultsDerivedValues(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, -300.0, cfg.FloorLine())
	lo, hi := cfg.GapRange()
	assert.Equal(t, -250.0, lo)
	assert.Equal(t, 100.0, hi)
	assert.Equal(t, 33*time.Millisecond, cfg.Timing.CollisionInterval.Std())
}

func TestParsePartialFiles(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		cfg, err := config.Parse([]byte("physics:\n  gravity: 20\ntiming:\n  spawn_interval: 1500ms\n"), "yaml")
		require.NoError(t, err)
		assert.Equal(t, 20.0, cfg.Physics.Gravity)
		assert.Equal(t, 1500*time.Millisecond, cfg.Timing.SpawnInterval.Std())
		assert.Equal(t, 4.5, cfg.Physics.FlapImpulse, "unset keys keep defaults")
	})

	t.Run("toml", func(t *testing.T) {
		data := "[obstacles]\ngap = 200.0\n\n[animation]\nframe_time = \"50ms\"\n"
		cfg, err := config.Parse([]byte(data), "toml")
		require.NoError(t, err)
		assert.Equal(t, 200.0, cfg.Obstacles.Gap)
		assert.Equal(t, 50*time.Millisecond, cfg.Animation.FrameTime.Std())
		assert.Equal(t, 400.0, cfg.Viewport.Width)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := config.Parse([]byte("{}"), "json")
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := config.Parse([]byte("timing:\n  spawn_interval: soon\n"), "yaml")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.FlappyConfig)
	}{
		{"empty gap range", func(c *config.FlappyConfig) { c.Obstacles.Gap = 600 }},
		{"zero viewport", func(c *config.FlappyConfig) { c.Viewport.Height = 0 }},
		{"zero spawn interval", func(c *config.FlappyConfig) { c.Timing.SpawnInterval = 0 }},
		{"negative collision interval", func(c *config.FlappyConfig) { c.Timing.CollisionInterval = -1 }},
		{"frames out of order", func(c *config.FlappyConfig) { c.Animation.FirstFrame, c.Animation.LastFrame = 3, 1 }},
		{"negative min offset", func(c *config.FlappyConfig) { c.Obstacles.MinOffset = -5 }},
		{"zero tilt divisor", func(c *config.FlappyConfig) { c.Physics.TiltDivisor = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, config.ErrInvalid))
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "flappy.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[avatar]\nstart_x = -100.0\n"), 0o644))
	cfg, src, err := config.Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, -100.0, cfg.Avatar.StartX)
	assert.Equal(t, config.Source(tomlPath), src)

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("obstacles:\n  gap: 1000\n"), 0o644))
	_, _, err = config.Load(badPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = config.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDumpRoundTrip(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.Gravity = 12

	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			data, err := config.Dump(cfg, format)
			require.NoError(t, err)
			back, err := config.Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, cfg, back)
		})
	}
}
