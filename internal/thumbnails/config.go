package thumbnails

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

// Config contains thumbnail settings.
type Config struct {
	// MaxLogoSize is the largest accepted logo upload, in human-readable units.
	// Default: "500KB"
	MaxLogoSize string `toml:"max_logo_size"`

	// Size bounds the longest side of rendered thumbnails in pixels.
	// Default: 48
	Size int `toml:"size"`

	// TempDir holds uploads while they are measured. Empty uses the OS default.
	TempDir string `toml:"temp_dir"`

	maxLogoSizeVal int64
}

type Env struct {
	MaxLogoSize string
	Size        string
	TempDir     string
}

// LogoSizeLimit returns the parsed MaxLogoSize in bytes.
func (c *Config) LogoSizeLimit() int64 {
	return c.maxLogoSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the thumbnail configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if size, err := units.FromHumanSize(overlay.MaxLogoSize); err == nil {
		c.MaxLogoSize = overlay.MaxLogoSize
		c.maxLogoSizeVal = size
	}
	if overlay.Size != 0 {
		c.Size = overlay.Size
	}
	if overlay.TempDir != "" {
		c.TempDir = overlay.TempDir
	}
}

func (c *Config) loadDefaults() {
	if c.MaxLogoSize == "" {
		c.MaxLogoSize = "500KB"
	}
	if c.Size == 0 {
		c.Size = 48
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MaxLogoSize != "" {
		if v := os.Getenv(env.MaxLogoSize); v != "" {
			c.MaxLogoSize = v
		}
	}
	if env.Size != "" {
		if v := os.Getenv(env.Size); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Size = n
			}
		}
	}
	if env.TempDir != "" {
		if v := os.Getenv(env.TempDir); v != "" {
			c.TempDir = v
		}
	}
}

func (c *Config) validate() error {
	size, err := units.FromHumanSize(c.MaxLogoSize)
	if err != nil {
		return fmt.Errorf("invalid max_logo_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_logo_size must be positive")
	}
	c.maxLogoSizeVal = size

	if c.Size <= 0 {
		return fmt.Errorf("size must be positive")
	}
	return nil
}
