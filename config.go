package garden

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxPixelDensity caps Config.PixelDensity; at 4 the surface is already
// 3840×2160.
const MaxPixelDensity = 4

// Host names accepted in Config.Host.
const (
	HostWindow      = "window"
	HostFramebuffer = "framebuffer"
	HostHeadless    = "headless"
)

// Config holds the settings shared by every host.
type Config struct {
	Title             string  `yaml:"title"`
	OutputDir         string  `yaml:"output_dir"`    // where recordings are saved
	FFmpegPath        string  `yaml:"ffmpeg_path"`   // empty looks up ffmpeg on PATH
	PixelDensity      float64 `yaml:"pixel_density"` // device pixels per logical pixel
	Host              string  `yaml:"host"`
	FramebufferDevice string  `yaml:"framebuffer_device"`
	LogLevel          string  `yaml:"log_level"`
	Debug             bool    `yaml:"debug"`
	ScreenshotDir     string  `yaml:"screenshot_dir"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Title:             "Chú khỉ trong vườn chuối",
		OutputDir:         ".",
		PixelDensity:      1,
		Host:              HostWindow,
		FramebufferDevice: "/dev/fb0",
		LogLevel:          "info",
		ScreenshotDir:     "screenshots",
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their defaults, and a missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		Logger().Debug("config file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch c.Host {
	case HostWindow, HostFramebuffer, HostHeadless:
	default:
		return fmt.Errorf("unknown host %q", c.Host)
	}
	if c.PixelDensity <= 0 || math.IsNaN(c.PixelDensity) || math.IsInf(c.PixelDensity, 0) {
		return fmt.Errorf("pixel_density must be positive, got %v", c.PixelDensity)
	}
	if c.PixelDensity > MaxPixelDensity {
		return fmt.Errorf("pixel_density must be at most %d, got %v", MaxPixelDensity, c.PixelDensity)
	}
	if c.OutputDir == "" {
		return errors.New("output_dir is empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. Debug forces slog.LevelDebug.
func (c Config) Level() (slog.Level, error) {
	if c.Debug {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
