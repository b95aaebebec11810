// Package config holds the editor's tunable settings. Values come from
// built-in defaults, optionally overlaid by a YAML file, and finally by
// command-line flags in cmd/app.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window WindowConfig `yaml:"window"`
	Input  InputConfig  `yaml:"input"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
	Files  FilesConfig  `yaml:"files"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type InputConfig struct {
	// HitRadius is the pixel distance within which a press seizes a marker.
	HitRadius float64 `yaml:"hit_radius_px"`
}

type RenderConfig struct {
	MarkerRadius float64 `yaml:"marker_radius_px"`
	LineWidth    float64 `yaml:"line_width_px"`
	ShowHUD      bool    `yaml:"show_hud"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type FilesConfig struct {
	OSM             string `yaml:"osm"`
	CSV             string `yaml:"csv"`
	DefaultSaveName string `yaml:"default_save_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 800, Height: 600, Title: "Racing Line Editor"},
		Input:  InputConfig{HitRadius: 6},
		Render: RenderConfig{MarkerRadius: 3, LineWidth: 2, ShowHUD: true},
		Log:    LogConfig{Level: "info"},
		Files: FilesConfig{
			OSM:             "sample/lanelet2_map.osm",
			CSV:             "sample/raceline_awsim_30km.csv",
			DefaultSaveName: "edited_raceline.csv",
		},
	}
}

// Load overlays the YAML document read from r onto the defaults.
func Load(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile is Load on the named file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate rejects settings the editor cannot run with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Input.HitRadius <= 0 {
		return fmt.Errorf("input.hit_radius_px must be positive, got %v", c.Input.HitRadius)
	}
	if c.Render.MarkerRadius <= 0 || c.Render.LineWidth <= 0 {
		return errors.New("render sizes must be positive")
	}
	return nil
}
