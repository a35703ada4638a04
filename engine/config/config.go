// Package config loads import presets and logging settings from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/anima/engine/assimp"
	"github.com/spaghettifunk/anima/engine/core"
)

// DefaultPath is where LoadDefault looks for a configuration file.
const DefaultPath = "~/.config/anima/import.toml"

type Config struct {
	Import ImportConfig `toml:"import"`
	Log    LogConfig    `toml:"log"`
}

type ImportConfig struct {
	// Flags are post-processing step names as accepted by
	// assimp.ParseProcess.
	Flags []string `toml:"flags"`
	// Properties maps native property names to integer, float, bool or
	// string values.
	Properties map[string]interface{} `toml:"properties"`
}

type LogConfig struct {
	Level string `toml:"level"`
	// Verbose enables debug output of the native library.
	Verbose bool `toml:"verbose"`
	// Streams are "stdout", "stderr", "debugger", "logger" or
	// "file:<path>".
	Streams []string `toml:"streams"`
}

// Default is used for every setting a file leaves out.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Flags: []string{"triangulate", "join_identical_vertices", "gen_smooth_normals", "sort_by_ptype"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Parse decodes data on top of Default and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("config %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the file at path. A leading "~" is expanded.
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config path %q: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	core.LogDebug("loaded config from %s", expanded)
	return cfg, nil
}

// LoadDefault loads DefaultPath when it exists and falls back to Default.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) Validate() error {
	if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := c.Flags(); err != nil {
		return err
	}
	if _, err := c.ImporterOptions(); err != nil {
		return err
	}
	if _, err := c.LogStreams(); err != nil {
		return err
	}
	return nil
}

// Flags combines the configured post-processing steps.
func (c *Config) Flags() (assimp.Process, error) {
	return assimp.ParseProcessList(c.Import.Flags)
}

// ImporterOptions turns the configured properties into importer options.
func (c *Config) ImporterOptions() ([]assimp.ImporterOption, error) {
	opts := make([]assimp.ImporterOption, 0, len(c.Import.Properties))
	for name, value := range c.Import.Properties {
		p := assimp.Property(name)
		switch v := value.(type) {
		case int64:
			opts = append(opts, assimp.WithPropertyInt(p, int(v)))
		case float64:
			opts = append(opts, assimp.WithPropertyFloat(p, float32(v)))
		case bool:
			opts = append(opts, assimp.WithPropertyBool(p, v))
		case string:
			opts = append(opts, assimp.WithPropertyString(p, v))
		default:
			return nil, fmt.Errorf("property %s: unsupported value type %T", name, value)
		}
	}
	return opts, nil
}

// NewImporter creates an importer with the configured flags and properties.
func (c *Config) NewImporter() (*assimp.Importer, error) {
	flags, err := c.Flags()
	if err != nil {
		return nil, err
	}
	opts, err := c.ImporterOptions()
	if err != nil {
		return nil, err
	}
	return assimp.NewImporter(append([]assimp.ImporterOption{assimp.WithFlags(flags)}, opts...)...)
}

// LogStreams resolves the configured stream names.
func (c *Config) LogStreams() ([]assimp.LogStream, error) {
	out := make([]assimp.LogStream, 0, len(c.Log.Streams))
	for _, name := range c.Log.Streams {
		s, err := ParseLogStream(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ApplyLogging sets the log level and attaches the configured streams.
func (c *Config) ApplyLogging() error {
	level, err := core.ParseLogLevel(c.Log.Level)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)

	streams, err := c.LogStreams()
	if err != nil {
		return err
	}
	for _, s := range streams {
		if err := assimp.AttachLogStream(s); err != nil {
			return err
		}
	}
	assimp.EnableVerboseLogging(c.Log.Verbose)
	return nil
}

// ParseLogStream resolves a single stream name.
func ParseLogStream(name string) (assimp.LogStream, error) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(name) {
	case "stdout":
		return assimp.Stdout(), nil
	case "stderr":
		return assimp.Stderr(), nil
	case "debugger":
		return assimp.Debugger(), nil
	case "logger":
		return assimp.LoggerStream(), nil
	}
	if path, ok := strings.CutPrefix(name, "file:"); ok && path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return assimp.LogStream{}, fmt.Errorf("log file %q: %w", path, err)
		}
		return assimp.File(expanded), nil
	}
	return assimp.LogStream{}, fmt.Errorf("%q: %w", name, core.ErrUnknownLogStream)
}
