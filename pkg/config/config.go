package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sheetform/pkg/model"
)

// Config is the YAML configuration shared by the CLI and embedding hosts.
type Config struct {
	MaxFields    int            `yaml:"max_fields"`
	Sheet        string         `yaml:"sheet"`
	Renderer     string         `yaml:"renderer"`
	SanitizeText bool           `yaml:"sanitize_text"`
	Messages     model.Messages `yaml:"messages"`
	Log          Log            `yaml:"log"`
	Jobs         int            `yaml:"jobs"`
}

// Log configures the CLI logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		MaxFields: 100,
		Renderer:  "document",
		Log:       Log{Level: "info"},
		Jobs:      1,
	}
}

// Parse decodes YAML over the defaults. Unknown keys are rejected. An empty
// document yields the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFS reads the configuration file name from fsys.
func LoadFS(fsys fs.FS, name string) (Config, error) {
	if fsys == nil {
		return Config{}, errors.New("config: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Parse(data)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.MaxFields < 0 {
		return fmt.Errorf("config: max_fields must not be negative, got %d", c.MaxFields)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("config: jobs must not be negative, got %d", c.Jobs)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	return nil
}

func (l Log) level() (zapcore.Level, error) {
	if strings.TrimSpace(l.Level) == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("config: log.level: %w", err)
	}
	return level, nil
}

// Logger builds a zap logger from the log settings.
func (l Log) Logger() (*zap.Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	if l.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
