package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/CTAG07/markovwords/pkg/markov"
	"github.com/natefinch/atomic"
)

// ServerConfig holds settings for the HTTP server and shared resources.
type ServerConfig struct {
	ApiAddr      string `json:"api_addr"`
	LogLevel     string `json:"log_level"`
	DataDir      string `json:"data_dir"`
	DatabasePath string `json:"database_path"`
}

// ModelConfig holds the settings used when building a model.
type ModelConfig struct {
	NgramSize int    `json:"ngram_size"`
	EndMarker string `json:"end_marker"`
}

// GenerateConfig holds the default generation parameters.
type GenerateConfig struct {
	Count     int    `json:"count"`
	MaxLength int    `json:"max_length"`
	Seed      uint64 `json:"seed"` // 0 means a fresh random seed on every run
}

// WordlistConfig holds the default training source.
type WordlistConfig struct {
	Path   string `json:"path"`
	Filter string `json:"filter"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Server   *ServerConfig   `json:"server_config"`
	Model    *ModelConfig    `json:"model_config"`
	Generate *GenerateConfig `json:"generate_config"`
	Wordlist *WordlistConfig `json:"wordlist_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerConfig{
			ApiAddr:      ":7279",
			LogLevel:     "info",
			DataDir:      "./data",
			DatabasePath: "./data/markovwords.db",
		},
		Model: &ModelConfig{
			NgramSize: markov.DefaultOrder,
			EndMarker: string(markov.DefaultEnd),
		},
		Generate: &GenerateConfig{
			Count:     10,
			MaxLength: markov.DefaultMaxLength,
		},
		Wordlist: &WordlistConfig{
			Path: "./wordlist.txt",
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without a file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.fillDefaults()

	return config, config.Validate()
}

// fillDefaults replaces sections that were omitted (or null) in the file.
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.Server == nil {
		c.Server = d.Server
	}
	if c.Model == nil {
		c.Model = d.Model
	}
	if c.Generate == nil {
		c.Generate = d.Generate
	}
	if c.Wordlist == nil {
		c.Wordlist = d.Wordlist
	}
}

// Validate checks the values a run cannot recover from.
func (c *Config) Validate() error {
	if c.Model.NgramSize < 1 {
		return fmt.Errorf("model_config.ngram_size must be at least 1, got %d", c.Model.NgramSize)
	}
	if _, err := c.Model.End(); err != nil {
		return err
	}
	if c.Generate.Count < 0 {
		return fmt.Errorf("generate_config.count must not be negative, got %d", c.Generate.Count)
	}
	return nil
}

// End returns the end marker as a rune.
func (m *ModelConfig) End() (rune, error) {
	if utf8.RuneCountInString(m.EndMarker) != 1 {
		return 0, fmt.Errorf("model_config.end_marker must be exactly one character, got %q", m.EndMarker)
	}
	r, _ := utf8.DecodeRuneInString(m.EndMarker)
	return r, nil
}

// BuilderOptions translates the model section into markov options.
func (m *ModelConfig) BuilderOptions() ([]markov.Option, error) {
	end, err := m.End()
	if err != nil {
		return nil, err
	}
	return []markov.Option{markov.WithOrder(m.NgramSize), markov.WithEnd(end)}, nil
}
