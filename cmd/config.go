package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raidrisk/raidrisk/array"
	"github.com/raidrisk/raidrisk/risk"
)

// DiskConfig is a data disk entry of raidrisk.yaml.
type DiskConfig struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
}

// Config represents the full raidrisk.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Disks    []DiskConfig `yaml:"disks"`
	Parity   []string     `yaml:"parity"`   // parity files, first is "parity", then "2-parity", ...
	Smartctl string       `yaml:"smartctl"` // optional smartctl binary
	Title    string       `yaml:"title"`    // optional SMART report title
}

// LoadConfig reads and validates the configuration at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a configuration document. Unknown keys
// are rejected so typos cannot silently drop a member.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config is empty")
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the member layout.
func (c *Config) Validate() error {
	if len(c.Disks) == 0 {
		return errors.New("disks: at least one disk is required")
	}
	names := make(map[string]bool, len(c.Disks))
	for i, d := range c.Disks {
		if d.Name == "" {
			return fmt.Errorf("disks[%d].name: must not be empty", i)
		}
		if names[d.Name] {
			return fmt.Errorf("disks[%d].name: duplicate disk %q", i, d.Name)
		}
		names[d.Name] = true
		if d.Dir == "" {
			return fmt.Errorf("disks[%d].dir: must not be empty", i)
		}
	}

	if len(c.Parity) == 0 {
		return errors.New("parity: at least one parity file is required")
	}
	paths := make(map[string]bool, len(c.Parity))
	for i, p := range c.Parity {
		if p == "" {
			return fmt.Errorf("parity[%d]: must not be empty", i)
		}
		if paths[p] {
			return fmt.Errorf("parity[%d]: duplicate parity file %q", i, p)
		}
		paths[p] = true
	}
	a := c.Array()
	if err := risk.CheckRedundancy(a.Redundancy(), a.MemberCount()); err != nil {
		return fmt.Errorf("parity: %w", err)
	}
	return nil
}

// Array converts the configuration into the array layout.
func (c *Config) Array() *array.Array {
	a := &array.Array{}
	for _, d := range c.Disks {
		a.Disks = append(a.Disks, array.Disk{Name: d.Name, Dir: d.Dir})
	}
	for _, p := range c.Parity {
		a.Parity = append(a.Parity, array.Parity{Path: p})
	}
	return a
}
