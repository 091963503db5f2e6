// Package config loads and saves generation tables as YAML.
//
// A config file may set any of the three tables; an omitted table keeps its default:
//
//	separators: ["-", ""]
//	schemas: [ysmsd, dsmsy]
//	months:
//	  1: [jan, january, janv]
//	  ...
//
// A months table replaces the default one entirely and must cover months 1-12.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrsinham/dateomatic/internal/candidates"
)

// ErrInvalidConfig wraps every semantic problem found in a config file.
var ErrInvalidConfig = errors.New("config: invalid tables")

// File is the YAML representation of candidates.Tables.
type File struct {
	Separators []string              `yaml:"separators,omitempty"`
	Schemas    []candidates.Schema   `yaml:"schemas,omitempty"`
	Months     candidates.MonthTable `yaml:"months,omitempty"`
}

// FromTables converts tables to their file form.
func FromTables(t candidates.Tables) File {
	c := t.Clone()
	return File{
		Separators: c.Separators,
		Schemas:    c.Schemas,
		Months:     c.Months,
	}
}

// Tables overlays f on the defaults. Lists present in f, even empty ones, replace
// the default lists.
func (f File) Tables() candidates.Tables {
	t := candidates.DefaultTables()
	if f.Separators != nil {
		t.Separators = f.Separators
	}
	if f.Schemas != nil {
		t.Schemas = f.Schemas
	}
	if f.Months != nil {
		t.Months = f.Months
	}
	return t
}

// Parse decodes YAML data into validated tables. Unknown keys are rejected and an
// empty document yields the defaults.
func Parse(data []byte) (candidates.Tables, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return candidates.Tables{}, fmt.Errorf("parse YAML: %w", err)
	}

	t := f.Tables()
	if err := t.Validate(); err != nil {
		return candidates.Tables{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return t, nil
}

// Load reads tables from a YAML file.
func Load(path string) (candidates.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return candidates.Tables{}, fmt.Errorf("read config: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return candidates.Tables{}, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Save writes tables to a YAML file.
func Save(t candidates.Tables, path string) error {
	data, err := yaml.Marshal(FromTables(t))
	if err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
