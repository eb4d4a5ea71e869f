// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstime

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Calendar identifiers accepted in a Config.
const (
	Gregorian = "gregorian"
	ISO8601   = "iso8601" // the Gregorian calendar, named after the standard
)

// Config describes a Formatter.
type Config struct {
	// Calendar is the calendar system. Only Gregorian and ISO8601 are
	// supported, which both denote the proleptic Gregorian calendar.
	Calendar string `yaml:"calendar,omitempty" json:"calendar,omitempty"`

	// Locale is a BCP 47 or POSIX style locale identifier, like "en_US". It
	// determines the names of months and weekdays. Only English locales are
	// supported.
	Locale string `yaml:"locale,omitempty" json:"locale,omitempty"`

	// Layout is the layout to format and parse with, in the notation of
	// DateTimeZone.
	Layout string `yaml:"layout,omitempty" json:"layout,omitempty"`

	// Pattern is an alternative to Layout, in the notation of Unicode
	// Technical Standard #35, like "yyyy-MM-dd HH:mm:ss Z". See
	// PatternLayout for the supported symbols.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Timezone is used to format times and to parse times without a zone
	// offset. It is an IANA timezone name, "UTC" or "Local".
	Timezone string `yaml:"timezone,omitempty" json:"timezone,omitempty"`
}

// DefaultConfig returns the configuration used for empty fields: the
// Gregorian calendar, US English, DateTimeZone and UTC.
func DefaultConfig() Config {
	return Config{
		Calendar: Gregorian,
		Locale:   "en_US",
		Layout:   DateTimeZone,
		Timezone: "UTC",
	}
}

// Normalize fills in empty fields with their defaults. Layout is only
// defaulted if Pattern is empty as well.
func (c *Config) Normalize() {
	d := DefaultConfig()
	c.Calendar = strings.ToLower(strings.TrimSpace(c.Calendar))
	if c.Calendar == "" {
		c.Calendar = d.Calendar
	}
	if c.Locale == "" {
		c.Locale = d.Locale
	}
	if c.Layout == "" && c.Pattern == "" {
		c.Layout = d.Layout
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
}

// ParseConfig decodes a YAML document into a normalized Config.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	c.Normalize()
	return c, nil
}

// LoadConfig reads the YAML file at path into a normalized Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
