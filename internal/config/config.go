// Package config loads runtime configuration for the text analyzers:
// line breaking options and dictionary word lists. Files are TOML,
// environment variables override file values.
package config

import (
	"fmt"
)

// Config is the root configuration.
type Config struct {
	LineBreak  LineBreak    `toml:"linebreak"`
	Dictionary []Dictionary `toml:"dictionary"`
}

// LineBreak holds the analyzer options.
type LineBreak struct {
	// SpaceCM enables the legacy treatment of a combining mark after
	// a space.
	SpaceCM bool `toml:"space_cm"`
	// KoreanSpace allows breaks between Hangul syllable blocks.
	KoreanSpace bool `toml:"korean_space"`
	// AIAsID resolves ambiguous characters as ideographic.
	AIAsID bool `toml:"ai_as_id"`
}

// Dictionary names a word list for one script.
type Dictionary struct {
	// Script selects the characters the dictionary segments, by
	// Unicode script name (for example "Thai").
	Script string `toml:"script"`
	// Path is the YAML word list location.
	Path string `toml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{}
}

// Validate checks the configuration for omissions.
func (c *Config) Validate() error {
	for i, d := range c.Dictionary {
		if d.Script == "" {
			return fmt.Errorf("config: dictionary %d: script is required", i)
		}
		if d.Path == "" {
			return fmt.Errorf("config: dictionary %q: path is required", d.Script)
		}
	}
	return nil
}
