/*
   Copyright 2025 The OGuild Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads the library's runtime configuration from a YAML file
// with environment-variable overrides.
package config

import (
	"fmt"

	"oguild.dev/police"
	"oguild.dev/police/logx"
	"oguild.dev/police/sanitize"
)

// Config is the top-level configuration for the interception layer.
type Config struct {
	// Police controls wrapper behavior.
	Police PoliceConfig `koanf:"police"`

	// Sanitize configures the detail sanitizer shared by wrappers and
	// transport adapters.
	Sanitize sanitize.Rules `koanf:"sanitize"`

	// Log configures the log sink behind the channel registry.
	Log logx.Config `koanf:"log"`
}

// PoliceConfig controls how wrappers behave at runtime.
type PoliceConfig struct {
	// Reraise switches wrappers from swallow-and-return to log-and-reraise.
	Reraise bool `koanf:"reraise"`

	// SuccessLevel is the emission level for successful invocations:
	// "silent", "debug", or "info".
	SuccessLevel string `koanf:"success_level"`
}

// NewDefaultConfig returns the configuration used when no file and no
// environment overrides are present.
func NewDefaultConfig() *Config {
	return &Config{
		Police: PoliceConfig{
			Reraise:      false,
			SuccessLevel: "silent",
		},
		Sanitize: sanitize.DefaultRules(),
		Log:      *logx.NewDefaultConfig(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := ParseSuccessLevel(c.Police.SuccessLevel); err != nil {
		return err
	}
	// Compiling the sanitizer rules is the validity check for them.
	if _, err := sanitize.New(c.Sanitize); err != nil {
		return err
	}
	return c.Log.Validate()
}

// ParseSuccessLevel converts the textual success level into the wrapper enum.
func ParseSuccessLevel(s string) (police.SuccessLevel, error) {
	switch s {
	case "", "silent":
		return police.SuccessSilent, nil
	case "debug":
		return police.SuccessDebug, nil
	case "info":
		return police.SuccessInfo, nil
	default:
		return police.SuccessSilent, fmt.Errorf("police: unknown success level %q (want silent, debug, or info)", s)
	}
}

// Options converts the loaded configuration into wrap-time options:
// the sanitizer built from the rules, the reraise switch, and the success
// emission level. The returned slice can be appended to per-call options.
func (c *Config) Options() ([]police.Option, error) {
	s, err := sanitize.New(c.Sanitize)
	if err != nil {
		return nil, err
	}
	lvl, err := ParseSuccessLevel(c.Police.SuccessLevel)
	if err != nil {
		return nil, err
	}
	opts := []police.Option{
		police.WithSanitizer(s),
		police.WithSuccessLevel(lvl),
	}
	if c.Police.Reraise {
		opts = append(opts, police.WithReraise())
	}
	return opts, nil
}
