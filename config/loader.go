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

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// envPrefix is stripped from override variables: POLICE_LOG_LEVEL -> log.level.
	envPrefix = "POLICE_"

	// maxConfigFileSize bounds config files to keep misconfigured paths from
	// exhausting memory.
	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Load reads configuration from an optional YAML file, then overrides with
// POLICE_* environment variables.
//
// Precedence (highest to lowest):
//
//  1. Environment variables (POLICE_LOG_LEVEL, POLICE_POLICE_RERAISE, ...)
//  2. YAML config file (skipped when path is empty or the file is absent)
//  3. Library defaults
//
// Environment variables map section-first: the first underscore after the
// prefix separates the section, the rest stays underscored:
//
//	POLICE_LOG_LEVEL            -> log.level
//	POLICE_POLICE_SUCCESS_LEVEL -> police.success_level
//	POLICE_SANITIZE_TOKEN       -> sanitize.token
func Load(path string) (*Config, error) {
	var content []byte
	if path != "" {
		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			// Absent file falls through to defaults + env.
		case err != nil:
			return nil, fmt.Errorf("police: stat config file: %w", err)
		case info.Size() > maxConfigFileSize:
			return nil, fmt.Errorf("police: config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
		default:
			content, err = os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("police: read config file: %w", err)
			}
		}
	}
	return LoadBytes(content)
}

// LoadBytes is Load without the filesystem: defaults, then the given YAML
// (nil means none), then POLICE_* environment overrides. Tests use it to
// exercise precedence without touching disk.
func LoadBytes(content []byte) (*Config, error) {
	k := koanf.New(".")

	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("police: parse config: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// POLICE_LOG_LEVEL -> log.level; the section is the first token,
		// the remainder keeps its underscores (success_level, ...).
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("police: load environment overrides: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("police: unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
