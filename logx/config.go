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

package logx

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"oguild.dev/police/sanitize"
)

// Config holds log-sink configuration.
type Config struct {
	Level      zapcore.Level     `koanf:"level"`
	Format     string            `koanf:"format"`
	Caller     CallerConfig      `koanf:"caller"`
	Stacktrace StacktraceConfig  `koanf:"stacktrace"`
	Fields     map[string]string `koanf:"fields"`
	Redaction  sanitize.Rules    `koanf:"redaction"`
}

// CallerConfig controls caller information in log entries.
type CallerConfig struct {
	Enabled bool `koanf:"enabled"`
	Skip    int  `koanf:"skip"`
}

// StacktraceConfig controls stacktrace inclusion.
type StacktraceConfig struct {
	Level zapcore.Level `koanf:"level"`
}

// NewDefaultConfig returns config with production-ready defaults: JSON
// output, info level, caller annotation, stacktraces from error level up,
// and the default redaction rules applied at the encoder.
func NewDefaultConfig() *Config {
	return &Config{
		Level:  zapcore.InfoLevel,
		Format: "json",
		Caller: CallerConfig{
			Enabled: true,
			Skip:    1,
		},
		Stacktrace: StacktraceConfig{
			Level: zapcore.ErrorLevel,
		},
		Redaction: sanitize.DefaultRules(),
	}
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("police: log format must be 'json' or 'console', got %q", c.Format)
	}
	if c.Caller.Enabled && c.Caller.Skip < 0 {
		return fmt.Errorf("police: caller skip must be >= 0, got %d", c.Caller.Skip)
	}
	// Compiling the redaction rules is the validity check for them.
	if _, err := sanitize.New(c.Redaction); err != nil {
		return err
	}
	for k, v := range c.Fields {
		if k == "" {
			return fmt.Errorf("police: log field key cannot be empty")
		}
		if v == "" {
			return fmt.Errorf("police: log field %q has empty value", k)
		}
	}
	return nil
}
