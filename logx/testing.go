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
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger wraps Logger with in-memory observation, so tests can assert
// exactly what the interception layer emitted without parsing output.
type TestLogger struct {
	*Logger
	observed *observer.ObservedLogs
}

// NewTestLogger creates a logger for testing that records every entry down
// to debug level.
func NewTestLogger() *TestLogger {
	core, observed := observer.New(zapcore.DebugLevel)
	return &TestLogger{
		Logger: &Logger{
			zap:    zap.New(core),
			config: NewDefaultConfig(),
		},
		observed: observed,
	}
}

// Registry returns a channel registry backed by this test logger.
func (t *TestLogger) Registry() *Registry {
	return NewRegistry(t.Logger)
}

// All returns all logged entries.
func (t *TestLogger) All() []observer.LoggedEntry {
	return t.observed.All()
}

// FilterMessage returns entries matching message substring.
func (t *TestLogger) FilterMessage(msg string) *observer.ObservedLogs {
	return t.observed.FilterMessage(msg)
}

// Len returns the number of recorded entries.
func (t *TestLogger) Len() int {
	return t.observed.Len()
}

// Reset clears all logged entries.
func (t *TestLogger) Reset() {
	t.observed.TakeAll()
}

// AssertLogged verifies a log at level containing message was logged.
func (t *TestLogger) AssertLogged(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if entry.Level == level && strings.Contains(entry.Message, msgContains) {
			return
		}
	}
	tb.Errorf("expected log at %v containing %q, logs: %+v", level, msgContains, t.observed.All())
}

// AssertNotLogged verifies no log at level containing message was logged.
func (t *TestLogger) AssertNotLogged(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if entry.Level == level && strings.Contains(entry.Message, msgContains) {
			tb.Errorf("unexpected log at %v containing %q", level, msgContains)
		}
	}
}

// AssertLoggerNamed verifies an entry was emitted through a logger with the
// given name.
func (t *TestLogger) AssertLoggerNamed(tb testing.TB, name string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if entry.LoggerName == name {
			return
		}
	}
	tb.Errorf("no entries from logger %q, logs: %+v", name, t.observed.All())
}

// AssertField verifies a field with key and value exists in entries matching
// the message substring.
func (t *TestLogger) AssertField(tb testing.TB, msg, key string, expected interface{}) {
	tb.Helper()
	for _, entry := range t.observed.FilterMessage(msg).All() {
		for _, field := range entry.Context {
			if field.Key != key {
				continue
			}
			if field.Type == zapcore.StringType && field.String == expected {
				return
			}
			if fieldValueEqual(field, expected) {
				return
			}
		}
	}
	tb.Errorf("field %q=%v not found in message %q, logs: %+v", key, expected, msg, t.observed.All())
}

// AssertNoValue verifies a raw value string appears nowhere in the recorded
// entries: not in messages, not in string fields, not inside reflected
// payloads. Tests use this to prove a secret never reached the sink.
func (t *TestLogger) AssertNoValue(tb testing.TB, value string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if strings.Contains(entry.Message, value) {
			tb.Errorf("value %q leaked in message: %q", value, entry.Message)
		}
		for _, field := range entry.Context {
			enc := zapcore.NewMapObjectEncoder()
			field.AddTo(enc)
			if mapContainsValue(enc.Fields, value) {
				tb.Errorf("value %q leaked in field %q", value, field.Key)
			}
		}
	}
}

func fieldValueEqual(field zapcore.Field, expected interface{}) bool {
	enc := zapcore.NewMapObjectEncoder()
	field.AddTo(enc)
	for _, v := range enc.Fields {
		if v == expected {
			return true
		}
	}
	return false
}

func mapContainsValue(m map[string]interface{}, value string) bool {
	for _, v := range m {
		switch t := v.(type) {
		case string:
			if strings.Contains(t, value) {
				return true
			}
		case map[string]interface{}:
			if mapContainsValue(t, value) {
				return true
			}
		case []interface{}:
			for _, e := range t {
				if s, ok := e.(string); ok && strings.Contains(s, value) {
					return true
				}
				if mm, ok := e.(map[string]interface{}); ok && mapContainsValue(mm, value) {
					return true
				}
			}
		}
	}
	return false
}
