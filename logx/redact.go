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
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"oguild.dev/police/sanitize"
)

// RedactingEncoder wraps a zapcore.Encoder to redact sensitive fields at the
// encoding boundary. It is the sink-side safety net behind the Sanitizer:
// even a field logged directly (bypassing Sanitize) cannot leak a value
// under a sensitive key.
type RedactingEncoder struct {
	zapcore.Encoder
	rules *sanitize.Sanitizer
}

// NewRedactingEncoder wraps an encoder with the given redaction rules.
// Returns an error if a value pattern fails to compile.
func NewRedactingEncoder(base zapcore.Encoder, rules sanitize.Rules) (*RedactingEncoder, error) {
	s, err := sanitize.New(rules)
	if err != nil {
		return nil, err
	}
	return &RedactingEncoder{Encoder: base, rules: s}, nil
}

// AddString redacts sensitive field names and value patterns.
func (e *RedactingEncoder) AddString(key, val string) {
	if e.rules.SensitiveKey(key) {
		e.Encoder.AddString(key, e.rules.Token())
		return
	}
	if redacted, ok := e.rules.Sanitize(val).(string); ok {
		e.Encoder.AddString(key, redacted)
		return
	}
	e.Encoder.AddString(key, val)
}

// AddByteString redacts sensitive field names.
func (e *RedactingEncoder) AddByteString(key string, val []byte) {
	if e.rules.SensitiveKey(key) {
		e.Encoder.AddByteString(key, []byte(e.rules.Token()))
		return
	}
	e.Encoder.AddByteString(key, val)
}

// AddBinary redacts sensitive field names.
func (e *RedactingEncoder) AddBinary(key string, val []byte) {
	if e.rules.SensitiveKey(key) {
		e.Encoder.AddBinary(key, []byte(e.rules.Token()))
		return
	}
	e.Encoder.AddBinary(key, val)
}

// AddReflected redacts sensitive field names. The entire reflected value is
// replaced when the key is sensitive; otherwise the value itself is passed
// through Sanitize so nested sensitive keys inside maps are covered too.
func (e *RedactingEncoder) AddReflected(key string, val interface{}) error {
	if e.rules.SensitiveKey(key) {
		e.Encoder.AddString(key, e.rules.Token())
		return nil
	}
	return e.Encoder.AddReflected(key, e.rules.Sanitize(val))
}

// AddArray redacts sensitive field names.
func (e *RedactingEncoder) AddArray(key string, arr zapcore.ArrayMarshaler) error {
	if e.rules.SensitiveKey(key) {
		e.Encoder.AddString(key, e.rules.Token())
		return nil
	}
	return e.Encoder.AddArray(key, arr)
}

// AddObject redacts sensitive field names.
func (e *RedactingEncoder) AddObject(key string, obj zapcore.ObjectMarshaler) error {
	if e.rules.SensitiveKey(key) {
		e.Encoder.AddString(key, e.rules.Token())
		return nil
	}
	return e.Encoder.AddObject(key, obj)
}

// Clone creates a copy of the encoder sharing the compiled rules.
func (e *RedactingEncoder) Clone() zapcore.Encoder {
	return &RedactingEncoder{
		Encoder: e.Encoder.Clone(),
		rules:   e.rules,
	}
}

// EncodeEntry routes call-site fields through the redacting Add* methods
// before delegating to the wrapped encoder. Without this, fields passed at
// the log call (as opposed to attached via With) would reach the wrapped
// encoder directly and skip redaction.
func (e *RedactingEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	clone := e.Clone().(*RedactingEncoder)
	for i := range fields {
		fields[i].AddTo(clone)
	}
	return clone.Encoder.EncodeEntry(ent, nil)
}
