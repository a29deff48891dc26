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

package police

import (
	"encoding/json"
	"fmt"

	"oguild.dev/police/kind"
	"oguild.dev/police/sanitize"
)

// Status values discriminate the two envelope variants on the wire.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Envelope is the uniform outcome shape every wrapped call produces.
//
// Exactly one variant is populated: an ok envelope carries Value and an
// optional Message; an error envelope carries Kind, Message and optional
// Details. The Status field is the discriminant and is always one of
// StatusOK or StatusError.
type Envelope struct {
	Status  string
	Value   any
	Message string
	Kind    kind.Kind
	Details map[string]any
}

// Ok boxes a successful return value.
func Ok(value any) *Envelope {
	return &Envelope{Status: StatusOK, Value: value}
}

// OkMsg boxes a successful return value with an attached message.
func OkMsg(value any, msg string) *Envelope {
	return &Envelope{Status: StatusOK, Value: value, Message: msg}
}

// Err builds an error envelope directly. Details are stored as given; the
// wrapper sanitizes before calling this.
func Err(k kind.Kind, msg string, details map[string]any) *Envelope {
	return &Envelope{Status: StatusError, Kind: k, Message: msg, Details: details}
}

// FromFailure builds an error envelope from a Failure.
func FromFailure(f *Failure) *Envelope {
	if f == nil {
		return Err(kind.Internal, "unknown failure", nil)
	}
	return Err(f.Kind, f.Message, f.Details)
}

// IsOK reports whether the envelope is the success variant.
func (e *Envelope) IsOK() bool { return e.Status == StatusOK }

// Failure converts an error envelope back into a *Failure. Returns nil for
// ok envelopes.
func (e *Envelope) Failure() *Failure {
	if e == nil || e.IsOK() {
		return nil
	}
	return &Failure{Kind: e.Kind, Message: e.Message, Details: e.Details}
}

// okWire and errWire fix the serialized field set per variant. Optional
// members serialize as explicit nulls, so the shape of the object is stable
// across values.
type okWire struct {
	Status  string  `json:"status"`
	Value   any     `json:"value"`
	Message *string `json:"message"`
}

type errWire struct {
	Status  string         `json:"status"`
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// MarshalJSON serializes the envelope with its status discriminant.
//
// Serialization never fails: any value that cannot be represented as JSON is
// coerced to its string representation, leaf by leaf, rather than failing
// the whole envelope.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	if e.IsOK() {
		var msg *string
		if e.Message != "" {
			msg = &e.Message
		}
		return json.Marshal(okWire{
			Status:  StatusOK,
			Value:   jsonSafe(e.Value, 0),
			Message: msg,
		})
	}

	var details map[string]any
	if e.Details != nil {
		details = make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			details[k] = jsonSafe(v, 0)
		}
	}
	return json.Marshal(errWire{
		Status:  StatusError,
		Kind:    string(e.Kind),
		Message: e.Message,
		Details: details,
	})
}

// ToJSON renders the envelope as a JSON string. It cannot fail: the wire
// structs marshal unconditionally once every leaf has passed jsonSafe.
func (e *Envelope) ToJSON() string {
	b, err := json.Marshal(e)
	if err != nil {
		// Unreachable given jsonSafe, kept as a hard floor.
		return fmt.Sprintf(`{"status":%q,"message":%q}`, StatusError, err.Error())
	}
	return string(b)
}

// jsonSafe returns v with every unserializable leaf replaced by its string
// representation. JSON-native containers are rebuilt so a bad leaf deep
// inside cannot poison the envelope. Depth shares the sanitizer's bound so
// cyclic native containers terminate as a truncation marker.
func jsonSafe(v any, depth int) any {
	if v == nil {
		return nil
	}
	if depth > sanitize.MaxDepth {
		return sanitize.TruncationMarker
	}

	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = jsonSafe(val, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = jsonSafe(val, depth+1)
		}
		return out
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return t
	case error:
		return t.Error()
	}

	// Probe anything else: typed structs, maps and slices usually marshal
	// fine and keep their shape; funcs, channels, complex numbers and
	// cyclic values do not and are flattened to text.
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprint(v)
	}
	return v
}
