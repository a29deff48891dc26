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
	"fmt"

	"oguild.dev/police/kind"
)

// Failure is the canonical rich failure type for the interception layer.
//
// It carries:
//   - Kind: normalized failure category (required);
//   - Message: human-oriented description (what went wrong);
//   - Details: arbitrary key/value payload (for logging / the envelope);
//   - Cause: wrapped underlying error for debugging / unwrapping.
//
// All mutation helpers (WithX) return a shallow copy, so Failure instances
// can be safely shared and modified in a functional style.
type Failure struct {
	// Kind is the primary classification of the failure, e.g. "not_found",
	// "invalid", "division_by_zero". Must be a normalized kind from
	// police/kind.
	Kind kind.Kind

	// Message is a human-readable explanation. This is what ends up in logs
	// and in the "message" field of an Error envelope.
	Message string

	// Details is an optional, shallow map of extra fields. Use this to expose
	// structured failure data (ids, limits, offending values, etc.).
	// The map is treated as immutable: WithDetail/WithDetails always copy it.
	Details map[string]any

	// Cause holds the wrapped underlying error (if any). This is used for
	// errors.Is / errors.As and for debugging in lower layers.
	Cause error

	// intercepted marks a failure that has already been logged and enveloped
	// by a wrapper. A wrapper seeing an intercepted failure passes it through
	// without logging again.
	intercepted bool
}

// F is a convenience constructor for Failure.
//
// Usage:
//
//	return police.F(kind.NotFound, "booking not found",
//	    police.WithDetailOption("booking_id", id),
//	)
//
// It always returns a *new* Failure and applies all provided options in order.
func F(k kind.Kind, msg string, opts ...FailureOption) *Failure {
	f := &Failure{Kind: k, Message: msg}
	for _, opt := range opts {
		f = opt(f)
	}
	return f
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<kind>: <message>
//
// This makes the failure both human- and machine-scannable in logs.
func (f *Failure) Error() string {
	if f == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (f *Failure) Unwrap() error { return f.Cause }

// ErrorKind exposes the kind as a plain string. This is the capability the
// classifier and the transport adapters look for, so any error type can
// participate by implementing it.
func (f *Failure) ErrorKind() string { return string(f.Kind) }

// ErrorDetails exposes the details map. Callers must treat the returned map
// as read-only.
func (f *Failure) ErrorDetails() map[string]any { return f.Details }

// WithMessage returns a shallow copy of f with a replaced human message.
// Useful when you want to keep the Kind but present the message in a
// different context.
func (f *Failure) WithMessage(msg string) *Failure {
	cp := *f
	cp.Message = msg
	return &cp
}

// WithDetail returns a shallow copy of f with one extra key/value in Details.
//
// The method always copies the map to preserve immutability. This prevents
// surprising modifications across goroutines or shared failure values.
func (f *Failure) WithDetail(k string, v any) *Failure {
	cp := *f
	// No details yet — create a new single-entry map.
	if len(cp.Details) == 0 {
		cp.Details = map[string]any{k: v}
		return &cp
	}
	// Copy existing details and add one more.
	m := make(map[string]any, len(cp.Details)+1)
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithDetails returns a shallow copy of f with all provided kv merged into
// Details.
//
// If the Failure already has Details, both maps are copied and merged,
// with kv taking precedence on key conflicts.
func (f *Failure) WithDetails(kv map[string]any) *Failure {
	if len(kv) == 0 {
		return f
	}
	cp := *f
	// No existing details — just copy kv.
	if len(cp.Details) == 0 {
		m := make(map[string]any, len(kv))
		for k, v := range kv {
			m[k] = v
		}
		cp.Details = m
		return &cp
	}
	// Merge existing + new.
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a shallow copy of f with the given underlying cause
// attached. If err is nil, the original failure is returned unchanged.
func (f *Failure) WithCause(err error) *Failure {
	if err == nil {
		return f
	}
	cp := *f
	cp.Cause = err
	return &cp
}

// markIntercepted returns a shallow copy of f flagged as already logged and
// enveloped.
func (f *Failure) markIntercepted() *Failure {
	if f.intercepted {
		return f
	}
	cp := *f
	cp.intercepted = true
	return &cp
}
