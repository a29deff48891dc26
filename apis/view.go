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

package apis

// ViewProvider is implemented by errors that can produce a transport-friendly,
// self-contained representation of themselves.
//
// This is useful for HTTP/gRPC adapters that want to send "the canonical
// form" of the failure to the client without having to know about the
// concrete error type.
//
// The returned view MUST be safe to marshal (to JSON/proto) and SHOULD
// contain only information that has passed sanitization.
type ViewProvider interface {
	error

	// ErrorView returns a transport-friendly snapshot of the error.
	ErrorView() ErrorView
}

// ErrorView is a minimal, serializable representation of a failure.
//
// This is *not* the concrete failure type used internally — it is the shape
// that we are comfortable exposing over the wire or logging. Keeping it here
// (in apis) allows both HTTP and gRPC adapters to share the same struct.
type ErrorView struct {
	// Kind is the canonical failure kind, e.g. "invalid", "not_found",
	// "division_by_zero".
	//
	// Implementations SHOULD store only normalized, validated kinds here.
	Kind string `json:"kind"`

	// Channel is the logical channel the failure was emitted on. It MAY be
	// empty when the view was built outside the interception boundary.
	Channel string `json:"channel,omitempty"`

	// Message is an optional human-friendly message.
	//
	// This is typically either the failure's own message or a default
	// message taken from the descriptor.
	Message string `json:"message,omitempty"`

	// Details is the flattened, sanitized failure context.
	Details []Detail `json:"details,omitempty"`
}
