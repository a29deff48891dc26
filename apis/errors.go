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

// KindedError represents an error that is classified into a well-defined,
// machine-readable failure *kind*.
//
// A kind denotes a broad category, such as:
//   - "invalid"          — validation failed,
//   - "not_found"        — a referenced object does not exist,
//   - "division_by_zero" — an arithmetic fault surfaced from a wrapped call,
//   - "internal"         — unexpected failure with no better classification.
//
// Kinds are intended to be stable and enumerable. They are the primary value
// the classifier extracts at the interception boundary and that transport
// adapters (HTTP, gRPC) use to decide which status to return.
//
// Implementations are expected to return a *canonicalized* kind string — i.e.,
// normalized to the format enforced by the police/kind package (lowercase,
// underscores, length limits). The classifier treats malformed kinds as
// internal rather than guessing.
type KindedError interface {
	error

	// ErrorKind returns the machine-readable failure kind.
	//
	// The returned value MUST be non-empty and SHOULD already be normalized
	// according to the rules of the police/kind package. A malformed value
	// degrades to "internal" at the boundary.
	ErrorKind() string
}

// DetailedError represents an error that exposes structured details. This is
// what lets a wrapped call attach context (ids, offending values, argument
// snapshots) that survives into the envelope and the log emission.
//
// Implementations SHOULD return a map that callers treat as read-only.
// Returning nil is allowed and simply means "no extra details". Values are
// sanitized at the interception boundary, so implementations need not redact
// them here.
type DetailedError interface {
	error

	// ErrorDetails returns structured details of the error. May return nil.
	ErrorDetails() map[string]any
}

// CausedError represents an error that exposes its underlying cause.
//
// While errors.Unwrap covers most call sites, having this interface in apis
// keeps the contract explicit where an adapter wants the direct cause without
// walking the whole chain.
//
// Implementations SHOULD return the direct, immediate cause of the error. If
// there is no underlying cause, they SHOULD return nil.
type CausedError interface {
	error

	// Cause returns the underlying error that triggered this one, if any.
	// May return nil.
	Cause() error
}
