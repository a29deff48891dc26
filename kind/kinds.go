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

package kind

// Core / generic failure kinds
//
// These kinds describe high-level, transport-agnostic failure classes. They
// are what the wrapper falls back to when nothing more specific can be
// extracted from the captured error.
const (
	// Internal indicates an internal, non-classified failure.
	// This is the ultimate fallback when no more specific kind applies.
	// The root cause is typically attached as the Failure cause.
	//
	// Transport projection is mapper-specific; defaults to HTTP 500.
	Internal Kind = "internal"

	// Invalid indicates that an input value violates a structural or
	// semantic invariant: bad format, out-of-range value, wrong type.
	//
	// Defaults to HTTP 400.
	Invalid Kind = "invalid"

	// Missing indicates that a required value, field or argument is absent.
	//
	// Defaults to HTTP 400.
	Missing Kind = "missing"

	// Unsupported indicates that the requested operation or value is not
	// supported by the current runtime or policy.
	//
	// Defaults to HTTP 400.
	Unsupported Kind = "unsupported"
)

// Runtime / operation control failure kinds
//
// Transient, operational conditions captured at the wrapper boundary.
const (
	// Unavailable indicates that a required downstream dependency is
	// temporarily unreachable. The technical cause rides along as the
	// Failure cause.
	//
	// Defaults to HTTP 503.
	Unavailable Kind = "unavailable"

	// Timeout indicates that the wrapped call could not complete within its
	// time budget. Extracted from context.DeadlineExceeded among others.
	//
	// Defaults to HTTP 504.
	Timeout Kind = "timeout"

	// Canceled indicates that the wrapped call was canceled by the caller
	// or by context propagation. Extracted from context.Canceled.
	//
	// Defaults to HTTP 499 on HTTP, CANCELLED on gRPC.
	Canceled Kind = "canceled"

	// DependencyFailed indicates that a downstream returned an
	// application-level failure that made continuing impossible, even
	// though the dependency itself was reachable.
	//
	// Defaults to HTTP 502.
	DependencyFailed Kind = "dependency_failed"

	// Overloaded indicates that the callee refused work because queues or
	// limits are saturated.
	//
	// Defaults to HTTP 503.
	Overloaded Kind = "overloaded"

	// RateLimited indicates that the caller exceeded an allowed rate.
	//
	// Defaults to HTTP 429.
	RateLimited Kind = "rate_limited"
)

// Resource / state failure kinds
const (
	// NotFound indicates that a referenced entity does not exist.
	//
	// Defaults to HTTP 404.
	NotFound Kind = "not_found"

	// AlreadyExists indicates that an entity with the same identity is
	// already present.
	//
	// Defaults to HTTP 409.
	AlreadyExists Kind = "already_exists"

	// Conflict indicates a state conflict: version mismatch, concurrent
	// update, uniqueness violation that is not strictly "already exists".
	//
	// Defaults to HTTP 409.
	Conflict Kind = "conflict"

	// Expired indicates that the target object is no longer valid due to
	// time-based expiration (links, one-time tokens, TTL'd entities).
	//
	// Defaults to HTTP 410.
	Expired Kind = "expired"
)

// Authentication / authorization failure kinds
const (
	// Unauthenticated indicates that no valid caller identity could be
	// established.
	//
	// Defaults to HTTP 401.
	Unauthenticated Kind = "unauthenticated"

	// PermissionDenied indicates that the caller is authenticated but not
	// allowed to perform the operation.
	//
	// Defaults to HTTP 403.
	PermissionDenied Kind = "permission_denied"
)

// Arithmetic / runtime panic kinds
//
// These cover the runtime error conditions the wrapper recovers from panics.
const (
	// DivisionByZero indicates an integer division or modulo by zero
	// recovered from a runtime panic.
	//
	// Defaults to HTTP 400.
	DivisionByZero Kind = "division_by_zero"

	// OutOfRange indicates an index or slice bounds violation recovered
	// from a runtime panic.
	//
	// Defaults to HTTP 400.
	OutOfRange Kind = "out_of_range"

	// NilDereference indicates a nil pointer dereference recovered from a
	// runtime panic.
	//
	// Defaults to HTTP 500.
	NilDereference Kind = "nil_dereference"

	// Panic indicates a non-classified panic recovered at the wrapper
	// boundary.
	//
	// Defaults to HTTP 500.
	Panic Kind = "panic"
)
