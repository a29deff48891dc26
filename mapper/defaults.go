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

package mapper

import (
	"net/http"

	"google.golang.org/grpc/codes"

	"oguild.dev/police/kind"
)

// defaultHTTP defines the library's built-in HTTP mappings for well-known failure kinds.
// These are only defaults: callers are expected to wrap or override them at the boundary
// where HTTP is actually produced (REST gateway, HTTP handler, etc.).
//
// The intent is to stay close to common REST conventions while still reflecting
// what the interception layer knows about the failure (panic, timeout, overload, etc.).
var defaultHTTP = map[kind.Kind]int{
	// 5xx — server / dependency / transient issues.
	kind.Internal:         http.StatusInternalServerError, // Generic internal failure; do not expose internal details.
	kind.NilDereference:   http.StatusInternalServerError, // Intercepted nil-pointer panic; always a server bug.
	kind.Panic:            http.StatusInternalServerError, // Intercepted panic of unknown shape.
	kind.Unavailable:      http.StatusServiceUnavailable,  // Service or a required dependency is temporarily unreachable.
	kind.Overloaded:       http.StatusServiceUnavailable,  // Service cannot accept more requests right now.
	kind.DependencyFailed: http.StatusBadGateway,          // Upstream/downstream dependency failed in a way visible to the client.
	kind.Timeout:          http.StatusGatewayTimeout,      // Operation exceeded the time budget.
	// Note: 499 is a non-standard but widely used status (nginx) for "client closed request".
	// net/http has no constant for it; integrators may switch to 408 via WithHTTPDefault.
	kind.Canceled: 499,

	// 4xx — client/protocol/resource issues.
	kind.Invalid:        http.StatusBadRequest, // Malformed input, validation errors, contract violation.
	kind.Missing:        http.StatusBadRequest, // Required field/parameter/resource reference is missing.
	kind.Unsupported:    http.StatusBadRequest, // Known but unsupported operation/content/option.
	kind.DivisionByZero: http.StatusBadRequest, // Intercepted divide-by-zero; the operands came from the caller.
	kind.OutOfRange:     http.StatusBadRequest, // Index/slice bounds violation on caller-supplied data.

	kind.NotFound: http.StatusNotFound, // Target resource does not exist (or is not visible to the caller).
	kind.Expired:  http.StatusGone,     // Resource or token lifetime is over.

	// Conflicts and concurrency.
	kind.AlreadyExists: http.StatusConflict, // Resource creation clash — it already exists.
	kind.Conflict:      http.StatusConflict, // General conflicting update/action.

	// AuthN / AuthZ.
	kind.Unauthenticated:  http.StatusUnauthorized, // No/invalid credentials — caller must authenticate.
	kind.PermissionDenied: http.StatusForbidden,    // Caller is authenticated but not allowed to perform the action.

	// Rate/quotas.
	kind.RateLimited: http.StatusTooManyRequests, // Client hit a rate limit.
}

// defaultGRPC defines the library's built-in gRPC mappings for well-known failure kinds.
// These values are chosen to align with canonical gRPC status codes while still preserving
// the higher-level meaning carried by the kind. As with HTTP, callers may override these
// at the transport edge if a different mapping policy is required.
var defaultGRPC = map[kind.Kind]codes.Code{
	// Internal / server-side / unexpected.
	kind.Internal:       codes.Internal,
	kind.NilDereference: codes.Internal, // Nil-pointer panic is never the caller's fault.
	kind.Panic:          codes.Internal, // Unclassified panic.

	// Input / preconditions / protocol.
	kind.Invalid:          codes.InvalidArgument,    // Bad input shape or validation errors.
	kind.Missing:          codes.InvalidArgument,    // Required field or parameter missing.
	kind.Unsupported:      codes.InvalidArgument,    // Unsupported option/content.
	kind.DivisionByZero:   codes.InvalidArgument,    // Zero divisor supplied by the caller.
	kind.OutOfRange:       codes.OutOfRange,         // Bounds violation; gRPC has a dedicated code for this.
	kind.DependencyFailed: codes.FailedPrecondition, // Dependency cannot satisfy the request right now.
	kind.Expired:          codes.FailedPrecondition, // Token/resource expired.

	// Resource state.
	kind.NotFound: codes.NotFound, // Resource does not exist (or not visible).

	// Conflicts / concurrency.
	kind.AlreadyExists: codes.AlreadyExists, // Create on existing resource.
	kind.Conflict:      codes.Aborted,       // General conflict (concurrent updates, etc.).

	// AuthN / AuthZ.
	kind.Unauthenticated:  codes.Unauthenticated,
	kind.PermissionDenied: codes.PermissionDenied,

	// Availability / load.
	kind.Unavailable: codes.Unavailable, // Service or dependency temporarily unavailable.
	kind.Overloaded:  codes.Unavailable, // Backpressure / resource exhaustion on server.

	// Time / cancellation.
	kind.Timeout:  codes.DeadlineExceeded, // Time budget exceeded.
	kind.Canceled: codes.Canceled,         // Caller canceled or context expired upstream.

	// Rate/quotas.
	kind.RateLimited: codes.ResourceExhausted, // Rate limit hit.
}
