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

// ErrorDescriptor is a flat, transport-friendly description of a known
// (kind, channel) pair.
//
// This type intentionally uses strings (not the internal Kind / Channel
// value types) so that it can live in the public "apis" layer and be used by
// adapters (HTTP, gRPC) and by user-defined registries.
//
// Implementations may choose to store a richer descriptor internally, but
// this shape is what the rest of the system can rely on.
type ErrorDescriptor struct {
	// Kind is the canonical failure kind, e.g. "invalid", "not_found",
	// "division_by_zero".
	//
	// Implementations SHOULD store only normalized, validated kinds here.
	Kind string `json:"kind"`

	// Channel is the logical channel the failure was emitted on, e.g.
	// "oguild.booking" or "unknown".
	//
	// It MAY be empty when the descriptor applies to the kind on every
	// channel. Implementations SHOULD store only normalized channels here.
	Channel string `json:"channel,omitempty"`

	// HTTPStatus is an optional HTTP status that should be used when this
	// (kind, channel) is exposed over HTTP. A value of 0 means "not
	// specified".
	HTTPStatus int `json:"http_status,omitempty"`

	// GRPCCode is an optional gRPC status code (as integer) that should be
	// used when this (kind, channel) is exposed over gRPC. A value of 0
	// means "not specified".
	GRPCCode int `json:"grpc_code,omitempty"`

	// Message is an optional human-friendly default message that can be used
	// when the failure instance itself did not provide one.
	Message string `json:"message,omitempty"`
}
