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
	"oguild.dev/police/kind"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithHTTPDefault sets or replaces the library-level default HTTP status
// for the given failure kind. This affects the value used when
// no override and no per-channel prefix rule match.
func WithHTTPDefault(k kind.Kind, http int) Option {
	return func(b *builder) { b.httpDefaults[k] = http }
}

// WithGRPCDefault sets or replaces the library-level default gRPC status
// for the given failure kind. This affects the value used when
// no override and no per-channel prefix rule match.
func WithGRPCDefault(k kind.Kind, grpc int) Option {
	return func(b *builder) { b.grpcDefaults[k] = grpc }
}

// WithHTTPOverride registers an exact HTTP override for the given kind.
// Overrides are the highest tier: they win over prefix rules and defaults
// for every channel.
func WithHTTPOverride(k kind.Kind, http int) Option {
	return func(b *builder) { b.httpOverride[k] = http }
}

// WithGRPCOverride registers an exact gRPC override for the given kind.
// Overrides are the highest tier: they win over prefix rules and defaults
// for every channel.
func WithGRPCOverride(k kind.Kind, grpc int) Option {
	return func(b *builder) { b.grpcOverride[k] = grpc }
}

// WithHTTPPrefix adds an HTTP longest-prefix-match rule for the given kind.
// The rule is evaluated against the channel (dot-separated). A more specific
// prefix wins. Use "*" to match a single segment.
func WithHTTPPrefix(k kind.Kind, prefix string, http int) Option {
	return func(b *builder) { b.httpPrefixes[k] = append(b.httpPrefixes[k], prefixRule{prefix, http}) }
}

// WithGRPCPrefix adds a gRPC longest-prefix-match rule for the given kind.
// The rule is evaluated against the channel (dot-separated). A more specific
// prefix wins. Use "*" to match a single segment.
func WithGRPCPrefix(k kind.Kind, prefix string, grpc int) Option {
	return func(b *builder) { b.grpcPrefixes[k] = append(b.grpcPrefixes[k], prefixRule{prefix, grpc}) }
}
