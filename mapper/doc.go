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

// Package mapper provides deterministic, immutable mappings from logical
// failure kinds (oguild.dev/police/kind) and logging channels
// (oguild.dev/police/channel) to transport-level statuses for HTTP and gRPC.
//
// # Overview
//
// An intercepted failure is expressed in two parts:
//
//  1. a high-level Kind (e.g. kind.Unavailable, kind.DivisionByZero),
//  2. the Channel it was reported on (e.g. "oguild.storage.pg").
//
// Transport layers (HTTP handlers, REST gateways, gRPC servers) need to turn
// this pair into concrete status codes. Package mapper does that in a way that
// is:
//
//   - immutable — a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable — callers can change library defaults per Kind;
//   - prefix-aware — callers can add fine-grained rules for specific channels;
//   - dual — HTTP and gRPC are resolved with the same logic.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the Kind;
//  2. per-Kind longest-prefix-match (LPM) on the Channel;
//  3. per-Kind default (library or user-adjusted);
//  4. global fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware: channels are treated as "."-separated
// segments, and "*" matches exactly one segment. For example:
//
//	WithHTTPPrefix(kind.Unavailable, "oguild.storage", http.StatusServiceUnavailable)
//	WithHTTPPrefix(kind.Unavailable, "oguild.*.connect", http.StatusServiceUnavailable)
//
// The more specific prefix wins.
//
// # Library defaults
//
// The package ships with sensible defaults for the built-in kinds, mapping them
// to standard net/http constants and grpc/codes values (e.g. kind.Invalid -> 400 /
// InvalidArgument, kind.Unauthenticated -> 401 / Unauthenticated, kind.Panic
// -> 500 / Internal). These can be adjusted at build time.
//
// # Building a mapper
//
// A Mapper is created once and reused:
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride(kind.Canceled, 499),            // nginx-style
//	    mapper.WithHTTPPrefix(kind.Unavailable, "oguild.storage", 503),
//	)
//	if err != nil {
//	    // invalid prefix, etc.
//	}
//
//	st := m.Status(kind.Unavailable, channel.MustParse("oguild.storage.connect"))
//	// st.HTTP == 503, st.GRPC == codes.Unavailable
//
// # Diagnostics
//
// For debugging and tests, Mapper.Explain returns a human-readable trace of how
// a particular (kind, channel) was resolved, including which tier matched and,
// for prefixes, which pattern was used.
//
// This is intended for inspection and logging, not for stable machine parsing.
//
// # Immutability
//
// All user-provided inputs are copied during New. After construction, the Mapper
// does not observe further changes to the caller's maps or slices. This makes it
// safe to share a single instance across handlers, goroutines, and requests.
package mapper
