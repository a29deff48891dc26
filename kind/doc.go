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

// Package kind provides parsing, normalization, validation and classification
// of failure kinds.
//
// A "kind" is the top-level, machine-readable category of a captured failure,
// such as "invalid", "not_found", "division_by_zero" or "internal". Kinds are
// meant to be:
//
//   - short and stable;
//   - lowercased;
//   - underscore-separated (not dash- or dot-separated);
//   - suitable for use in JSON payloads and the Error envelope.
//
// IMPORTANT: Empty kinds ("") are NOT allowed. Every Error envelope MUST
// carry a non-empty kind.
//
// Besides the canonical representation, the package owns Classify and
// ClassifyPanic, which map arbitrary Go errors and recovered panic values to
// canonical kinds. This is the single place where "what category of failure
// was that" is decided.
package kind
