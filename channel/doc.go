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

// Package channel defines log channel names and their resolution from
// calling context.
//
// Where kind answers "what category of failure is this?" (invalid,
// not_found, division_by_zero, ...), Channel answers "which component's
// logger should carry it?", e.g.:
//
//   - "oguild.dev.police.httpx"
//   - "myapp.storage.pg"
//
// Channels are derived from the package path of the wrapped function at wrap
// time — a deliberate narrowing of per-call stack inspection: derivation is
// deterministic, happens once, and is cached, so repeated calls from the
// same context reuse one resolved name. When nothing can be derived the
// resolver falls back to the Unknown sentinel rather than an empty name.
package channel
