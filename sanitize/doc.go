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

// Package sanitize redacts sensitive fields from structured data before it
// is logged or returned.
//
// The wrapper routes every failure's details through a Sanitizer, so values
// under keys like "password" or "token" never reach a log sink or an Error
// envelope. Redaction is recursive, non-mutating (a redacted copy is
// returned), idempotent, and bounded by MaxDepth — cyclic structures come
// back truncated rather than hanging the failure path.
package sanitize
