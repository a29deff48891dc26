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

// Package logx provides the structured log sink for the interception layer.
//
// A Logger wraps Zap with a redacting encoder so sensitive values cannot
// reach the output even when a caller logs them directly. A Registry hands
// out per-channel Handles: every channel gets exactly one cached handle,
// named after the channel, and all emissions for that channel flow through
// it. TestLogger records entries in memory for assertions.
package logx
