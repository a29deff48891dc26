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

import (
	"fmt"
	"sort"
)

// Detail is a single flattened key/value pair of failure context. It is a
// *view type* — small, transport-friendly, and suitable for JSON or proto
// metadata, where nested maps are not representable.
//
// We keep it in apis so that different parts of the system (adapters,
// loggers) can speak about "details" without importing the concrete failure
// implementation.
type Detail struct {
	// Key is the detail name, e.g. "booking_id" or "a".
	Key string `json:"key"`

	// Value is the detail rendered as text. Non-string values are rendered
	// with their default formatting.
	Value string `json:"value"`
}

// FlattenDetails renders a details map as a sorted slice of Details.
//
// The order is deterministic (lexicographic by key), which is what makes
// envelope projections byte-stable across runs and suitable for gRPC
// metadata. Nil and empty maps return nil.
func FlattenDetails(details map[string]any) []Detail {
	if len(details) == 0 {
		return nil
	}
	out := make([]Detail, 0, len(details))
	for k, v := range details {
		out = append(out, Detail{Key: k, Value: fmt.Sprint(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
