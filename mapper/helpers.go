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
	"google.golang.org/grpc/codes"

	"oguild.dev/police/kind"
	"oguild.dev/police/mapper/internal/segmenttrie"
)

// freezeHTTPDefaults makes an immutable copy of the HTTP defaults map.
// Used when finalizing the mapper so later mutations to the builder
// (or caller-owned maps) cannot affect the mapper.
func freezeHTTPDefaults(src map[kind.Kind]int) map[kind.Kind]int {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[kind.Kind]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// freezeGRPCDefaults makes an immutable copy of the gRPC defaults map,
// converting builder-style int values into typed gRPC codes.
func freezeGRPCDefaults(src map[kind.Kind]int) map[kind.Kind]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[kind.Kind]codes.Code, len(src))
	for k, v := range src {
		dst[k] = codes.Code(v)
	}
	return dst
}

// freezeHTTPOverrides makes an immutable copy of the HTTP overrides map.
func freezeHTTPOverrides(src map[kind.Kind]int) map[kind.Kind]int {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[kind.Kind]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// freezeGRPCOverrides makes an immutable copy of the gRPC overrides map,
// converting ints into typed gRPC codes.
func freezeGRPCOverrides(src map[kind.Kind]int) map[kind.Kind]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[kind.Kind]codes.Code, len(src))
	for k, v := range src {
		dst[k] = codes.Code(v)
	}
	return dst
}

// freezeHTTPTrie makes a shallow copy of the per-kind HTTP tries.
// Each trie is considered immutable after build, so we only need to
// protect the top-level map.
func freezeHTTPTrie(src map[kind.Kind]*segmenttrie.Trie[int]) map[kind.Kind]*segmenttrie.Trie[int] {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[kind.Kind]*segmenttrie.Trie[int], len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// freezeGRPCTrie makes a shallow copy of the per-kind gRPC tries.
func freezeGRPCTrie(src map[kind.Kind]*segmenttrie.Trie[codes.Code]) map[kind.Kind]*segmenttrie.Trie[codes.Code] {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[kind.Kind]*segmenttrie.Trie[codes.Code], len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
