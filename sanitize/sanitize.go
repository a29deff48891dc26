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

package sanitize

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
)

const (
	// DefaultToken replaces the value of every sensitive field.
	DefaultToken = "***"

	// MaxDepth bounds the recursion over nested containers. Anything nested
	// deeper is replaced by TruncationMarker instead of being traversed —
	// this also terminates cyclic structures instead of spinning forever.
	MaxDepth = 50

	// TruncationMarker replaces subtrees that exceed MaxDepth.
	TruncationMarker = "[TRUNCATED]"

	// maxPatternLength rejects pathological value patterns up front.
	maxPatternLength = 200
)

// Rules is the process-wide sanitization configuration.
//
// Fields are matched case-insensitively as substrings against mapping keys:
// a rule "token" redacts "token", "Token" and "access_token" alike.
// Patterns are regular expressions matched against string VALUES, catching
// secrets that hide under innocent keys ("msg": "bearer eyJ...").
type Rules struct {
	Fields   []string `koanf:"fields"`
	Patterns []string `koanf:"patterns"`
	Token    string   `koanf:"token"`
}

// DefaultRules returns the built-in rule set. The field list follows the
// usual suspects for credentials; the patterns catch bearer tokens and
// api-key assignments embedded in free-form strings.
func DefaultRules() Rules {
	return Rules{
		Fields: []string{
			"password", "passwd", "secret", "token", "api_key", "apikey",
			"authorization", "bearer", "credential", "private_key",
		},
		Patterns: []string{
			`(?i)bearer\s+\S+`,
			`(?i)api[_-]?key[=:]\s*\S+`,
		},
		Token: DefaultToken,
	}
}

// Sanitizer redacts sensitive fields from arbitrary nested data.
//
// A Sanitizer is immutable after construction and safe for concurrent use.
// Sanitize never mutates its input: containers are deep-copied, scalars pass
// through unchanged.
type Sanitizer struct {
	fields   []string
	patterns []*regexp.Regexp
	token    string
}

// New compiles the rules into a Sanitizer. It fails fast on an invalid or
// oversized value pattern, mirroring how the logging layer treats redaction
// config.
func New(rules Rules) (*Sanitizer, error) {
	token := rules.Token
	if token == "" {
		token = DefaultToken
	}

	fields := make([]string, 0, len(rules.Fields))
	for _, f := range rules.Fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			fields = append(fields, f)
		}
	}

	patterns := make([]*regexp.Regexp, 0, len(rules.Patterns))
	for _, p := range rules.Patterns {
		if len(p) > maxPatternLength {
			return nil, fmt.Errorf("police: sanitize pattern too long (max %d chars): %q", maxPatternLength, p)
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("police: invalid sanitize pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}

	return &Sanitizer{fields: fields, patterns: patterns, token: token}, nil
}

// MustNew is the panic-on-error variant of New, for default rule sets known
// to be valid at compile time.
func MustNew(rules Rules) *Sanitizer {
	s, err := New(rules)
	if err != nil {
		panic(err)
	}
	return s
}

var (
	defaultSanitizer     *Sanitizer
	defaultSanitizerOnce sync.Once
)

// Default returns the process-wide Sanitizer built from DefaultRules,
// created lazily on first use. Concurrent first access is guarded; all
// later reads are lock-free.
func Default() *Sanitizer {
	defaultSanitizerOnce.Do(func() {
		defaultSanitizer = MustNew(DefaultRules())
	})
	return defaultSanitizer
}

// Token returns the redaction token this sanitizer substitutes for
// sensitive values.
func (s *Sanitizer) Token() string { return s.token }

// Sanitize returns a redacted copy of v.
//
// Mappings are traversed recursively: a key matching a sensitive-field rule
// has its value replaced by the token regardless of type or nesting depth.
// Sequences are traversed element-wise. Strings matching a value pattern are
// replaced by the token. Other scalars pass through unchanged, as does nil.
//
// The output is structurally isomorphic to the input except for redacted
// leaves; the input is never mutated. Subtrees nested deeper than MaxDepth
// come back as TruncationMarker.
//
// Sanitize is idempotent: sanitizing already-sanitized data is a no-op.
func (s *Sanitizer) Sanitize(v any) any {
	return s.walk(v, 0)
}

func (s *Sanitizer) walk(v any, depth int) any {
	if v == nil {
		return nil
	}
	if depth > MaxDepth {
		return TruncationMarker
	}

	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if s.sensitiveKey(k) {
				out[k] = s.token
				continue
			}
			out[k] = s.walk(val, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = s.walk(val, depth+1)
		}
		return out
	case string:
		return s.redactString(t)
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, complex64, complex128:
		return t
	}

	return s.walkReflect(reflect.ValueOf(v), depth)
}

// walkReflect covers container shapes outside the JSON-native fast path:
// typed maps, typed slices, structs and pointers. The copy comes back in
// JSON-native shape (map[string]any / []any) which is what the envelope and
// the log sink serialize anyway.
func (s *Sanitizer) walkReflect(rv reflect.Value, depth int) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return s.walk(rv.Elem().Interface(), depth)

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			// Non-string keys cannot carry field rules; copy values only.
			out := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				out[fmt.Sprint(iter.Key().Interface())] = s.walk(iter.Value().Interface(), depth+1)
			}
			return out
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			if s.sensitiveKey(k) {
				out[k] = s.token
				continue
			}
			out[k] = s.walk(iter.Value().Interface(), depth+1)
		}
		return out

	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = s.walk(rv.Index(i).Interface(), depth+1)
		}
		return out

	case reflect.Struct:
		rt := rv.Type()
		out := make(map[string]any, rt.NumField())
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("json"); ok {
				if tagName, _, _ := strings.Cut(tag, ","); tagName != "" && tagName != "-" {
					name = tagName
				}
			}
			if s.sensitiveKey(name) {
				out[name] = s.token
				continue
			}
			out[name] = s.walk(rv.Field(i).Interface(), depth+1)
		}
		return out
	}

	// Opaque leaf (funcs, channels, ...): render as text so the result
	// stays serializable.
	return fmt.Sprint(rv.Interface())
}

// SensitiveKey reports whether the key matches any configured field rule.
// The log sink uses this to redact fields at the encoding boundary without
// constructing a mapping around them.
func (s *Sanitizer) SensitiveKey(key string) bool {
	return s.sensitiveKey(key)
}

// sensitiveKey reports whether the key matches any configured field rule,
// case-insensitively, by exact or substring match.
func (s *Sanitizer) sensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, f := range s.fields {
		if strings.Contains(k, f) {
			return true
		}
	}
	return false
}

// redactString replaces the whole string with the token when any value
// pattern matches. Token-valued strings pass straight through, which is
// what makes Sanitize idempotent.
func (s *Sanitizer) redactString(v string) string {
	if v == s.token {
		return v
	}
	for _, re := range s.patterns {
		if re.MatchString(v) {
			return s.token
		}
	}
	return v
}
