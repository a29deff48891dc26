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

package channel

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Channel is the canonical, validated name of a log channel.
//
// Channels are dot-separated hierarchical identifiers derived from the
// package path of the code that owns a wrapped function. Each segment names
// a module, package or component.
//
// Example valid channels:
//
//   - "oguild.dev.police"
//   - "myapp.storage.pg"
//   - "myapp.api.handlers"
//
// The intent is that log routing, filtering and per-channel level rules can
// match on these prefixes, the same way hierarchical logger names work in
// most logging systems.
type Channel string

// MinLength and MaxLength define the allowed length range for a canonical
// channel name.
//
// Channels may be longer than failure kinds because they carry full package
// paths converted to dotted form.
const (
	// MinLength is the minimum length for a non-empty channel. Single-rune
	// names carry no routing information, so they are rejected.
	MinLength = 2

	// MaxLength is the maximum length for a valid channel. 128 characters
	// covers deeply nested package paths.
	MaxLength = 128
)

const (
	// channelFmt is the canonical regular expression used to validate
	// channels.
	//
	// We accept 1 to 8 segments, dot-separated, each segment:
	//
	//   - starts with a lowercase ASCII letter [a-z]
	//   - continues with lowercase letters, digits, or underscore [a-z0-9_]*
	//
	// Examples that match:
	//
	//	"oguild.dev.police"
	//	"myapp.storage.pg"
	//	"unknown"
	//
	// Examples that DO NOT match:
	//
	//	"MyApp.storage"   (uppercase)
	//	"myapp/storage"   (slash)
	//	"myapp..storage"  (empty segment)
	//	"1pkg.handlers"   (digit first)
	channelFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,7}$`
)

var (
	// channelRe is the compiled regexp for the above pattern.
	channelRe = regexp.MustCompile(channelFmt)
)

var (
	// ErrChannelInvalidFormat is returned when a channel does not conform
	// to the expected format.
	ErrChannelInvalidFormat = errors.New("police: invalid channel format")
	// ErrChannelInvalidLength is returned when a channel is too short or too long.
	ErrChannelInvalidLength = errors.New("police: invalid channel length")
)

// Ensure Channel implements encoding.TextMarshaler / encoding.TextUnmarshaler.
var (
	_ encoding.TextMarshaler   = (*Channel)(nil)
	_ encoding.TextUnmarshaler = (*Channel)(nil)
)

// Unknown is the sentinel channel used when the calling context cannot be
// determined. Resolution NEVER produces an empty channel silently: callers
// that see Unknown in their logs know the resolver fell back.
const Unknown Channel = "unknown"

// Empty is the zero-value channel, meaning "not provided". The resolver
// replaces it with either a derived channel or Unknown before any logging
// happens.
const Empty Channel = ""

// Normalize takes an arbitrary string and tries to bring it closer to the
// canonical channel form.
//
// Conservative transformations only:
//
//   - trim spaces
//   - lower-case
//   - convert "/" to "." (package paths arrive slash-delimited)
//   - replace "-" with "_" (aligns with kind-style identifiers)
//   - collapse repeated dots and trim leading/trailing dots
//
// It does NOT guarantee validity — callers should still call Parse/Validate.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", ".")
	}
	s = strings.Trim(s, ".")
	return s
}

// Parse takes a user-provided string, normalizes it and validates it.
// On success it returns a canonical Channel value.
//
// Parse accepts the empty string and returns channel.Empty without error,
// leaving the fallback decision to the resolver.
func Parse(s string) (Channel, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Channel(s), nil
}

// MustParse is the panic-on-error variant of Parse. It is useful for
// declaring package-level channel constants in var blocks.
//
// NOTE: unlike Parse, MustParse does NOT allow the empty string — passing
// an empty string here is almost always a programmer error.
func MustParse(s string) Channel {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if c == Empty {
		panic("police: empty channel in MustParse")
	}
	return c
}

// Validate checks whether the provided Channel is in canonical form.
//
// The empty channel ("") is considered valid here because Channel is an
// optional input: the resolver supplies Unknown when nothing better exists.
func Validate(c Channel) error {
	if c == Empty {
		return nil
	}
	return validate(string(c))
}

// String returns the canonical string representation of the channel.
func (c Channel) String() string {
	return string(c)
}

// HasPrefix reports whether the channel equals prefix or lives under it in
// the dot hierarchy. "myapp.storage.pg" has prefix "myapp.storage" but not
// "myapp.store".
func (c Channel) HasPrefix(prefix Channel) bool {
	if c == prefix {
		return true
	}
	return strings.HasPrefix(string(c), string(prefix)+".")
}

// MarshalText implements encoding.TextMarshaler.
//
// The empty channel marshals to an empty slice so that encoders relying on
// TextMarshaler do not break on optional fields.
func (c Channel) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	if c == Empty {
		return []byte{}, nil
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
// An empty or whitespace-only input produces channel.Empty.
func (c *Channel) UnmarshalText(text []byte) error {
	s := string(bytes.TrimSpace(text))
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// validate is the internal helper that checks length and format.
func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrChannelInvalidLength
	}
	if !channelRe.MatchString(s) {
		return ErrChannelInvalidFormat
	}
	return nil
}
