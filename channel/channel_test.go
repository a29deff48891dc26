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
	"encoding"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim+lower", "  MyApp.Storage.PG  ", "myapp.storage.pg"},
		{"slash to dot", "myapp/storage/pg", "myapp.storage.pg"},
		{"dash to underscore", "myapp.rate-limiter", "myapp.rate_limiter"},
		{"package path", "oguild.dev/police/httpx", "oguild.dev.police.httpx"},
		{"repeated dots collapsed", "myapp..storage", "myapp.storage"},
		{"leading and trailing dots trimmed", ".myapp.storage.", "myapp.storage"},
		{"mixed", "  API/JWT-VERIFY  ", "api.jwt_verify"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Channel
	}{
		{"simple", "myapp.storage.pg", Channel("myapp.storage.pg")},
		{"single segment", "unknown", Unknown},
		{"package path", "oguild.dev/police/httpx", Channel("oguild.dev.police.httpx")},
		{"with dash", "myapp/rate-limiter", Channel("myapp.rate_limiter")},
		{"empty is ok", "", Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_InvalidFormat(t *testing.T) {
	tests := []string{
		"1pkg.handlers",    // starts with digit
		"my app.storage",   // inner space
		"myapp.2nd",        // segment starts with digit
		"a.b.c.d.e.f.g.h.i", // nine segments
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) = %q, want error", in, got)
			}
			if got != Empty {
				t.Fatalf("Parse(%q) on error must return Empty, got %q", in, got)
			}
			if err != ErrChannelInvalidFormat && err != ErrChannelInvalidLength {
				t.Fatalf("Parse(%q) error = %v, want format or length error", in, err)
			}
		})
	}
}

func TestParse_InvalidLength(t *testing.T) {
	long := "myapp"
	for len(long) <= MaxLength {
		long += ".verylongsegment"
	}

	got, err := Parse(long)
	if err == nil {
		t.Fatalf("Parse(long) = %q, want error", got)
	}
	if err != ErrChannelInvalidLength {
		t.Fatalf("Parse(long) error = %v, want ErrChannelInvalidLength", err)
	}
}

func TestValidate(t *testing.T) {
	// empty is valid (optional)
	if err := Validate(Empty); err != nil {
		t.Fatalf("Validate(Empty) unexpected error: %v", err)
	}

	valid := []Channel{
		"oguild.dev.police",
		"myapp.storage.pg",
		"myapp.api.handlers",
		Unknown,
	}
	for _, c := range valid {
		if err := Validate(c); err != nil {
			t.Fatalf("Validate(%q) unexpected error: %v", c, err)
		}
	}

	invalid := []Channel{
		"myapp..storage",
		"1bad.start",
		"Upper.case",
	}
	for _, c := range invalid {
		if err := Validate(c); err == nil {
			t.Fatalf("Validate(%q) expected error", c)
		}
	}
}

func TestChannel_HasPrefix(t *testing.T) {
	c := Channel("myapp.storage.pg")
	if !c.HasPrefix("myapp.storage") {
		t.Fatalf("expected %q to have prefix %q", c, "myapp.storage")
	}
	if !c.HasPrefix(c) {
		t.Fatalf("channel must be its own prefix")
	}
	if c.HasPrefix("myapp.store") {
		t.Fatalf("%q must not match partial-segment prefix %q", c, "myapp.store")
	}
}

func TestMustParse_Success(t *testing.T) {
	c := MustParse("myapp.api.handlers")
	if c != Channel("myapp.api.handlers") {
		t.Fatalf("MustParse = %q, want %q", c, "myapp.api.handlers")
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse must panic on invalid channel")
		}
	}()
	_ = MustParse("1bad.start")
}

func TestMustParse_PanicsOnEmpty(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse must panic on empty channel")
		}
	}()
	_ = MustParse("")
}

func TestChannel_MarshalText(t *testing.T) {
	c := Channel("myapp.storage.pg")
	text, err := c.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText unexpected error: %v", err)
	}
	if string(text) != "myapp.storage.pg" {
		t.Fatalf("MarshalText = %q, want %q", string(text), "myapp.storage.pg")
	}

	// empty channel should marshal to empty slice
	var empty Channel = Empty
	text, err = empty.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText on empty unexpected error: %v", err)
	}
	if len(text) != 0 {
		t.Fatalf("MarshalText on empty = %q, want empty", string(text))
	}

	// invalid channel should fail
	invalid := Channel("Bad.Channel")
	if _, err := invalid.MarshalText(); err == nil {
		t.Fatalf("MarshalText on invalid channel must return error")
	}
}

func TestChannel_UnmarshalText(t *testing.T) {
	var c Channel
	if err := c.UnmarshalText([]byte("  MYAPP/RATE-LIMITER  ")); err != nil {
		t.Fatalf("UnmarshalText unexpected error: %v", err)
	}
	if c != Channel("myapp.rate_limiter") {
		t.Fatalf("UnmarshalText = %q, want %q", c, "myapp.rate_limiter")
	}

	// empty → Empty
	var c2 Channel
	if err := c2.UnmarshalText([]byte("   ")); err != nil {
		t.Fatalf("UnmarshalText(empty) unexpected error: %v", err)
	}
	if c2 != Empty {
		t.Fatalf("UnmarshalText(empty) = %q, want Empty", c2)
	}

	// invalid
	var bad Channel
	if err := bad.UnmarshalText([]byte("1bad/start")); err == nil {
		t.Fatalf("UnmarshalText expected error for invalid input")
	}
}

func TestChannel_ImplementsTextInterfaces(t *testing.T) {
	var _ encoding.TextMarshaler = (*Channel)(nil)
	var _ encoding.TextUnmarshaler = (*Channel)(nil)
}
