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
	"strings"
	"sync"
	"testing"
)

func namedFunc(a, b int) int { return a + b }

func TestResolver_FromFunc_DerivesPackageChannel(t *testing.T) {
	r := NewResolver()
	c := r.FromFunc(namedFunc)

	if c == Unknown {
		t.Fatalf("FromFunc resolved to Unknown for a named function")
	}
	if !strings.HasSuffix(string(c), ".channel") {
		t.Fatalf("FromFunc = %q, want channel ending in the defining package name", c)
	}
	if err := Validate(c); err != nil {
		t.Fatalf("derived channel %q is not canonical: %v", c, err)
	}
}

func TestResolver_FromFunc_Deterministic(t *testing.T) {
	r := NewResolver()
	first := r.FromFunc(namedFunc)
	second := r.FromFunc(namedFunc)
	if first != second {
		t.Fatalf("same function resolved to different channels: %q vs %q", first, second)
	}

	// A second resolver derives the same name from scratch.
	other := NewResolver().FromFunc(namedFunc)
	if other != first {
		t.Fatalf("fresh resolver disagreed: %q vs %q", other, first)
	}
}

func TestResolver_FromFunc_Fallbacks(t *testing.T) {
	r := NewResolver()

	if c := r.FromFunc(nil); c != Unknown {
		t.Fatalf("FromFunc(nil) = %q, want Unknown", c)
	}
	if c := r.FromFunc(42); c != Unknown {
		t.Fatalf("FromFunc(non-func) = %q, want Unknown", c)
	}
	var nilFn func()
	if c := r.FromFunc(nilFn); c != Unknown {
		t.Fatalf("FromFunc(nil func) = %q, want Unknown", c)
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver()

	if c := r.Resolve("myapp/storage/pg"); c != Channel("myapp.storage.pg") {
		t.Fatalf("Resolve = %q, want %q", c, "myapp.storage.pg")
	}

	// cached: same answer second time
	if c := r.Resolve("myapp/storage/pg"); c != Channel("myapp.storage.pg") {
		t.Fatalf("cached Resolve = %q, want %q", c, "myapp.storage.pg")
	}

	// unresolvable context falls back to the sentinel, never empty
	if c := r.Resolve(""); c != Unknown {
		t.Fatalf("Resolve(empty) = %q, want Unknown", c)
	}
	if c := r.Resolve("1bad context"); c != Unknown {
		t.Fatalf("Resolve(invalid) = %q, want Unknown", c)
	}
}

func TestResolver_ConcurrentAccess(t *testing.T) {
	r := NewResolver()
	var wg sync.WaitGroup
	results := make([]Channel, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.FromFunc(namedFunc)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("concurrent FromFunc disagreed: %q vs %q", results[i], results[0])
		}
	}
}

func TestDefault_SharedInstance(t *testing.T) {
	if Default() != Default() {
		t.Fatalf("Default must return one shared resolver")
	}
}

func TestFuncName(t *testing.T) {
	name := FuncName(namedFunc)
	if name != "namedFunc" {
		t.Fatalf("FuncName = %q, want %q", name, "namedFunc")
	}
	if FuncName(nil) != string(Unknown) {
		t.Fatalf("FuncName(nil) must fall back to the sentinel")
	}
}

func TestPackagePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"oguild.dev/police/httpx.Middleware.func1", "oguild.dev/police/httpx"},
		{"main.run", "main"},
		{"main", "main"},
	}
	for _, tt := range tests {
		if got := packagePath(tt.in); got != tt.want {
			t.Fatalf("packagePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
