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
	"reflect"
	"runtime"
	"strings"
	"sync"
)

// Resolver derives log channels from calling context and caches the results.
//
// Derivation happens once per wrapped function (at wrap time, not per
// invocation); afterwards every lookup is a lock-free cache hit. Identical
// context always resolves to the same channel within a process lifetime.
//
// A Resolver never returns an empty channel: when context cannot be
// determined it falls back to the Unknown sentinel, which is observable in
// logs and testable.
type Resolver struct {
	// byFunc caches channels per function entry point (code pointer).
	byFunc sync.Map // uintptr -> Channel

	// byName caches channels per raw context string.
	byName sync.Map // string -> Channel
}

// NewResolver returns an empty resolver. Most callers should use Default
// instead; separate resolvers only matter when tests need isolated caches.
func NewResolver() *Resolver {
	return &Resolver{}
}

var (
	defaultResolver     *Resolver
	defaultResolverOnce sync.Once
)

// Default returns the process-wide resolver, created lazily on first use.
// Concurrent first access is guarded; all subsequent reads share one
// instance and its cache.
func Default() *Resolver {
	defaultResolverOnce.Do(func() {
		defaultResolver = NewResolver()
	})
	return defaultResolver
}

// FromFunc derives the channel for fn from the package path of its defining
// location, e.g. a function defined in "oguild.dev/police/httpx" resolves to
// "oguild.dev.police.httpx".
//
// fn must be a non-nil function value; anything else resolves to Unknown.
// The result is cached by the function's code pointer, so closures created
// at the same source location share one channel.
func (r *Resolver) FromFunc(fn any) Channel {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Unknown
	}

	pc := v.Pointer()
	if cached, ok := r.byFunc.Load(pc); ok {
		return cached.(Channel)
	}

	c := Unknown
	if f := runtime.FuncForPC(pc); f != nil {
		c = r.Resolve(packagePath(f.Name()))
	}
	r.byFunc.Store(pc, c)
	return c
}

// Resolve normalizes an explicit context string (a package path, a module
// identifier, a dotted name) into a channel, caching the result.
//
// Invalid or empty context falls back to Unknown — never an error and never
// an empty channel.
func (r *Resolver) Resolve(context string) Channel {
	if cached, ok := r.byName.Load(context); ok {
		return cached.(Channel)
	}

	c, err := Parse(context)
	if err != nil || c == Empty {
		c = Unknown
	}
	r.byName.Store(context, c)
	return c
}

// FuncName returns the bare name of fn (without package path), e.g.
// "Divide" or "TestWrap.func1". Returns "unknown" for non-function values.
// Used by the wrapper when assembling failure details.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return string(Unknown)
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return string(Unknown)
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// packagePath cuts the package path out of a runtime function name.
//
//	"oguild.dev/police/httpx.Middleware.func1" -> "oguild.dev/police/httpx"
//	"main.run"                                 -> "main"
func packagePath(fullName string) string {
	slash := strings.LastIndex(fullName, "/")
	dot := strings.Index(fullName[slash+1:], ".")
	if dot < 0 {
		return fullName
	}
	return fullName[:slash+1+dot]
}
