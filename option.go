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

package police

import (
	"oguild.dev/police/channel"
	"oguild.dev/police/logx"
	"oguild.dev/police/sanitize"
)

// FailureOption is a functional option for constructing or transforming a
// Failure. It always takes a *Failure and returns a (possibly new) *Failure.
type FailureOption func(*Failure) *Failure

// WithDetailOption adds a single detail key/value on construction.
// Intended to be used with F(...).
func WithDetailOption(k string, v any) FailureOption {
	return func(f *Failure) *Failure {
		return f.WithDetail(k, v)
	}
}

// WithDetailsOption merges multiple detail key/values on construction.
// Intended to be used with F(...).
func WithDetailsOption(kv map[string]any) FailureOption {
	return func(f *Failure) *Failure {
		return f.WithDetails(kv)
	}
}

// WithCauseOption attaches a cause on construction.
// Intended to be used with F(...).
func WithCauseOption(err error) FailureOption {
	return func(f *Failure) *Failure {
		return f.WithCause(err)
	}
}

// SuccessLevel selects what a wrapper emits when the wrapped function
// succeeds. The default is silent.
type SuccessLevel int

const (
	// SuccessSilent emits nothing on success.
	SuccessSilent SuccessLevel = iota

	// SuccessDebug emits one debug entry per successful invocation.
	SuccessDebug

	// SuccessInfo emits one info entry per successful invocation.
	SuccessInfo
)

// wrapConfig is the per-wrapper configuration assembled from Options at
// wrap time and immutable afterwards.
type wrapConfig struct {
	channel   channel.Channel
	resolver  *channel.Resolver
	sanitizer *sanitize.Sanitizer
	registry  *logx.Registry
	reraise   bool
	onSuccess SuccessLevel
}

func newWrapConfig(opts []Option) *wrapConfig {
	cfg := &wrapConfig{
		resolver:  channel.Default(),
		sanitizer: sanitize.Default(),
		registry:  logx.DefaultRegistry(),
		onSuccess: SuccessSilent,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a wrapper at wrap time.
type Option func(*wrapConfig)

// WithChannel pins the wrapper to an explicit channel instead of deriving
// one from the wrapped function's package path.
func WithChannel(c channel.Channel) Option {
	return func(cfg *wrapConfig) {
		cfg.channel = c
	}
}

// WithResolver substitutes the channel resolver. Mostly useful in tests that
// need an isolated resolution cache.
func WithResolver(r *channel.Resolver) Option {
	return func(cfg *wrapConfig) {
		if r != nil {
			cfg.resolver = r
		}
	}
}

// WithSanitizer substitutes the sanitizer applied to failure details before
// logging and enveloping.
func WithSanitizer(s *sanitize.Sanitizer) Option {
	return func(cfg *wrapConfig) {
		if s != nil {
			cfg.sanitizer = s
		}
	}
}

// WithRegistry substitutes the log registry the wrapper emits through.
// Tests pass a registry over a TestLogger to observe emissions.
func WithRegistry(r *logx.Registry) Option {
	return func(cfg *wrapConfig) {
		if r != nil {
			cfg.registry = r
		}
	}
}

// WithReraise switches the wrapper from swallow-and-return to
// log-and-reraise: the failure is still logged and enveloped exactly once,
// but the call also returns it as a non-nil error.
func WithReraise() Option {
	return func(cfg *wrapConfig) {
		cfg.reraise = true
	}
}

// WithSuccessLevel selects the emission level for successful invocations.
func WithSuccessLevel(l SuccessLevel) Option {
	return func(cfg *wrapConfig) {
		cfg.onSuccess = l
	}
}
