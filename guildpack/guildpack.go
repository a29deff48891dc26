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

// Package guildpack is the compatibility import path for the interception
// layer. It re-exports the police package one-to-one: every type is an alias
// and every function delegates, so values created through either path are
// interchangeable and serialize identically.
//
// Projects that standardized on the guildpack name keep importing it;
// new code should import oguild.dev/police directly.
package guildpack

import (
	"oguild.dev/police"
	"oguild.dev/police/channel"
	"oguild.dev/police/kind"
	"oguild.dev/police/logx"
	"oguild.dev/police/sanitize"
)

// Aliases for the envelope and failure surface. These are true type aliases:
// a guildpack.Envelope IS a police.Envelope.
type (
	Envelope      = police.Envelope
	Failure       = police.Failure
	FailureOption = police.FailureOption
	Option        = police.Option
	SuccessLevel  = police.SuccessLevel
)

// Func and Wrapped mirror the wrappable function shapes.
type (
	Func[I, O any]    = police.Func[I, O]
	Wrapped[I, O any] = police.Wrapped[I, O]
)

// Status discriminants, re-exported for switch statements on the wire field.
const (
	StatusOK    = police.StatusOK
	StatusError = police.StatusError
)

// Success emission levels.
const (
	SuccessSilent = police.SuccessSilent
	SuccessDebug  = police.SuccessDebug
	SuccessInfo   = police.SuccessInfo
)

// Wrap builds the interception boundary around fn. See police.Wrap.
func Wrap[I, O any](fn Func[I, O], opts ...Option) Wrapped[I, O] {
	return police.Wrap(fn, opts...)
}

// F constructs a Failure. See police.F.
func F(k kind.Kind, msg string, opts ...FailureOption) *Failure {
	return police.F(k, msg, opts...)
}

// Ok boxes a successful return value. See police.Ok.
func Ok(value any) *Envelope { return police.Ok(value) }

// OkMsg boxes a successful return value with a message. See police.OkMsg.
func OkMsg(value any, msg string) *Envelope { return police.OkMsg(value, msg) }

// Err builds an error envelope directly. See police.Err.
func Err(k kind.Kind, msg string, details map[string]any) *Envelope {
	return police.Err(k, msg, details)
}

// FromFailure builds an error envelope from a Failure. See police.FromFailure.
func FromFailure(f *Failure) *Envelope { return police.FromFailure(f) }

// Sanitize redacts sensitive fields using the process-wide default rules.
func Sanitize(v any) any { return police.Sanitize(v) }

// Resolve returns the log handle for the channel derived from fn's defining
// package. See police.Resolve.
func Resolve(fn any) *logx.Handle { return police.Resolve(fn) }

// Failure construction options.
func WithDetailOption(k string, v any) FailureOption { return police.WithDetailOption(k, v) }

func WithDetailsOption(kv map[string]any) FailureOption { return police.WithDetailsOption(kv) }

func WithCauseOption(err error) FailureOption { return police.WithCauseOption(err) }

// Wrap-time options.
func WithChannel(c channel.Channel) Option       { return police.WithChannel(c) }
func WithResolver(r *channel.Resolver) Option    { return police.WithResolver(r) }
func WithSanitizer(s *sanitize.Sanitizer) Option { return police.WithSanitizer(s) }
func WithRegistry(r *logx.Registry) Option       { return police.WithRegistry(r) }
func WithReraise() Option                        { return police.WithReraise() }
func WithSuccessLevel(l SuccessLevel) Option     { return police.WithSuccessLevel(l) }
