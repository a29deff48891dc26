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
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"oguild.dev/police/channel"
	"oguild.dev/police/kind"
	"oguild.dev/police/logx"
	"oguild.dev/police/sanitize"
)

// Func is the shape of a wrappable function: one context, one input, one
// output, one error. Multi-argument functions bind their parameters into an
// input struct, which also gives every argument a name in the details map.
// Declared as an alias so that a Wrapped, whose underlying shape matches
// Func[I, *Envelope], can itself be passed back to Wrap.
type Func[I, O any] = func(ctx context.Context, in I) (O, error)

// Wrapped is the interception boundary around a Func. Under the default
// configuration the returned error is always nil and the outcome, success
// or failure, arrives as the Envelope. With WithReraise the failure is
// additionally returned as a non-nil *Failure after being logged.
type Wrapped[I, O any] func(ctx context.Context, in I) (*Envelope, error)

// Wrap builds the interception boundary around fn.
//
// The channel is derived once, at wrap time, from fn's defining package
// (override with WithChannel), so invocations carry no resolution cost.
// Per invocation:
//
//   - success: the return value is boxed as Ok. Nothing is logged unless
//     WithSuccessLevel raised the success level.
//   - returned error: classified into a kind, enveloped as Error with
//     sanitized details, and logged at error severity — exactly once.
//   - panic: recovered, classified, enveloped and logged the same way,
//     with a stack excerpt in the log fields.
//
// Wrapping is idempotent: a Wrapped passed back through Wrap produces no
// second envelope and no second log emission. Success envelopes pass
// through unboxed, and failures already intercepted by an inner wrapper
// are recognized and not logged again.
func Wrap[I, O any](fn Func[I, O], opts ...Option) Wrapped[I, O] {
	cfg := newWrapConfig(opts)

	ch := cfg.channel
	if ch == channel.Empty {
		ch = cfg.resolver.FromFunc(fn)
	}
	name := channel.FuncName(fn)
	handle := cfg.registry.Handle(ch)

	return func(ctx context.Context, in I) (env *Envelope, err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			f := F(kind.ClassifyPanic(r), kind.PanicMessage(r)).
				WithDetails(inputDetails(cfg, in))
			if cause, ok := r.(error); ok {
				f = f.WithCause(cause)
			}
			env, err = emit(cfg, handle, name, f, stackExcerpt(3))
		}()

		out, callErr := fn(ctx, in)
		if callErr == nil {
			return success(cfg, handle, name, out), nil
		}

		var inner *Failure
		if errors.As(callErr, &inner) && inner.intercepted {
			// Already logged and enveloped by an inner wrapper.
			if cfg.reraise {
				return FromFailure(inner), inner
			}
			return FromFailure(inner), nil
		}

		return emit(cfg, handle, name, failureFrom(cfg, callErr, in), "")
	}
}

// success boxes a successful return value, passing inner envelopes through
// untouched so double-wrapping cannot re-box them.
func success[O any](cfg *wrapConfig, handle *logx.Handle, name string, out O) *Envelope {
	env, boxed := any(out).(*Envelope)
	if !boxed || env == nil {
		env = Ok(out)
	}
	if !env.IsOK() {
		// An inner wrapper already concluded this call as a failure;
		// pass its envelope through without a success emission.
		return env
	}

	switch cfg.onSuccess {
	case SuccessDebug:
		handle.Debug("call succeeded", zap.String("function", name))
	case SuccessInfo:
		handle.Info("call succeeded", zap.String("function", name))
	}
	return env
}

// failureFrom converts a returned error into a Failure carrying the
// classified kind and the rendered input.
func failureFrom(cfg *wrapConfig, err error, in any) *Failure {
	details := inputDetails(cfg, in)

	var f *Failure
	if errors.As(err, &f) {
		return f.WithDetails(details)
	}
	return F(kind.Classify(err), err.Error()).
		WithDetails(details).
		WithCause(err)
}

// emit is the single point that logs and envelopes a failure. The details
// map is sanitized as a whole before either use, so a sensitive value can
// reach neither the sink nor the caller.
func emit(cfg *wrapConfig, handle *logx.Handle, name string, f *Failure, stack string) (*Envelope, error) {
	if sanitized, ok := cfg.sanitizer.Sanitize(f.Details).(map[string]any); ok {
		cp := *f
		cp.Details = sanitized
		f = &cp
	}

	fields := []zap.Field{
		zap.String("kind", string(f.Kind)),
		zap.String("function", name),
	}
	if len(f.Details) > 0 {
		fields = append(fields, zap.Any("details", f.Details))
	}
	if stack != "" {
		fields = append(fields, zap.String("stack", stack))
	}
	handle.Error(f.Message, fields...)

	env := FromFailure(f)
	if cfg.reraise {
		return env, f.markIntercepted()
	}
	return env, nil
}

// inputDetails renders the invocation input as sanitized detail fields.
// A struct or mapping input contributes its fields directly, so a call like
// divide(10, 0) shows up as {"a": 10, "b": 0}; anything else lands under
// the "input" key.
func inputDetails(cfg *wrapConfig, in any) map[string]any {
	if in == nil {
		return nil
	}
	rendered := cfg.sanitizer.Sanitize(in)
	if m, ok := rendered.(map[string]any); ok {
		return m
	}
	if rendered == nil {
		return nil
	}
	return map[string]any{"input": rendered}
}

// stackExcerpt renders up to eight frames above the wrapper machinery,
// one "file:line func" per line.
func stackExcerpt(skip int) string {
	pcs := make([]uintptr, 8)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&b, "%s:%d %s\n", frame.File, frame.Line, frame.Function)
		}
		if !more {
			break
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Sanitize redacts sensitive fields from v using the process-wide default
// rules. See package sanitize for rule semantics.
func Sanitize(v any) any {
	return sanitize.Default().Sanitize(v)
}

// Resolve returns the log handle for the channel derived from fn's defining
// package, using the process-wide resolver and registry. Repeated calls for
// functions in the same package return the same handle.
func Resolve(fn any) *logx.Handle {
	return logx.DefaultRegistry().Handle(channel.Default().FromFunc(fn))
}
