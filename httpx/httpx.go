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

// Package httpx adapts intercepted failures to HTTP responses.
//
// The Writer serializes the error envelope of a *police.Failure and resolves
// the HTTP status through apis.Mapper. The Middleware turns handler panics
// into the same envelope shape so that HTTP clients never see a bare 500
// with an empty body.
package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"oguild.dev/police"
	"oguild.dev/police/apis"
	"oguild.dev/police/channel"
	"oguild.dev/police/kind"
	"oguild.dev/police/sanitize"
)

// Meta carries extra context that the HTTP layer can add on top of a failure.
// All fields are optional and typically come from request context, headers,
// or rate-limiter output. Meta never changes the response body — the envelope
// shape is fixed — only response headers.
type Meta struct {
	// Correlation is echoed back as X-Correlation-Id when non-empty.
	Correlation string

	// RetryAfterSeconds sets the Retry-After header when positive.
	RetryAfterSeconds int
}

// Writer is a thin adapter that knows how to turn a *police.Failure into an
// HTTP response using the provided status mapper.
type Writer struct {
	// Mapper resolves (kind, channel) pairs to HTTP statuses. Required.
	Mapper apis.Mapper

	// Sanitizer scrubs failure details before they leave the process.
	// Nil means sanitize.Default().
	Sanitizer *sanitize.Sanitizer
}

// Write serializes the error envelope of f and writes it to rw. The HTTP
// status is resolved via the Mapper using the failure kind and the given
// channel. Details pass through the sanitizer.
//
// A nil failure writes nothing, so callers can invoke Write unconditionally
// on the error path.
func (w Writer) Write(rw http.ResponseWriter, f *police.Failure, ch channel.Channel, meta Meta) {
	if f == nil {
		return
	}

	st := w.Mapper.HTTPStatus(f.Kind, ch)

	details := f.Details
	if clean, ok := w.sanitizer().Sanitize(details).(map[string]any); ok {
		details = clean
	}
	env := police.Err(f.Kind, f.Message, details)

	rw.Header().Set("Content-Type", "application/json")
	if meta.Correlation != "" {
		rw.Header().Set("X-Correlation-Id", meta.Correlation)
	}
	if meta.RetryAfterSeconds > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(meta.RetryAfterSeconds))
	}
	rw.WriteHeader(st)

	_, _ = rw.Write([]byte(env.ToJSON()))
}

// WriteError is the error-typed variant of Write: non-failure errors are
// classified first, so arbitrary handler errors still produce a well-formed
// envelope instead of leaking err.Error() as plain text.
func (w Writer) WriteError(rw http.ResponseWriter, err error, ch channel.Channel, meta Meta) {
	if err == nil {
		return
	}
	var f *police.Failure
	if !errors.As(err, &f) {
		f = police.F(kind.Classify(err), err.Error())
	}
	w.Write(rw, f, ch, meta)
}

// Middleware wraps next so that a panicking handler responds with the error
// envelope of the classified panic instead of an empty 500.
//
// The channel used for status mapping is derived from the request path
// ("/api/guilds" becomes "api.guilds"); paths that do not normalize into a
// valid channel degrade to channel.Unknown.
func (w Writer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			f := police.F(kind.ClassifyPanic(rec), kind.PanicMessage(rec))
			w.Write(rw, f, PathChannel(r.URL.Path), Meta{})
		}()
		next.ServeHTTP(rw, r)
	})
}

// PathChannel derives a channel from an HTTP request path.
// Invalid results degrade to channel.Unknown.
func PathChannel(path string) channel.Channel {
	c, err := channel.Parse(path)
	if err != nil || c == channel.Empty {
		return channel.Unknown
	}
	return c
}

func (w Writer) sanitizer() *sanitize.Sanitizer {
	if w.Sanitizer != nil {
		return w.Sanitizer
	}
	return sanitize.Default()
}
