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

package kind

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
)

// kinder is the structural capability a classified error can implement to
// carry its own kind. Declared unexported here (consumer side), exported as
// apis.KindedError for implementers.
type kinder interface {
	ErrorKind() string
}

// Classify maps an arbitrary Go error to a canonical failure kind.
//
// Resolution order:
//
//  1. the error (or anything in its chain) implements ErrorKind() — the
//     declared kind wins, after normalization;
//  2. well-known stdlib sentinels (context deadline/cancellation, fs
//     not-exist/permission);
//  3. Internal as the fallback.
//
// Classify never fails: a declared but malformed kind degrades to Internal
// rather than propagating a validation error from the failure path.
func Classify(err error) Kind {
	if err == nil {
		return Empty
	}

	var k kinder
	if errors.As(err, &k) {
		if parsed, perr := Parse(k.ErrorKind()); perr == nil {
			return parsed
		}
		return Internal
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case errors.Is(err, context.Canceled):
		return Canceled
	case errors.Is(err, os.ErrDeadlineExceeded):
		return Timeout
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	case errors.Is(err, fs.ErrExist):
		return AlreadyExists
	}

	return Internal
}

// ClassifyPanic maps a recovered panic value to a canonical failure kind.
//
// Runtime errors are recognized by their message because the runtime does not
// export sentinel values for them:
//
//	"integer divide by zero"          -> DivisionByZero
//	"index out of range", "slice bounds" -> OutOfRange
//	"nil pointer dereference", "nil map"  -> NilDereference
//
// A panic carrying an error value is delegated to Classify; everything else
// is Panic.
func ClassifyPanic(v any) Kind {
	switch p := v.(type) {
	case runtime.Error:
		msg := p.Error()
		switch {
		case strings.Contains(msg, "divide by zero"):
			return DivisionByZero
		case strings.Contains(msg, "index out of range"),
			strings.Contains(msg, "slice bounds out of range"):
			return OutOfRange
		case strings.Contains(msg, "nil pointer dereference"),
			strings.Contains(msg, "nil map"):
			return NilDereference
		}
		return Panic
	case error:
		if k := Classify(p); k != Internal && k != Empty {
			return k
		}
		return Panic
	default:
		return Panic
	}
}

// PanicMessage renders a recovered panic value as a short human message.
// The "runtime error: " prefix is stripped, and the runtime's divide
// phrasing is reworded to the conventional "division by zero".
func PanicMessage(v any) string {
	switch p := v.(type) {
	case error:
		msg := strings.TrimPrefix(p.Error(), "runtime error: ")
		if strings.Contains(msg, "divide by zero") {
			return "division by zero"
		}
		return msg
	case string:
		return p
	default:
		return fmt.Sprint(p)
	}
}
