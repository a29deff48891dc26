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

// Package police intercepts function outcomes and normalizes them into
// uniform envelopes.
//
// Wrap takes any Func and returns an interception boundary around it:
// successes are boxed as Ok, returned errors and panics are recovered,
// classified into a kind, sanitized, logged once on a channel derived from
// the function's defining package, and boxed as Error. Under the default
// configuration a wrapped call never returns a non-nil error; WithReraise
// opts into also propagating the failure after logging.
//
//	divide := police.Wrap(func(ctx context.Context, in DivideInput) (int, error) {
//	    return in.A / in.B, nil
//	})
//	env, _ := divide(ctx, DivideInput{A: 10, B: 0})
//	// env.Status == "error", env.Kind == kind.DivisionByZero
//
// The building blocks live in subpackages: kind (failure taxonomy and
// classification), channel (call-site channel derivation), sanitize
// (sensitive-field redaction), logx (per-channel log handles), mapper and
// the transport adapters (HTTP/gRPC projection).
//
// Package guildpack re-exports this entire surface under a second import
// path with identical behavior.
package police
