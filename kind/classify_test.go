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
	"testing"
)

type kindedErr struct {
	kind string
}

func (e *kindedErr) Error() string     { return "kinded: " + e.kind }
func (e *kindedErr) ErrorKind() string { return e.kind }

func TestClassify_Nil(t *testing.T) {
	if k := Classify(nil); k != Empty {
		t.Fatalf("Classify(nil) = %q, want Empty", k)
	}
}

func TestClassify_DeclaredKindWins(t *testing.T) {
	err := &kindedErr{kind: "not_found"}
	if k := Classify(err); k != NotFound {
		t.Fatalf("Classify = %q, want %q", k, NotFound)
	}

	// Declared kind wins even when wrapped.
	wrapped := fmt.Errorf("lookup user: %w", err)
	if k := Classify(wrapped); k != NotFound {
		t.Fatalf("Classify(wrapped) = %q, want %q", k, NotFound)
	}
}

func TestClassify_MalformedDeclaredKindDegrades(t *testing.T) {
	err := &kindedErr{kind: "Not A Kind!!"}
	if k := Classify(err); k != Internal {
		t.Fatalf("Classify = %q, want %q", k, Internal)
	}
}

func TestClassify_StdlibSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"deadline", context.DeadlineExceeded, Timeout},
		{"canceled", context.Canceled, Canceled},
		{"not exist", fs.ErrNotExist, NotFound},
		{"permission", fs.ErrPermission, PermissionDenied},
		{"exist", fs.ErrExist, AlreadyExists},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), Timeout},
		{"plain", errors.New("boom"), Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if k := Classify(tt.err); k != tt.want {
				t.Fatalf("Classify(%v) = %q, want %q", tt.err, k, tt.want)
			}
		})
	}
}

func TestClassifyPanic_RuntimeErrors(t *testing.T) {
	// Provoke real runtime errors so the message matching stays honest.
	recoverKind := func(f func()) Kind {
		t.Helper()
		var k Kind
		func() {
			defer func() {
				k = ClassifyPanic(recover())
			}()
			f()
		}()
		return k
	}

	zero := 0
	if k := recoverKind(func() { _ = 1 / zero }); k != DivisionByZero {
		t.Fatalf("divide by zero classified as %q, want %q", k, DivisionByZero)
	}

	idx := 5
	if k := recoverKind(func() { _ = []int{1}[idx] }); k != OutOfRange {
		t.Fatalf("index out of range classified as %q, want %q", k, OutOfRange)
	}

	var p *kindedErr
	if k := recoverKind(func() { _ = p.kind }); k != NilDereference {
		t.Fatalf("nil dereference classified as %q, want %q", k, NilDereference)
	}
}

func TestClassifyPanic_NonRuntimeValues(t *testing.T) {
	if k := ClassifyPanic("boom"); k != Panic {
		t.Fatalf("string panic classified as %q, want %q", k, Panic)
	}
	if k := ClassifyPanic(errors.New("boom")); k != Panic {
		t.Fatalf("plain error panic classified as %q, want %q", k, Panic)
	}
	if k := ClassifyPanic(context.DeadlineExceeded); k != Timeout {
		t.Fatalf("deadline panic classified as %q, want %q", k, Timeout)
	}
}
