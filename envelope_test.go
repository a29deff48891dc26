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
	"encoding/json"
	"strings"
	"testing"

	"oguild.dev/police/kind"
)

func decodeEnvelope(t *testing.T, e *Envelope) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(e.ToJSON()), &out); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return out
}

func TestEnvelope_OkWireShape(t *testing.T) {
	out := decodeEnvelope(t, Ok(5))

	if out["status"] != "ok" {
		t.Fatalf("status = %v", out["status"])
	}
	if out["value"] != float64(5) {
		t.Fatalf("value = %v", out["value"])
	}
	if v, present := out["message"]; !present || v != nil {
		t.Fatalf("message must serialize as explicit null, got %v (present=%v)", v, present)
	}
}

func TestEnvelope_OkWithMessage(t *testing.T) {
	out := decodeEnvelope(t, OkMsg("done", "all good"))

	if out["value"] != "done" || out["message"] != "all good" {
		t.Fatalf("unexpected wire form: %v", out)
	}
}

func TestEnvelope_ErrorWireShape(t *testing.T) {
	e := Err(kind.DivisionByZero, "division by zero", map[string]any{"a": 10, "b": 0})
	out := decodeEnvelope(t, e)

	if out["status"] != "error" {
		t.Fatalf("status = %v", out["status"])
	}
	if out["kind"] != "division_by_zero" {
		t.Fatalf("kind = %v", out["kind"])
	}
	if out["message"] != "division by zero" {
		t.Fatalf("message = %v", out["message"])
	}
	details, ok := out["details"].(map[string]any)
	if !ok {
		t.Fatalf("details = %v", out["details"])
	}
	if details["a"] != float64(10) || details["b"] != float64(0) {
		t.Fatalf("details = %v", details)
	}
}

func TestEnvelope_ErrorNilDetails(t *testing.T) {
	out := decodeEnvelope(t, Err(kind.Internal, "boom", nil))

	if v, present := out["details"]; !present || v != nil {
		t.Fatalf("details must serialize as explicit null, got %v (present=%v)", v, present)
	}
}

func TestEnvelope_SerializationNeverFails(t *testing.T) {
	// Functions and channels have no JSON representation; the envelope must
	// coerce them to text rather than failing.
	e := Ok(map[string]any{
		"fn":      func() {},
		"ch":      make(chan int),
		"complex": complex(1, 2),
		"plain":   "kept",
	})

	s := e.ToJSON()
	if !strings.Contains(s, `"status":"ok"`) {
		t.Fatalf("serialization failed: %s", s)
	}

	out := decodeEnvelope(t, e)
	value := out["value"].(map[string]any)
	if value["plain"] != "kept" {
		t.Fatal("serializable sibling dropped")
	}
	for _, k := range []string{"fn", "ch", "complex"} {
		if _, ok := value[k].(string); !ok {
			t.Fatalf("%s not coerced to string: %v", k, value[k])
		}
	}
}

func TestEnvelope_ErrorValueCoercion(t *testing.T) {
	e := Err(kind.Internal, "boom", map[string]any{
		"cause": json.RawMessage(nil), // marshals fine
		"fn":    func() {},
	})
	out := decodeEnvelope(t, e)
	details := out["details"].(map[string]any)
	if _, ok := details["fn"].(string); !ok {
		t.Fatalf("fn not coerced: %v", details["fn"])
	}
}

func TestEnvelope_ErrorLeafRendersMessage(t *testing.T) {
	e := Ok(map[string]any{"err": errTest})
	out := decodeEnvelope(t, e)
	value := out["value"].(map[string]any)
	if value["err"] != "test error" {
		t.Fatalf("error leaf = %v", value["err"])
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "test error" }

func TestEnvelope_FailureRoundTrip(t *testing.T) {
	f := F(kind.Conflict, "already booked", WithDetailOption("slot", "t-9"))
	env := FromFailure(f)

	if env.IsOK() {
		t.Fatal("error envelope reported ok")
	}
	back := env.Failure()
	if back.Kind != kind.Conflict || back.Message != "already booked" {
		t.Fatalf("round trip lost data: %+v", back)
	}
	if Ok(1).Failure() != nil {
		t.Fatal("ok envelope must have no failure")
	}
}

func TestEnvelope_DeterministicSerialization(t *testing.T) {
	e := Err(kind.Invalid, "bad input", map[string]any{"field": "email"})
	if e.ToJSON() != e.ToJSON() {
		t.Fatal("serialization not deterministic")
	}
}
