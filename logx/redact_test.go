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

package logx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"oguild.dev/police/sanitize"
)

func newTestEncoder(t *testing.T) *RedactingEncoder {
	t.Helper()
	encoderCfg := zap.NewProductionEncoderConfig()
	base := zapcore.NewJSONEncoder(encoderCfg)
	enc, err := NewRedactingEncoder(base, sanitize.DefaultRules())
	require.NoError(t, err)
	return enc
}

func encodeEntry(t *testing.T, enc *RedactingEncoder, fields ...zap.Field) map[string]any {
	t.Helper()
	buf, err := enc.EncodeEntry(zapcore.Entry{Message: "test"}, fields)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRedactingEncoderRejectsBadPattern(t *testing.T) {
	base := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	rules := sanitize.DefaultRules()
	rules.Patterns = []string{"[unclosed"}

	_, err := NewRedactingEncoder(base, rules)
	require.Error(t, err)
}

func TestRedactingEncoderStringFields(t *testing.T) {
	enc := newTestEncoder(t)

	out := encodeEntry(t, enc,
		zap.String("password", "hunter2"),
		zap.String("username", "alice"),
	)

	assert.Equal(t, "***", out["password"])
	assert.Equal(t, "alice", out["username"])
}

func TestRedactingEncoderValuePatterns(t *testing.T) {
	enc := newTestEncoder(t)

	out := encodeEntry(t, enc,
		zap.String("msg_detail", "Authorization: Bearer eyJhbGciOi"),
		zap.String("note", "nothing to see"),
	)

	assert.Equal(t, "***", out["msg_detail"])
	assert.Equal(t, "nothing to see", out["note"])
}

func TestRedactingEncoderSubstringKeys(t *testing.T) {
	enc := newTestEncoder(t)

	out := encodeEntry(t, enc,
		zap.String("access_token", "tok-123"),
		zap.String("ApiKey", "sk-456"),
	)

	assert.Equal(t, "***", out["access_token"])
	assert.Equal(t, "***", out["ApiKey"])
}

func TestRedactingEncoderReflected(t *testing.T) {
	enc := newTestEncoder(t)

	out := encodeEntry(t, enc,
		zap.Any("details", map[string]any{
			"password": "hunter2",
			"attempt":  3,
		}),
	)

	details, ok := out["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "***", details["password"])
	assert.EqualValues(t, 3, details["attempt"])
}

func TestRedactingEncoderReflectedSensitiveKey(t *testing.T) {
	enc := newTestEncoder(t)

	out := encodeEntry(t, enc, zap.Any("credentials", map[string]any{"user": "alice"}))

	assert.Equal(t, "***", out["credentials"])
}

func TestRedactingEncoderClone(t *testing.T) {
	enc := newTestEncoder(t)

	clone, ok := enc.Clone().(*RedactingEncoder)
	require.True(t, ok)

	out := encodeEntry(t, clone, zap.String("secret", "s3cr3t"))
	assert.Equal(t, "***", out["secret"])
}

func TestRedactingEncoderByteString(t *testing.T) {
	enc := newTestEncoder(t)

	out := encodeEntry(t, enc, zap.ByteString("private_key", []byte("-----BEGIN")))

	assert.Equal(t, "***", out["private_key"])
}
