package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"oguild.dev/police"
)

func TestLoadBytes_Defaults(t *testing.T) {
	cfg, err := LoadBytes(nil)
	require.NoError(t, err)

	assert.False(t, cfg.Police.Reraise)
	assert.Equal(t, "silent", cfg.Police.SuccessLevel)
	assert.Equal(t, zapcore.InfoLevel, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NotEmpty(t, cfg.Sanitize.Fields)
}

func TestLoadBytes_YAMLOverridesDefaults(t *testing.T) {
	yaml := []byte(`
police:
  reraise: true
  success_level: debug
log:
  level: debug
  format: console
sanitize:
  token: "[MASKED]"
`)
	cfg, err := LoadBytes(yaml)
	require.NoError(t, err)

	assert.True(t, cfg.Police.Reraise)
	assert.Equal(t, "debug", cfg.Police.SuccessLevel)
	assert.Equal(t, zapcore.DebugLevel, cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "[MASKED]", cfg.Sanitize.Token)
}

func TestLoadBytes_EnvOverridesYAML(t *testing.T) {
	t.Setenv("POLICE_LOG_FORMAT", "console")
	t.Setenv("POLICE_POLICE_SUCCESS_LEVEL", "info")

	cfg, err := LoadBytes([]byte("log:\n  format: json\n"))
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Police.SuccessLevel)
}

func TestLoadBytes_InvalidYAML(t *testing.T) {
	_, err := LoadBytes([]byte("police: ["))
	require.Error(t, err)
}

func TestLoadBytes_InvalidSuccessLevel(t *testing.T) {
	_, err := LoadBytes([]byte("police:\n  success_level: loud\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "success level")
}

func TestLoadBytes_InvalidFormat(t *testing.T) {
	_, err := LoadBytes([]byte("log:\n  format: xml\n"))
	require.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "silent", cfg.Police.SuccessLevel)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("police:\n  reraise: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Police.Reraise)
}

func TestParseSuccessLevel(t *testing.T) {
	for in, want := range map[string]police.SuccessLevel{
		"":       police.SuccessSilent,
		"silent": police.SuccessSilent,
		"debug":  police.SuccessDebug,
		"info":   police.SuccessInfo,
	} {
		got, err := ParseSuccessLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSuccessLevel("verbose")
	require.Error(t, err)
}

func TestOptions_FromConfig(t *testing.T) {
	cfg, err := LoadBytes([]byte("police:\n  reraise: true\n  success_level: debug\n"))
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)
	// sanitizer + success level + reraise
	assert.Len(t, opts, 3)

	cfg2, err := LoadBytes(nil)
	require.NoError(t, err)
	opts2, err := cfg2.Options()
	require.NoError(t, err)
	assert.Len(t, opts2, 2)
}
