package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, k := range []string{
		"VOICECHAT_API_BASE_URL", "VOICECHAT_DB", "VOICECHAT_LOG_FILE",
		"VOICECHAT_DEBUG", "VOICECHAT_HTTP_TIMEOUT", "VOICECHAT_AUDIO_ENABLED",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api", "", "")
	fs.String("db", "", "")
	fs.String("log-file", "", "")
	fs.Bool("debug", false, "")
	return fs
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(testFlags())
	require.NoError(t, err)
	assert.Equal(t, api.DefaultBaseURL, cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(dir, "data", "voicechat", "voicechat.db"), cfg.DB)
	assert.Equal(t, filepath.Join(dir, "data", "voicechat", "voicechat.log"), cfg.LogFile)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Equal(t, "dark", cfg.CheatsheetStyle)
	assert.True(t, cfg.Audio.Enabled)
	assert.False(t, cfg.Debug)
}

func TestBaseURLPrecedence(t *testing.T) {
	isolate(t)

	t.Run("env over default", func(t *testing.T) {
		t.Setenv("VOICECHAT_API_BASE_URL", "http://backend:5001/")
		cfg, err := Load(testFlags())
		require.NoError(t, err)
		assert.Equal(t, "http://backend:5001", cfg.APIBaseURL)
	})

	t.Run("flag over env", func(t *testing.T) {
		t.Setenv("VOICECHAT_API_BASE_URL", "http://backend:5001")
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--api", "http://flag:7000"}))
		cfg, err := Load(fs)
		require.NoError(t, err)
		assert.Equal(t, "http://flag:7000", cfg.APIBaseURL)
	})
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "custom", "x.db")
	t.Setenv("VOICECHAT_DB", db)
	t.Setenv("VOICECHAT_HTTP_TIMEOUT", "5s")
	t.Setenv("VOICECHAT_AUDIO_ENABLED", "false")
	t.Setenv("VOICECHAT_DEBUG", "true")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, db, cfg.DB)
	assert.DirExists(t, filepath.Dir(db))
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Debug)
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "config", "voicechat")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"),
		[]byte("api_base_url: http://from-file:9000\naudio:\n  synth_command: say\n"), 0o644))

	cfg, err := Load(testFlags())
	require.NoError(t, err)
	assert.Equal(t, "http://from-file:9000", cfg.APIBaseURL)
	assert.Equal(t, "say", cfg.Audio.SynthCommand)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VOICECHAT_API_BASE_URL=http://dotenv:5000\n"), 0o644))

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("VOICECHAT_API_BASE_URL") })

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv:5000", cfg.APIBaseURL)

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
