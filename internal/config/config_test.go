package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv は実環境の設定ファイルと環境変数の影響を受けないようにする
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvConfigPath, "")
	for _, key := range []string{"OBSBOT_SN", "OBSBOT_POLL_INTERVAL", "OBSBOT_MAX_ATTEMPTS", "OBSBOT_LOG_FILE", "OBSBOT_VERBOSE", "SERVER_HOST", "PORT"} {
		t.Setenv(key, "")
	}
}

// writeConfig はテスト用の設定ファイルを作成する
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestConfigLoad は設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	require.NoError(t, err, "設定の読み込みに失敗しました")

	assert.Equal(t, 50*time.Millisecond, cfg.Discovery.PollInterval)
	assert.Equal(t, 200, cfg.Discovery.MaxAttempts)
	assert.Equal(t, 20, cfg.Discovery.ProgressEvery)
	assert.Equal(t, 10*time.Second, cfg.DiscoveryTimeout())
	assert.Empty(t, cfg.Device.Serial)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
}

// TestConfigLoadFile は設定ファイルの上書きをテストする
func TestConfigLoadFile(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, `
discovery:
  poll_interval: 100ms
  max_attempts: 50
device:
  serial: RMOWAAA1234
log:
  file: /tmp/obsbotctl.log
  verbose: true
server:
  port: 9090
`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, cfg.Discovery.PollInterval)
	assert.Equal(t, 50, cfg.Discovery.MaxAttempts)
	assert.Equal(t, 20, cfg.Discovery.ProgressEvery, "unset keys keep defaults")
	assert.Equal(t, "RMOWAAA1234", cfg.Device.Serial)
	assert.Equal(t, "/tmp/obsbotctl.log", cfg.Log.File)
	assert.True(t, cfg.Log.Verbose)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

// TestConfigLoadDefaultPath はXDG配下の設定ファイルが読まれることをテストする
func TestConfigLoadDefaultPath(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "obsbotctl"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "obsbotctl", "config.yaml"), []byte("device:\n  serial: FROMXDG\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "FROMXDG", cfg.Device.Serial)
}

// TestConfigLoadErrors は読み込みエラーをテストする
func TestConfigLoadErrors(t *testing.T) {
	t.Run("明示したファイルが存在しない", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("YAMLが不正", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv(EnvConfigPath, writeConfig(t, "discovery: [unterminated"))

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("検証エラー", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv(EnvConfigPath, writeConfig(t, "discovery:\n  max_attempts: 0\n"))

		_, err := Load()
		assert.Error(t, err)
	})
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
	}{
		{"正常な設定", func(c *Config) {}, false},
		{"無効なポート番号", func(c *Config) { c.Server.Port = 99999 }, true},
		{"ポーリング間隔0", func(c *Config) { c.Discovery.PollInterval = 0 }, true},
		{"試行回数0", func(c *Config) { c.Discovery.MaxAttempts = 0 }, true},
		{"進捗間隔0", func(c *Config) { c.Discovery.ProgressEvery = 0 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err, "エラーが期待されましたが、エラーが発生しませんでした")
			} else {
				assert.NoError(t, err, "予期しないエラーが発生しました")
			}
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "192.168.1.100",
			Port: 9090,
		},
	}

	assert.Equal(t, "192.168.1.100:9090", cfg.ServerAddress())
}

// TestEnvironmentVariables は環境変数の処理をテストする
// 注意: このテストは環境変数を変更するため、parallelは使わない
func TestEnvironmentVariables(t *testing.T) {
	isolateEnv(t)
	t.Setenv(EnvConfigPath, writeConfig(t, "device:\n  serial: FROMFILE\n"))

	t.Setenv("OBSBOT_SN", "FROMENV")
	t.Setenv("OBSBOT_POLL_INTERVAL", "10ms")
	t.Setenv("OBSBOT_MAX_ATTEMPTS", "5")
	t.Setenv("OBSBOT_VERBOSE", "true")
	t.Setenv("SERVER_HOST", "test.example.com")
	t.Setenv("PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "FROMENV", cfg.Device.Serial, "env beats file")
	assert.Equal(t, 10*time.Millisecond, cfg.Discovery.PollInterval)
	assert.Equal(t, 5, cfg.Discovery.MaxAttempts)
	assert.True(t, cfg.Log.Verbose)
	assert.Equal(t, "test.example.com", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
}

// TestEnvironmentVariablesInvalid は不正な環境変数が無視されることをテストする
func TestEnvironmentVariablesInvalid(t *testing.T) {
	isolateEnv(t)
	t.Setenv("OBSBOT_POLL_INTERVAL", "soon")
	t.Setenv("PORT", "eighty")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Discovery.PollInterval)
	assert.Equal(t, 8080, cfg.Server.Port)
}
