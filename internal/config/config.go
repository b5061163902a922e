package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// 設定ファイルの場所を指定する環境変数
const EnvConfigPath = "OBSBOTCTL_CONFIG"

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Discovery DiscoveryConfig `yaml:"discovery"`
	Device    DeviceConfig    `yaml:"device"`
	Log       LogConfig       `yaml:"log"`
	Server    ServerConfig    `yaml:"server"`
}

// DiscoveryConfig はデバイス待機の設定
type DiscoveryConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval"`  // ポーリング間隔
	MaxAttempts   int           `yaml:"max_attempts"`   // 最大試行回数
	ProgressEvery int           `yaml:"progress_every"` // 進捗表示の間隔（試行回数）
}

// DeviceConfig は対象デバイスの設定
type DeviceConfig struct {
	Serial string `yaml:"serial"` // --sn 省略時のシリアル番号
}

// LogConfig はログ出力の設定
type LogConfig struct {
	File       string `yaml:"file"`         // ログファイル（空ならstderrのみ）
	MaxSizeMB  int    `yaml:"max_size_mb"`  // ローテーションするサイズ
	MaxBackups int    `yaml:"max_backups"`  // 保持する世代数
	MaxAgeDays int    `yaml:"max_age_days"` // 保持日数
	Verbose    bool   `yaml:"verbose"`      // デバッグログ
}

// ServerConfig はHTTP制御デーモンの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト（デバイス待機を含む）
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			PollInterval:  50 * time.Millisecond,
			MaxAttempts:   200, // 合計およそ10秒
			ProgressEvery: 20,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Load は設定を読み込む
//
// デフォルト値 → 設定ファイル → 環境変数 の順に上書きする。
// 既定パスの設定ファイルが存在しない場合はエラーにしない。
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := configPath()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// LoadFile はYAMLファイルの内容で設定を上書きする
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗 (%s): %w", path, err)
	}

	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.Discovery.PollInterval <= 0 {
		return fmt.Errorf("無効なポーリング間隔: %s", c.Discovery.PollInterval)
	}
	if c.Discovery.MaxAttempts < 1 {
		return fmt.Errorf("無効な最大試行回数: %d", c.Discovery.MaxAttempts)
	}
	if c.Discovery.ProgressEvery < 1 {
		return fmt.Errorf("無効な進捗表示間隔: %d", c.Discovery.ProgressEvery)
	}

	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DiscoveryTimeout はデバイス待機の上限時間を返す
func (c *Config) DiscoveryTimeout() time.Duration {
	return time.Duration(c.Discovery.MaxAttempts) * c.Discovery.PollInterval
}

// configPath は設定ファイルのパスを返す
// 環境変数で明示された場合は explicit が true
func configPath() (path string, explicit bool) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, true
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "obsbotctl", "config.yaml"), false
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() {
	c.Device.Serial = getEnvOrDefault("OBSBOT_SN", c.Device.Serial)
	c.Discovery.PollInterval = getEnvAsDurationOrDefault("OBSBOT_POLL_INTERVAL", c.Discovery.PollInterval)
	c.Discovery.MaxAttempts = getEnvAsIntOrDefault("OBSBOT_MAX_ATTEMPTS", c.Discovery.MaxAttempts)
	c.Log.File = getEnvOrDefault("OBSBOT_LOG_FILE", c.Log.File)
	c.Log.Verbose = getEnvAsBoolOrDefault("OBSBOT_VERBOSE", c.Log.Verbose)
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault は環境変数を時間として取得する（例: 50ms）
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault は環境変数を真偽値として取得する
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
