package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig 验证完整的YAML配置能被正确加载
func TestLoadConfig(t *testing.T) {
	yamlContent := `
server:
  address: ":9090"
mysql:
  host: "db.internal"
  port: 3307
  username: "app"
  password: "secret"
  database: "interview_ai"
  log_level: 4
redis:
  address: "cache.internal:6379"
  db: 1
logger:
  level: "debug"
  format: "pretty"
dashboard:
  stats_cache_ttl_seconds: 60
seed_on_startup: true
`
	tmpDir, err := os.MkdirTemp("", "config-test")
	require.NoError(t, err, "无法创建临时目录")
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	err = os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err, "无法写入临时配置文件")

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err, "加载合法配置不应返回错误")
	require.NotNil(t, cfg)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	assert.Equal(t, 3307, cfg.MySQL.Port)
	assert.Equal(t, 4, cfg.MySQL.LogLevel)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Address)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "pretty", cfg.Logger.Format)
	assert.Equal(t, 60, cfg.Dashboard.StatsCacheTTLSeconds)
	assert.True(t, cfg.SeedOnStartup)
}

// TestLoadConfigDefaults 验证缺省字段会被填上默认值
func TestLoadConfigDefaults(t *testing.T) {
	yamlContent := `
mysql:
  host: "localhost"
  username: "root"
  password: ""
  database: "interview_ai"
`
	tmpDir, err := os.MkdirTemp("", "config-test-defaults")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	err = os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, ":8888", cfg.Server.Address, "服务器地址应取默认值")
	assert.Equal(t, 3306, cfg.MySQL.Port, "MySQL端口应取默认值")
	assert.Equal(t, 10, cfg.MySQL.MaxIdleConns)
	assert.Equal(t, 100, cfg.MySQL.MaxOpenConns)
	assert.Equal(t, "info", cfg.Logger.Level, "日志级别应取默认值")
	assert.Equal(t, "interview-ai-go", cfg.Tracing.ServiceName)
	assert.Equal(t, 30, cfg.Dashboard.StatsCacheTTLSeconds, "缓存TTL应取默认值")
	assert.False(t, cfg.SeedOnStartup)
}

// TestLoadConfigMissingFile 验证配置文件不存在时返回错误
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// TestLoadConfigInvalidYAML 验证YAML语法错误时返回错误
func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-test-invalid")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	err = os.WriteFile(configPath, []byte("server: [unclosed"), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
