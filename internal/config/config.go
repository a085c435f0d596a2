package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// MySQL配置
	MySQL MySQLConfig `yaml:"mysql"`

	// Redis配置
	Redis RedisConfig `yaml:"redis"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`

	// 链路追踪配置
	Tracing TracingConfig `yaml:"tracing"`

	// 看板统计缓存配置
	Dashboard DashboardConfig `yaml:"dashboard"`

	// 启动时是否写入基础目录数据（职位/经验/技术栈/默认面试官）
	SeedOnStartup bool `yaml:"seed_on_startup"`
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 监听地址，例如 ":8888"
}

// MySQLConfig MySQL配置结构
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// 超时设置
	ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds"` // 连接超时(秒)
	ReadTimeoutSeconds    int `yaml:"read_timeout_seconds"`    // 读取超时(秒)
	WriteTimeoutSeconds   int `yaml:"write_timeout_seconds"`   // 写入超时(秒)
	// 连接池设置
	MaxIdleConns           int `yaml:"max_idle_conns"`             // 最大空闲连接数
	MaxOpenConns           int `yaml:"max_open_conns"`             // 最大打开连接数
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`  // 连接最大生命周期(分钟)
	ConnMaxIdleTimeMinutes int `yaml:"conn_max_idle_time_minutes"` // 空闲连接最大生命周期(分钟)
	// GORM日志级别: 1=Silent, 2=Error, 3=Warn, 4=Info
	LogLevel int `yaml:"log_level"`
}

// RedisConfig Redis配置结构
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
}

// LoggerConfig 日志配置结构
type LoggerConfig struct {
	Level        string `yaml:"level"`         // 日志级别：debug, info, warn, error
	Format       string `yaml:"format"`        // 日志格式：json 或 pretty
	TimeFormat   string `yaml:"time_format"`   // 时间戳格式
	ReportCaller bool   `yaml:"report_caller"` // 是否记录调用位置
}

// TracingConfig OpenTelemetry链路追踪配置
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`     // OTLP gRPC 端点，例如 "localhost:4317"
	ServiceName string `yaml:"service_name"` // 上报的服务名
}

// DashboardConfig 看板统计缓存配置
type DashboardConfig struct {
	StatsCacheTTLSeconds int `yaml:"stats_cache_ttl_seconds"` // 统计结果缓存时间(秒)
}

// LoadConfig 从指定路径加载YAML配置文件
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults 为未设置的字段填充默认值
func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8888"
	}
	if c.MySQL.Port == 0 {
		c.MySQL.Port = 3306
	}
	if c.MySQL.ConnectTimeoutSeconds == 0 {
		c.MySQL.ConnectTimeoutSeconds = 10
	}
	if c.MySQL.ReadTimeoutSeconds == 0 {
		c.MySQL.ReadTimeoutSeconds = 30
	}
	if c.MySQL.WriteTimeoutSeconds == 0 {
		c.MySQL.WriteTimeoutSeconds = 30
	}
	if c.MySQL.MaxIdleConns == 0 {
		c.MySQL.MaxIdleConns = 10
	}
	if c.MySQL.MaxOpenConns == 0 {
		c.MySQL.MaxOpenConns = 100
	}
	if c.MySQL.ConnMaxLifetimeMinutes == 0 {
		c.MySQL.ConnMaxLifetimeMinutes = 60
	}
	if c.MySQL.ConnMaxIdleTimeMinutes == 0 {
		c.MySQL.ConnMaxIdleTimeMinutes = 10
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "interview-ai-go"
	}
	if c.Dashboard.StatsCacheTTLSeconds == 0 {
		c.Dashboard.StatsCacheTTLSeconds = 30
	}
}
