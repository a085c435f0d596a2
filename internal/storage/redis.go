package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"interview-ai-go/internal/config"
	"interview-ai-go/internal/constants"
)

// ErrCacheMiss 缓存未命中，包装底层的 redis.Nil 以便上层判断
var ErrCacheMiss = redis.Nil

// Redis 封装go-redis客户端，承载看板统计的缓存读写
type Redis struct {
	Client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedis 创建Redis客户端并验证连通性
func NewRedis(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	// 添加OpenTelemetry钩子，记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("为Redis注册OpenTelemetry钩子失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &Redis{Client: client, cfg: cfg}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	return r.Client.Close()
}

// GetDashboardStats 读取看板统计缓存，未命中返回 ErrCacheMiss
func (r *Redis) GetDashboardStats(ctx context.Context) (string, error) {
	return r.Client.Get(ctx, constants.KeyDashboardStats).Result()
}

// SetDashboardStats 写入看板统计缓存(JSON负载)
func (r *Redis) SetDashboardStats(ctx context.Context, payload string, ttl time.Duration) error {
	return r.Client.Set(ctx, constants.KeyDashboardStats, payload, ttl).Err()
}

// InvalidateDashboardStats 在写路径上失效看板统计缓存
func (r *Redis) InvalidateDashboardStats(ctx context.Context) error {
	return r.Client.Del(ctx, constants.KeyDashboardStats).Err()
}
