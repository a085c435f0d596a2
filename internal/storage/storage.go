package storage

import (
	"context"
	"fmt"

	"interview-ai-go/internal/config"
	"interview-ai-go/internal/logger"
)

// Storage 存储管理器，聚合所有存储相关依赖
type Storage struct {
	// 关系型数据库
	MySQL *MySQL

	// 键值存储，可选；为空时看板统计不走缓存
	Redis *Redis
}

// NewStorage 创建存储管理器。MySQL是必需的，Redis初始化失败只降级不报错
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	s := &Storage{}

	mysql, err := NewMySQL(&cfg.MySQL)
	if err != nil {
		return nil, fmt.Errorf("初始化MySQL失败: %w", err)
	}
	s.MySQL = mysql

	if cfg.Redis.Address != "" {
		redis, err := NewRedis(&cfg.Redis)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("初始化Redis失败，看板统计将不使用缓存")
		} else {
			s.Redis = redis
		}
	} else {
		logger.Ctx(ctx).Info().Msg("Redis未配置，跳过初始化")
	}

	return s, nil
}

// Close 关闭所有连接
func (s *Storage) Close() {
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Error().Err(err).Msg("关闭MySQL连接失败")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Error().Err(err).Msg("关闭Redis连接失败")
		}
	}
}
