// Package pipeline 实现申请人生命周期状态机和跨实体聚合统计，
// 是整个系统的业务核心；HTTP层只做参数绑定和错误翻译
package pipeline

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"interview-ai-go/internal/config"
	"interview-ai-go/internal/logger"
	"interview-ai-go/internal/storage"
)

// Services 聚合全部业务服务，供HTTP层注入
type Services struct {
	Applicants *ApplicantService
	Histories  *HistoryService
	Interviews *InterviewService
	Reports    *ReportService
	Dashboard  *DashboardService
}

// NewServices 创建业务服务集合
func NewServices(store *storage.Storage, cfg *config.Config) *Services {
	return &Services{
		Applicants: NewApplicantService(store),
		Histories:  NewHistoryService(store),
		Interviews: NewInterviewService(store),
		Reports:    NewReportService(store),
		Dashboard:  NewDashboardService(store, cfg),
	}
}

// wrapLookupErr 把GORM的未命中错误翻译为带实体信息的NotFound
func wrapLookupErr(err error, entity string, id uint64, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newNotFoundError(entity, id, op)
	}
	return err
}

// wrapDuplicateErr 把GORM的唯一键冲突翻译为带实体信息的Conflict。
// 并发写入绕过业务预检时，由唯一索引兜底并走这条路径
func wrapDuplicateErr(err error, entity string, id uint64, op string, detail string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return newConflictError(entity, id, op, detail)
	}
	return err
}

// invalidateStatsCache 写路径后失效看板统计缓存。
// 缓存失效失败只记日志，不影响主流程
func invalidateStatsCache(ctx context.Context, store *storage.Storage) {
	if store.Redis == nil {
		return
	}
	if err := store.Redis.InvalidateDashboardStats(ctx); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("失效看板统计缓存失败")
	}
}
