package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"interview-ai-go/internal/pipeline"
)

// DashboardHandler 看板相关接口
type DashboardHandler struct {
	dashboard *pipeline.DashboardService
}

// NewDashboardHandler 创建看板处理器
func NewDashboardHandler(dashboard *pipeline.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats 看板统计：申请人总数、各状态计数、平均分
func (h *DashboardHandler) Stats(ctx context.Context, c *app.RequestContext) {
	stats, err := h.dashboard.Stats(ctx)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, stats)
}

// Main 看板主视图：统计 + 全部申请人条目
func (h *DashboardHandler) Main(ctx context.Context, c *app.RequestContext) {
	view, err := h.dashboard.MainDashboard(ctx)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, view)
}

// PreReportBundle 某申请人的面试前材料打包
func (h *DashboardHandler) PreReportBundle(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bundle, err := h.dashboard.PreReportBundle(ctx, id)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, bundle)
}
