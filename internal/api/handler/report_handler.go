package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"interview-ai-go/internal/pipeline"
)

// ReportHandler 评估和评分相关接口
type ReportHandler struct {
	reports *pipeline.ReportService
}

// NewReportHandler 创建报告处理器
func NewReportHandler(reports *pipeline.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RecordScoreRequest 评分请求体
type RecordScoreRequest struct {
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// RecordScore 为面试录入评分报告
func (h *ReportHandler) RecordScore(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req RecordScoreRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	report, err := h.reports.RecordScore(ctx, id, req.Score, req.Description)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, report)
}

// UpdateScore 更新面试的评分报告
func (h *ReportHandler) UpdateScore(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req RecordScoreRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	report, err := h.reports.UpdateScore(ctx, id, req.Score, req.Description)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, report)
}

// GetByInterview 查询面试的评分报告
func (h *ReportHandler) GetByInterview(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	report, err := h.reports.FindByInterview(ctx, id)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, report)
}

// RecordPreReportRequest 面试前评估请求体
type RecordPreReportRequest struct {
	ApplicantID      uint64  `json:"applicant_id"`
	WorkHistoryID    *uint64 `json:"work_history_id"`
	ProjectHistoryID *uint64 `json:"project_history_id"`
	Description      string  `json:"description"`
}

// RecordPreReport 录入面试前评估
func (h *ReportHandler) RecordPreReport(ctx context.Context, c *app.RequestContext) {
	var req RecordPreReportRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	report, err := h.reports.RecordPreReport(ctx, pipeline.RecordPreReportInput{
		ApplicantID:      req.ApplicantID,
		WorkHistoryID:    req.WorkHistoryID,
		ProjectHistoryID: req.ProjectHistoryID,
		Description:      req.Description,
	})
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, report)
}
