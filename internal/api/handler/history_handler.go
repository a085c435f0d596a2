package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"gorm.io/datatypes"

	"interview-ai-go/internal/pipeline"
)

// HistoryHandler 工作/项目经历相关接口
type HistoryHandler struct {
	histories *pipeline.HistoryService
}

// NewHistoryHandler 创建经历处理器
func NewHistoryHandler(histories *pipeline.HistoryService) *HistoryHandler {
	return &HistoryHandler{histories: histories}
}

// CreateWorkHistoryRequest 工作经历请求体，日期格式 "2006-01-02"
type CreateWorkHistoryRequest struct {
	ApplicantID uint64  `json:"applicant_id"`
	CompanyName string  `json:"company_name"`
	PositionID  uint64  `json:"position_id"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"` // 为空表示在职
}

// CreateWorkHistory 创建工作经历
func (h *HistoryHandler) CreateWorkHistory(ctx context.Context, c *app.RequestContext) {
	var req CreateWorkHistoryRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "start_date 格式错误: " + err.Error()})
		return
	}
	var end *datatypes.Date
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(consts.StatusBadRequest, utils.H{"error": "end_date 格式错误: " + err.Error()})
			return
		}
		end = &d
	}

	history, err := h.histories.CreateWorkHistory(ctx, pipeline.CreateWorkHistoryInput{
		ApplicantID: req.ApplicantID,
		CompanyName: req.CompanyName,
		PositionID:  req.PositionID,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, history)
}

// ListWorkHistories 查询某申请人的工作经历
func (h *HistoryHandler) ListWorkHistories(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	histories, err := h.histories.ListWorkHistories(ctx, id)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"work_histories": histories})
}

// DeleteWorkHistory 删除工作经历
func (h *HistoryHandler) DeleteWorkHistory(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.histories.DeleteWorkHistory(ctx, id); err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"deleted": id})
}

// CreateProjectHistoryRequest 项目经历请求体。
// tech_stack_ids 的第一个元素作为主技术栈
type CreateProjectHistoryRequest struct {
	ApplicantID  uint64   `json:"applicant_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	TechStackIDs []uint64 `json:"tech_stack_ids"`
}

// CreateProjectHistory 创建项目经历
func (h *HistoryHandler) CreateProjectHistory(ctx context.Context, c *app.RequestContext) {
	var req CreateProjectHistoryRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	view, err := h.histories.CreateProjectHistory(ctx, pipeline.CreateProjectHistoryInput{
		ApplicantID:  req.ApplicantID,
		Title:        req.Title,
		Description:  req.Description,
		TechStackIDs: req.TechStackIDs,
	})
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, view)
}

// ListProjectHistories 查询某申请人的项目经历（含还原后的技术栈）
func (h *HistoryHandler) ListProjectHistories(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := h.histories.ListProjectHistories(ctx, id)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"project_histories": views})
}

// DeleteProjectHistory 删除项目经历
func (h *HistoryHandler) DeleteProjectHistory(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.histories.DeleteProjectHistory(ctx, id); err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"deleted": id})
}

func parseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}
