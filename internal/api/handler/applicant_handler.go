package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"interview-ai-go/internal/pipeline"
)

// ApplicantHandler 申请人相关接口
type ApplicantHandler struct {
	applicants *pipeline.ApplicantService
}

// NewApplicantHandler 创建申请人处理器
func NewApplicantHandler(applicants *pipeline.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{applicants: applicants}
}

// RegisterApplicantRequest 申请人登记请求体
type RegisterApplicantRequest struct {
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Location          string     `json:"location"`
	ResumeFilePath    string     `json:"resume_file_path"`
	GithubURL         string     `json:"github_url"`
	PortfolioURL      string     `json:"portfolio_url"`
	PortfolioFilePath string     `json:"portfolio_file_path"`
	ApplyAt           *time.Time `json:"apply_at"`
	PositionID        uint64     `json:"position_id"`
	ExperienceID      uint64     `json:"experience_id"`
	TechStackIDs      []uint64   `json:"tech_stack_ids"`
}

// Register 登记申请人
func (h *ApplicantHandler) Register(ctx context.Context, c *app.RequestContext) {
	var req RegisterApplicantRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	view, err := h.applicants.Register(ctx, pipeline.RegisterApplicantInput{
		Username:          req.Username,
		Email:             req.Email,
		Location:          req.Location,
		ResumeFilePath:    req.ResumeFilePath,
		GithubURL:         req.GithubURL,
		PortfolioURL:      req.PortfolioURL,
		PortfolioFilePath: req.PortfolioFilePath,
		ApplyAt:           req.ApplyAt,
		PositionID:        req.PositionID,
		ExperienceID:      req.ExperienceID,
		TechStackIDs:      req.TechStackIDs,
	})
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, view)
}

// UpdateStatusRequest 状态更新请求体
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus 更新申请人状态
func (h *ApplicantHandler) UpdateStatus(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	view, err := h.applicants.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, view)
}

// Get 查询申请人详情（含职位/经验/技术栈标题）
func (h *ApplicantHandler) Get(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.applicants.FindWithTags(ctx, id)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, view)
}

// List 查询全部申请人
func (h *ApplicantHandler) List(ctx context.Context, c *app.RequestContext) {
	views, err := h.applicants.ListWithTags(ctx)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"applicants": views})
}

// Delete 删除申请人
func (h *ApplicantHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.applicants.Delete(ctx, id); err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"deleted": id})
}
