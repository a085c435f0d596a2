package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"interview-ai-go/internal/constants"
	"interview-ai-go/internal/pipeline"
)

// InterviewHandler 面试相关接口
type InterviewHandler struct {
	interviews *pipeline.InterviewService
}

// NewInterviewHandler 创建面试处理器
func NewInterviewHandler(interviews *pipeline.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

// StartInterviewRequest 开始面试请求体。
// ManagerID缺省时使用默认面试官
type StartInterviewRequest struct {
	ApplicantID uint64  `json:"applicant_id"`
	ManagerID   *uint64 `json:"manager_id"`
}

// Start 开始一场面试
func (h *InterviewHandler) Start(ctx context.Context, c *app.RequestContext) {
	var req StartInterviewRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	managerID := constants.DefaultManagerID
	if req.ManagerID != nil {
		managerID = *req.ManagerID
	}

	interview, err := h.interviews.Start(ctx, req.ApplicantID, managerID)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, interview)
}

// AddTurnRequest 追加对话请求体
type AddTurnRequest struct {
	Content   string `json:"content"`
	IsManager bool   `json:"is_manager"`
}

// AddTurn 追加一条对话
func (h *InterviewHandler) AddTurn(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AddTurnRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	turn, err := h.interviews.AddTurn(ctx, id, req.Content, req.IsManager)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, turn)
}

// ListTurns 按顺序查询面试的全部对话
func (h *InterviewHandler) ListTurns(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	turns, err := h.interviews.Turns(ctx, id)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"conversations": turns})
}

// Complete 完成面试
func (h *InterviewHandler) Complete(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	interview, err := h.interviews.Complete(ctx, id)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, interview)
}

// ListByApplicant 查询某申请人的面试记录
func (h *InterviewHandler) ListByApplicant(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	interviews, err := h.interviews.FindByApplicant(ctx, id)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"interviews": interviews})
}
