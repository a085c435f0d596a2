package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"interview-ai-go/internal/storage"
	"interview-ai-go/internal/storage/models"
)

// CatalogHandler 只读目录接口（职位/经验/技术栈），
// 前端登记表单的下拉选项来源
type CatalogHandler struct {
	storage *storage.Storage
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(storage *storage.Storage) *CatalogHandler {
	return &CatalogHandler{storage: storage}
}

// ListPositions 查询全部职位
func (h *CatalogHandler) ListPositions(ctx context.Context, c *app.RequestContext) {
	var positions []models.Position
	if err := h.storage.MySQL.DB().WithContext(ctx).Order("id").Find(&positions).Error; err != nil {
		c.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
		return
	}
	c.JSON(consts.StatusOK, utils.H{"positions": positions})
}

// ListExperiences 查询全部经验年限
func (h *CatalogHandler) ListExperiences(ctx context.Context, c *app.RequestContext) {
	var experiences []models.Experience
	if err := h.storage.MySQL.DB().WithContext(ctx).Order("id").Find(&experiences).Error; err != nil {
		c.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
		return
	}
	c.JSON(consts.StatusOK, utils.H{"experiences": experiences})
}

// ListTechStacks 查询全部技术栈
func (h *CatalogHandler) ListTechStacks(ctx context.Context, c *app.RequestContext) {
	var stacks []models.TechStack
	if err := h.storage.MySQL.DB().WithContext(ctx).Order("id").Find(&stacks).Error; err != nil {
		c.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
		return
	}
	c.JSON(consts.StatusOK, utils.H{"tech_stacks": stacks})
}
