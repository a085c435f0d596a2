package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"interview-ai-go/internal/api/handler"
	"interview-ai-go/internal/pipeline"
	"interview-ai-go/internal/storage"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, services *pipeline.Services, store *storage.Storage) {
	applicantHandler := handler.NewApplicantHandler(services.Applicants)
	historyHandler := handler.NewHistoryHandler(services.Histories)
	interviewHandler := handler.NewInterviewHandler(services.Interviews)
	reportHandler := handler.NewReportHandler(services.Reports)
	dashboardHandler := handler.NewDashboardHandler(services.Dashboard)
	catalogHandler := handler.NewCatalogHandler(store)

	api := h.Group("/api/v1")

	// 申请人
	api.POST("/applicants/register", applicantHandler.Register)
	api.GET("/applicants", applicantHandler.List)
	api.GET("/applicants/:id", applicantHandler.Get)
	api.PUT("/applicants/:id/status", applicantHandler.UpdateStatus)
	api.DELETE("/applicants/:id", applicantHandler.Delete)

	// 工作/项目经历
	api.POST("/work-histories", historyHandler.CreateWorkHistory)
	api.GET("/applicants/:id/work-histories", historyHandler.ListWorkHistories)
	api.DELETE("/work-histories/:id", historyHandler.DeleteWorkHistory)
	api.POST("/project-histories", historyHandler.CreateProjectHistory)
	api.GET("/applicants/:id/project-histories", historyHandler.ListProjectHistories)
	api.DELETE("/project-histories/:id", historyHandler.DeleteProjectHistory)

	// 面试
	api.POST("/interviews/start", interviewHandler.Start)
	api.POST("/interviews/:id/conversations", interviewHandler.AddTurn)
	api.GET("/interviews/:id/conversations", interviewHandler.ListTurns)
	api.PUT("/interviews/:id/complete", interviewHandler.Complete)
	api.GET("/applicants/:id/interviews", interviewHandler.ListByApplicant)

	// 评估与评分
	api.POST("/interviews/:id/score", reportHandler.RecordScore)
	api.PUT("/interviews/:id/score", reportHandler.UpdateScore)
	api.GET("/interviews/:id/score", reportHandler.GetByInterview)
	api.POST("/pre-reports", reportHandler.RecordPreReport)
	api.GET("/pre-reports/applicant/:id", dashboardHandler.PreReportBundle)

	// 看板
	api.GET("/dashboard/stats", dashboardHandler.Stats)
	api.GET("/dashboard/main", dashboardHandler.Main)

	// 目录
	api.GET("/catalog/positions", catalogHandler.ListPositions)
	api.GET("/catalog/experiences", catalogHandler.ListExperiences)
	api.GET("/catalog/tech-stacks", catalogHandler.ListTechStacks)

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
