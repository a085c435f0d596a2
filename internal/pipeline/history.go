package pipeline

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"interview-ai-go/internal/logger"
	"interview-ai-go/internal/storage"
	"interview-ai-go/internal/storage/models"
)

// HistoryService 负责申请人名下的工作经历与项目经历
type HistoryService struct {
	store *storage.Storage
}

// NewHistoryService 创建经历服务
func NewHistoryService(store *storage.Storage) *HistoryService {
	return &HistoryService{store: store}
}

// CreateWorkHistoryInput 工作经历入参
type CreateWorkHistoryInput struct {
	ApplicantID uint64
	CompanyName string
	PositionID  uint64
	StartDate   datatypes.Date
	EndDate     *datatypes.Date // 为空表示在职
}

// CreateWorkHistory 创建工作经历，写入前校验申请人和职位引用
func (s *HistoryService) CreateWorkHistory(ctx context.Context, in CreateWorkHistoryInput) (*models.WorkHistory, error) {
	const op = "create_work_history"

	if in.CompanyName == "" {
		return nil, newInvalidInputError("work_history", op, "company_name 不能为空")
	}

	history := models.WorkHistory{
		ApplicantID: in.ApplicantID,
		CompanyName: in.CompanyName,
		PositionID:  in.PositionID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}

	db := s.store.MySQL.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Applicant{}, in.ApplicantID).Error; err != nil {
			return wrapLookupErr(err, "applicant", in.ApplicantID, op)
		}
		if err := tx.First(&models.Position{}, in.PositionID).Error; err != nil {
			return wrapLookupErr(err, "position", in.PositionID, op)
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// ListWorkHistories 查询某申请人的全部工作经历
func (s *HistoryService) ListWorkHistories(ctx context.Context, applicantID uint64) ([]models.WorkHistory, error) {
	db := s.store.MySQL.DB().WithContext(ctx)
	var histories []models.WorkHistory
	err := db.Preload("Position").
		Where("applicant_id = ?", applicantID).
		Order("id").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

// DeleteWorkHistory 删除工作经历
func (s *HistoryService) DeleteWorkHistory(ctx context.Context, id uint64) error {
	const op = "delete_work_history"

	db := s.store.MySQL.DB().WithContext(ctx)
	result := db.Delete(&models.WorkHistory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return newNotFoundError("work_history", id, op)
	}
	return nil
}

// CreateProjectHistoryInput 项目经历入参。
// TechStackIDs 的第一个元素作为主技术栈，其余作为次要技术栈
type CreateProjectHistoryInput struct {
	ApplicantID  uint64
	Title        string
	Description  string
	TechStackIDs []uint64
}

// ProjectHistoryView 项目经历及其完整技术栈列表（主技术栈在前）
type ProjectHistoryView struct {
	Project    models.ProjectHistory `json:"project"`
	TechStacks []models.TechStack    `json:"tech_stacks"`
}

// CreateProjectHistory 创建项目经历。
// 次要技术栈同时写入project_techs关联表和description文本标记，
// 文本标记保持旧格式以兼容存量数据
func (s *HistoryService) CreateProjectHistory(ctx context.Context, in CreateProjectHistoryInput) (*ProjectHistoryView, error) {
	const op = "create_project_history"

	if in.Title == "" {
		return nil, newInvalidInputError("project_history", op, "title 不能为空")
	}
	if len(in.TechStackIDs) == 0 {
		return nil, newInvalidInputError("project_history", op, "tech_stack_ids 不能为空")
	}

	var project models.ProjectHistory
	var stacks []models.TechStack

	db := s.store.MySQL.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Applicant{}, in.ApplicantID).Error; err != nil {
			return wrapLookupErr(err, "applicant", in.ApplicantID, op)
		}

		// 去重并逐个解析技术栈ID
		seen := make(map[uint64]bool, len(in.TechStackIDs))
		for _, id := range in.TechStackIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			var stack models.TechStack
			if err := tx.First(&stack, id).Error; err != nil {
				return wrapLookupErr(err, "tech_stack", id, op)
			}
			stacks = append(stacks, stack)
		}

		secondaryTitles := make([]string, 0, len(stacks)-1)
		for _, stack := range stacks[1:] {
			secondaryTitles = append(secondaryTitles, stack.Title)
		}

		project = models.ProjectHistory{
			ApplicantID:        in.ApplicantID,
			Title:              in.Title,
			Description:        appendTechMarker(in.Description, secondaryTitles),
			PrimaryTechStackID: stacks[0].ID,
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		for _, stack := range stacks[1:] {
			link := models.ProjectTech{ProjectHistoryID: project.ID, TechStackID: stack.ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Uint64("project_id", project.ID).
		Uint64("applicant_id", in.ApplicantID).
		Int("tech_stacks", len(stacks)).
		Msg("项目经历创建成功")

	return &ProjectHistoryView{Project: project, TechStacks: stacks}, nil
}

// ListProjectHistories 查询某申请人的全部项目经历，并还原每个项目的完整技术栈
func (s *HistoryService) ListProjectHistories(ctx context.Context, applicantID uint64) ([]ProjectHistoryView, error) {
	db := s.store.MySQL.DB().WithContext(ctx)
	var projects []models.ProjectHistory
	err := db.Preload("PrimaryTechStack").
		Preload("SecondaryTechs.TechStack").
		Where("applicant_id = ?", applicantID).
		Order("id").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	// 解析description标记需要整张技术栈目录，只加载一次
	var catalog []models.TechStack
	if err := db.Find(&catalog).Error; err != nil {
		return nil, err
	}

	views := make([]ProjectHistoryView, 0, len(projects))
	for _, p := range projects {
		views = append(views, buildProjectView(p, catalog))
	}
	return views, nil
}

// DeleteProjectHistory 删除项目经历；关联表记录级联清理
func (s *HistoryService) DeleteProjectHistory(ctx context.Context, id uint64) error {
	const op = "delete_project_history"

	db := s.store.MySQL.DB().WithContext(ctx)
	result := db.Delete(&models.ProjectHistory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return newNotFoundError("project_history", id, op)
	}
	return nil
}

// buildProjectView 还原项目的完整技术栈集合：
// 主技术栈优先，其次是关联表记录；没有关联表记录的存量行
// 回退到解析description里的文本标记
func buildProjectView(p models.ProjectHistory, catalog []models.TechStack) ProjectHistoryView {
	seen := make(map[uint64]bool)
	stacks := make([]models.TechStack, 0, 1+len(p.SecondaryTechs))

	if p.PrimaryTechStack != nil {
		seen[p.PrimaryTechStack.ID] = true
		stacks = append(stacks, *p.PrimaryTechStack)
	}

	if len(p.SecondaryTechs) > 0 {
		for _, link := range p.SecondaryTechs {
			if link.TechStack != nil && !seen[link.TechStack.ID] {
				seen[link.TechStack.ID] = true
				stacks = append(stacks, *link.TechStack)
			}
		}
	} else {
		titles := extractTechTitles(p.Description)
		stacks = append(stacks, matchTitlesToStacks(titles, catalog, seen)...)
	}

	return ProjectHistoryView{Project: p, TechStacks: stacks}
}
