package pipeline

import (
	"context"
	"time"

	"gorm.io/gorm"

	"interview-ai-go/internal/constants"
	"interview-ai-go/internal/logger"
	"interview-ai-go/internal/storage"
	"interview-ai-go/internal/storage/models"
)

// ApplicantService 负责申请人登记、状态流转和带标签的查询
type ApplicantService struct {
	store *storage.Storage
}

// NewApplicantService 创建申请人服务
func NewApplicantService(store *storage.Storage) *ApplicantService {
	return &ApplicantService{store: store}
}

// RegisterApplicantInput 申请人登记入参
type RegisterApplicantInput struct {
	Username          string
	Email             string
	Location          string
	ResumeFilePath    string
	GithubURL         string
	PortfolioURL      string
	PortfolioFilePath string
	ApplyAt           *time.Time
	PositionID        uint64
	ExperienceID      uint64
	TechStackIDs      []uint64
}

// ApplicantView 申请人及其解析后的展示信息
type ApplicantView struct {
	Applicant       models.Applicant `json:"applicant"`
	PositionTitle   string           `json:"position_title"`
	ExperienceTitle string           `json:"experience_title"`
	TechStackNames  []string         `json:"tech_stack_names"`
}

// Register 登记申请人并建立技术栈关联。
// 整个操作在一个事务内执行：任一目录ID解析失败都不会留下半个申请人。
// 入参中重复的技术栈ID会被去重
func (s *ApplicantService) Register(ctx context.Context, in RegisterApplicantInput) (*ApplicantView, error) {
	const op = "register"

	if in.Username == "" {
		return nil, newInvalidInputError("applicant", op, "username 不能为空")
	}
	if in.Email == "" {
		return nil, newInvalidInputError("applicant", op, "email 不能为空")
	}

	applicant := models.Applicant{
		Username:          in.Username,
		Email:             in.Email,
		Location:          in.Location,
		ResumeFilePath:    in.ResumeFilePath,
		GithubURL:         in.GithubURL,
		PortfolioURL:      in.PortfolioURL,
		PortfolioFilePath: in.PortfolioFilePath,
		Status:            constants.StatusWaiting,
		PositionID:        in.PositionID,
		ExperienceID:      in.ExperienceID,
	}
	if in.ApplyAt != nil {
		applicant.ApplyAt = *in.ApplyAt
	} else {
		applicant.ApplyAt = time.Now()
	}

	db := s.store.MySQL.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		var position models.Position
		if err := tx.First(&position, in.PositionID).Error; err != nil {
			return wrapLookupErr(err, "position", in.PositionID, op)
		}
		var experience models.Experience
		if err := tx.First(&experience, in.ExperienceID).Error; err != nil {
			return wrapLookupErr(err, "experience", in.ExperienceID, op)
		}

		// 去重后逐个解析技术栈ID，首个解析失败即整体回滚
		seen := make(map[uint64]bool, len(in.TechStackIDs))
		var stackIDs []uint64
		for _, id := range in.TechStackIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			var stack models.TechStack
			if err := tx.First(&stack, id).Error; err != nil {
				return wrapLookupErr(err, "tech_stack", id, op)
			}
			stackIDs = append(stackIDs, id)
		}

		if err := tx.Create(&applicant).Error; err != nil {
			return err
		}

		for _, id := range stackIDs {
			tag := models.ApplicantTech{ApplicantID: applicant.ID, TechStackID: id}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateStatsCache(ctx, s.store)
	logger.Ctx(ctx).Info().
		Uint64("applicant_id", applicant.ID).
		Str("username", applicant.Username).
		Int("tech_stacks", len(in.TechStackIDs)).
		Msg("申请人登记成功")

	return s.FindWithTags(ctx, applicant.ID)
}

// UpdateStatus 更新申请人状态。状态值必须合法，但不校验流转顺序
func (s *ApplicantService) UpdateStatus(ctx context.Context, applicantID uint64, status string) (*ApplicantView, error) {
	const op = "update_status"

	if !constants.IsValidApplicantStatus(status) {
		return nil, newInvalidInputError("applicant", op, "未知状态: "+status)
	}

	db := s.store.MySQL.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		var applicant models.Applicant
		if err := tx.First(&applicant, applicantID).Error; err != nil {
			return wrapLookupErr(err, "applicant", applicantID, op)
		}
		return tx.Model(&applicant).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}

	invalidateStatsCache(ctx, s.store)
	return s.FindWithTags(ctx, applicantID)
}

// FindWithTags 查询申请人，返回解析后的职位/经验/技术栈标题
func (s *ApplicantService) FindWithTags(ctx context.Context, applicantID uint64) (*ApplicantView, error) {
	const op = "find_with_tags"

	db := s.store.MySQL.DB().WithContext(ctx)
	var applicant models.Applicant
	err := db.Preload("Position").
		Preload("Experience").
		Preload("Tags.TechStack").
		First(&applicant, applicantID).Error
	if err != nil {
		return nil, wrapLookupErr(err, "applicant", applicantID, op)
	}

	view := buildApplicantView(applicant)
	return &view, nil
}

// ListWithTags 查询全部申请人，形状与FindWithTags一致
func (s *ApplicantService) ListWithTags(ctx context.Context) ([]ApplicantView, error) {
	db := s.store.MySQL.DB().WithContext(ctx)
	var applicants []models.Applicant
	err := db.Preload("Position").
		Preload("Experience").
		Preload("Tags.TechStack").
		Order("id").
		Find(&applicants).Error
	if err != nil {
		return nil, err
	}

	views := make([]ApplicantView, 0, len(applicants))
	for _, a := range applicants {
		views = append(views, buildApplicantView(a))
	}
	return views, nil
}

// Delete 删除申请人；标签、经历等由外键级联清理
func (s *ApplicantService) Delete(ctx context.Context, applicantID uint64) error {
	const op = "delete"

	db := s.store.MySQL.DB().WithContext(ctx)
	result := db.Delete(&models.Applicant{}, applicantID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return newNotFoundError("applicant", applicantID, op)
	}

	invalidateStatsCache(ctx, s.store)
	return nil
}

func buildApplicantView(a models.Applicant) ApplicantView {
	view := ApplicantView{
		Applicant:      a,
		TechStackNames: make([]string, 0, len(a.Tags)),
	}
	if a.Position != nil {
		view.PositionTitle = a.Position.Title
	}
	if a.Experience != nil {
		view.ExperienceTitle = a.Experience.Title
	}
	for _, tag := range a.Tags {
		if tag.TechStack != nil {
			view.TechStackNames = append(view.TechStackNames, tag.TechStack.Title)
		}
	}
	return view
}
