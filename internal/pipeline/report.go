package pipeline

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"interview-ai-go/internal/constants"
	"interview-ai-go/internal/logger"
	"interview-ai-go/internal/storage"
	"interview-ai-go/internal/storage/models"
)

// ReportService 负责面试前评估和面试后评分
type ReportService struct {
	store *storage.Storage
}

// NewReportService 创建报告服务
func NewReportService(store *storage.Storage) *ReportService {
	return &ReportService{store: store}
}

// RecordScore 为面试录入评分报告。
// 每场面试至多一份报告：已存在时返回冲突错误，唯一索引兜底并发写入
func (s *ReportService) RecordScore(ctx context.Context, interviewID uint64, score int, description string) (*models.PostReport, error) {
	const op = "record_score"

	if score < constants.MinScore || score > constants.MaxScore {
		return nil, newInvalidInputError("post_report", op,
			fmt.Sprintf("score 必须在 %d~%d 之间, 实际: %d", constants.MinScore, constants.MaxScore, score))
	}

	report := models.PostReport{
		InterviewID: interviewID,
		Score:       &score,
		Description: description,
	}

	db := s.store.MySQL.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Interview{}, interviewID).Error; err != nil {
			return wrapLookupErr(err, "interview", interviewID, op)
		}

		var existing models.PostReport
		err := tx.Where("interview_id = ?", interviewID).First(&existing).Error
		if err == nil {
			return newConflictError("post_report", existing.ID, op, "该面试已有评分报告")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&report).Error; err != nil {
			// 并发录入绕过预检时，interview_id唯一索引兜底
			return wrapDuplicateErr(err, "post_report", interviewID, op, "该面试已有评分报告")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateStatsCache(ctx, s.store)
	logger.Ctx(ctx).Info().
		Uint64("interview_id", interviewID).
		Int("score", score).
		Msg("评分报告录入成功")
	return &report, nil
}

// UpdateScore 按面试ID原地更新评分报告
func (s *ReportService) UpdateScore(ctx context.Context, interviewID uint64, score int, description string) (*models.PostReport, error) {
	const op = "update_score"

	if score < constants.MinScore || score > constants.MaxScore {
		return nil, newInvalidInputError("post_report", op,
			fmt.Sprintf("score 必须在 %d~%d 之间, 实际: %d", constants.MinScore, constants.MaxScore, score))
	}

	var report models.PostReport

	db := s.store.MySQL.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("interview_id = ?", interviewID).First(&report).Error; err != nil {
			return wrapLookupErr(err, "post_report", interviewID, op)
		}
		updates := map[string]interface{}{
			"score":       score,
			"description": description,
		}
		if err := tx.Model(&report).Updates(updates).Error; err != nil {
			return err
		}
		report.Score = &score
		report.Description = description
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateStatsCache(ctx, s.store)
	return &report, nil
}

// FindByInterview 查询面试的评分报告
func (s *ReportService) FindByInterview(ctx context.Context, interviewID uint64) (*models.PostReport, error) {
	const op = "find_post_report"

	db := s.store.MySQL.DB().WithContext(ctx)
	var report models.PostReport
	err := db.Where("interview_id = ?", interviewID).First(&report).Error
	if err != nil {
		return nil, wrapLookupErr(err, "post_report", interviewID, op)
	}
	return &report, nil
}

// RecordPreReportInput 面试前评估入参。
// WorkHistoryID/ProjectHistoryID 可选，填写时必须指向该申请人名下的记录
type RecordPreReportInput struct {
	ApplicantID      uint64
	WorkHistoryID    *uint64
	ProjectHistoryID *uint64
	Description      string
}

// RecordPreReport 录入面试前评估
func (s *ReportService) RecordPreReport(ctx context.Context, in RecordPreReportInput) (*models.PreReport, error) {
	const op = "record_pre_report"

	report := models.PreReport{
		ApplicantID:      in.ApplicantID,
		WorkHistoryID:    in.WorkHistoryID,
		ProjectHistoryID: in.ProjectHistoryID,
		Description:      in.Description,
	}

	db := s.store.MySQL.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Applicant{}, in.ApplicantID).Error; err != nil {
			return wrapLookupErr(err, "applicant", in.ApplicantID, op)
		}

		if in.WorkHistoryID != nil {
			var wh models.WorkHistory
			if err := tx.First(&wh, *in.WorkHistoryID).Error; err != nil {
				return wrapLookupErr(err, "work_history", *in.WorkHistoryID, op)
			}
			if wh.ApplicantID != in.ApplicantID {
				return newInvalidInputError("pre_report", op, "work_history 不属于该申请人")
			}
		}
		if in.ProjectHistoryID != nil {
			var ph models.ProjectHistory
			if err := tx.First(&ph, *in.ProjectHistoryID).Error; err != nil {
				return wrapLookupErr(err, "project_history", *in.ProjectHistoryID, op)
			}
			if ph.ApplicantID != in.ApplicantID {
				return newInvalidInputError("pre_report", op, "project_history 不属于该申请人")
			}
		}

		return tx.Create(&report).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Uint64("pre_report_id", report.ID).
		Uint64("applicant_id", in.ApplicantID).
		Msg("面试前评估录入成功")
	return &report, nil
}

// ListPreReports 查询某申请人的全部面试前评估，按录入顺序返回
func (s *ReportService) ListPreReports(ctx context.Context, applicantID uint64) ([]models.PreReport, error) {
	db := s.store.MySQL.DB().WithContext(ctx)
	var reports []models.PreReport
	err := db.Where("applicant_id = ?", applicantID).
		Order("id").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
