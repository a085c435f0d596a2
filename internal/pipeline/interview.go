package pipeline

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"interview-ai-go/internal/constants"
	"interview-ai-go/internal/logger"
	"interview-ai-go/internal/storage"
	"interview-ai-go/internal/storage/models"
)

// InterviewService 负责面试会话的状态机：
// 无面试记录 -> 进行中(doneAt为空) -> 已完成(doneAt写入，不可回退)
type InterviewService struct {
	store *storage.Storage
}

// NewInterviewService 创建面试服务
func NewInterviewService(store *storage.Storage) *InterviewService {
	return &InterviewService{store: store}
}

// Start 为申请人开启一场面试。
// 面试官按ID幂等写入（默认面试官在启动时已存在）；
// 同一事务内把申请人状态推进到INTERVIEWING。
// 数据模型允许同一申请人存在多场面试
func (s *InterviewService) Start(ctx context.Context, applicantID, managerID uint64) (*models.Interview, error) {
	const op = "start_interview"

	var interview models.Interview

	db := s.store.MySQL.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		var applicant models.Applicant
		if err := tx.First(&applicant, applicantID).Error; err != nil {
			return wrapLookupErr(err, "applicant", applicantID, op)
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Manager{ID: managerID}).Error; err != nil {
			return err
		}

		interview = models.Interview{
			ManagerID:   managerID,
			ApplicantID: applicantID,
		}
		if err := tx.Create(&interview).Error; err != nil {
			return err
		}

		return tx.Model(&applicant).Update("status", constants.StatusInterviewing).Error
	})
	if err != nil {
		return nil, err
	}

	invalidateStatsCache(ctx, s.store)
	logger.Ctx(ctx).Info().
		Uint64("interview_id", interview.ID).
		Uint64("applicant_id", applicantID).
		Uint64("manager_id", managerID).
		Msg("面试开始")
	return &interview, nil
}

// AddTurn 追加一条对话。Sequence在事务内取当前最大值加一，
// 唯一索引兜底并发下的重复序号
func (s *InterviewService) AddTurn(ctx context.Context, interviewID uint64, content string, isManager bool) (*models.Conversation, error) {
	const op = "add_conversation_turn"

	if content == "" {
		return nil, newInvalidInputError("conversation", op, "content 不能为空")
	}

	var turn models.Conversation

	db := s.store.MySQL.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Interview{}, interviewID).Error; err != nil {
			return wrapLookupErr(err, "interview", interviewID, op)
		}

		var maxSeq int
		if err := tx.Model(&models.Conversation{}).
			Where("interview_id = ?", interviewID).
			Select("COALESCE(MAX(sequence), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}

		turn = models.Conversation{
			InterviewID: interviewID,
			Content:     content,
			IsManager:   isManager,
			Sequence:    maxSeq + 1,
		}
		if err := tx.Create(&turn).Error; err != nil {
			// 并发追加撞到同一序号时唯一索引报冲突，调用方可重试
			return wrapDuplicateErr(err, "conversation", interviewID, op, "对话序号被并发占用")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &turn, nil
}

// Turns 按追加顺序返回面试的全部对话
func (s *InterviewService) Turns(ctx context.Context, interviewID uint64) ([]models.Conversation, error) {
	const op = "list_conversation_turns"

	db := s.store.MySQL.DB().WithContext(ctx)
	if err := db.First(&models.Interview{}, interviewID).Error; err != nil {
		return nil, wrapLookupErr(err, "interview", interviewID, op)
	}

	var turns []models.Conversation
	err := db.Where("interview_id = ?", interviewID).
		Order("sequence").
		Find(&turns).Error
	if err != nil {
		return nil, err
	}
	return turns, nil
}

// Complete 结束面试，写入完成时间。
// doneAt只写一次：重复完成返回冲突错误，时间戳不会被覆盖
func (s *InterviewService) Complete(ctx context.Context, interviewID uint64) (*models.Interview, error) {
	const op = "complete_interview"

	var interview models.Interview

	db := s.store.MySQL.DB().WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&interview, interviewID).Error; err != nil {
			return wrapLookupErr(err, "interview", interviewID, op)
		}
		if interview.DoneAt != nil {
			return newConflictError("interview", interviewID, op, "面试已完成")
		}

		now := time.Now()
		if err := tx.Model(&interview).Update("done_at", now).Error; err != nil {
			return err
		}
		interview.DoneAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateStatsCache(ctx, s.store)
	logger.Ctx(ctx).Info().Uint64("interview_id", interviewID).Msg("面试完成")
	return &interview, nil
}

// FindByApplicant 查询申请人的面试记录，最近开始的在前
func (s *InterviewService) FindByApplicant(ctx context.Context, applicantID uint64) ([]models.Interview, error) {
	db := s.store.MySQL.DB().WithContext(ctx)
	var interviews []models.Interview
	err := db.Where("applicant_id = ?", applicantID).
		Order("id DESC").
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	return interviews, nil
}
