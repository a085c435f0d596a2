package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"interview-ai-go/internal/config"
	"interview-ai-go/internal/constants"
	"interview-ai-go/internal/logger"
	"interview-ai-go/internal/storage"
	"interview-ai-go/internal/storage/models"
)

// DashboardService 负责跨实体的聚合统计和看板视图
type DashboardService struct {
	store     *storage.Storage
	cfg       *config.Config
	histories *HistoryService
	reports   *ReportService
}

// NewDashboardService 创建看板服务
func NewDashboardService(store *storage.Storage, cfg *config.Config) *DashboardService {
	return &DashboardService{
		store:     store,
		cfg:       cfg,
		histories: NewHistoryService(store),
		reports:   NewReportService(store),
	}
}

// StatsView 看板统计结果
type StatsView struct {
	TotalApplicants int64            `json:"total_applicants"`
	CountByStatus   map[string]int64 `json:"count_by_status"`
	AverageScore    float64          `json:"average_score"`
}

// DashboardEntry 看板里的单个申请人条目，
// InterviewStatus/Score 由最近一场面试推导
type DashboardEntry struct {
	ApplicantView
	InterviewStatus string `json:"interview_status"`
	Score           *int   `json:"score"`
}

// MainDashboardView 看板主视图
type MainDashboardView struct {
	Stats      StatsView        `json:"stats"`
	Applicants []DashboardEntry `json:"applicants"`
}

// PreReportBundleView 面试前评估打包视图：
// 申请人的全部工作经历、项目经历和评估描述
type PreReportBundleView struct {
	WorkHistories     []models.WorkHistory `json:"work_histories"`
	ProjectHistories  []ProjectHistoryView `json:"project_histories"`
	FinalDescriptions []string             `json:"final_descriptions"`
}

// Stats 计算看板统计，走缓存旁路：
// 命中Redis缓存直接返回，未命中查库后回填，写路径负责失效
func (s *DashboardService) Stats(ctx context.Context) (*StatsView, error) {
	if cached := s.statsFromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	s.statsToCache(ctx, stats)
	return stats, nil
}

func (s *DashboardService) statsFromCache(ctx context.Context) *StatsView {
	if s.store.Redis == nil {
		return nil
	}
	payload, err := s.store.Redis.GetDashboardStats(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrCacheMiss) {
			logger.Ctx(ctx).Warn().Err(err).Msg("读取看板统计缓存失败")
		}
		return nil
	}
	var stats StatsView
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("看板统计缓存内容损坏，回源查库")
		return nil
	}
	return &stats
}

func (s *DashboardService) statsToCache(ctx context.Context, stats *StatsView) {
	if s.store.Redis == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	ttl := time.Duration(s.cfg.Dashboard.StatsCacheTTLSeconds) * time.Second
	if err := s.store.Redis.SetDashboardStats(ctx, string(payload), ttl); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("写入看板统计缓存失败")
	}
}

// computeStats 用分组计数和聚合函数查库，不逐行遍历
func (s *DashboardService) computeStats(ctx context.Context) (*StatsView, error) {
	db := s.store.MySQL.DB().WithContext(ctx)

	var total int64
	if err := db.Model(&models.Applicant{}).Count(&total).Error; err != nil {
		return nil, err
	}

	// 三个状态先置零，保证没有申请人的状态也出现在结果里
	counts := make(map[string]int64, len(constants.ApplicantStatuses))
	for _, status := range constants.ApplicantStatuses {
		counts[status] = 0
	}
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := db.Model(&models.Applicant{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	// 没有任何评分时平均分为0.0，而不是错误
	var avg *float64
	err = db.Model(&models.PostReport{}).
		Select("AVG(score)").
		Where("score IS NOT NULL").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	return &StatsView{
		TotalApplicants: total,
		CountByStatus:   counts,
		AverageScore:    averageOrZero(avg),
	}, nil
}

// averageOrZero 把SQL聚合的可空平均值折算成展示值：
// 一条评分都没有时AVG返回NULL，看板上显示0.0而不是错误或NaN
func averageOrZero(avg *float64) float64 {
	if avg == nil {
		return 0.0
	}
	return *avg
}

// MainDashboard 组装看板主视图：统计 + 每个申请人的展示信息
// 和由其最近一场面试推导出的进度/评分
func (s *DashboardService) MainDashboard(ctx context.Context) (*MainDashboardView, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	db := s.store.MySQL.DB().WithContext(ctx)
	var applicants []models.Applicant
	err = db.Preload("Position").
		Preload("Experience").
		Preload("Tags.TechStack").
		Order("id").
		Find(&applicants).Error
	if err != nil {
		return nil, err
	}

	// 一次性取出全部面试，id倒序，每个申请人首条即最近开始的一场
	var interviews []models.Interview
	if err := db.Order("id DESC").Find(&interviews).Error; err != nil {
		return nil, err
	}
	latestByApplicant := make(map[uint64]*models.Interview, len(interviews))
	var interviewIDs []uint64
	for i := range interviews {
		iv := &interviews[i]
		if _, ok := latestByApplicant[iv.ApplicantID]; !ok {
			latestByApplicant[iv.ApplicantID] = iv
			interviewIDs = append(interviewIDs, iv.ID)
		}
	}

	reportByInterview := make(map[uint64]*models.PostReport)
	if len(interviewIDs) > 0 {
		var reports []models.PostReport
		if err := db.Where("interview_id IN ?", interviewIDs).Find(&reports).Error; err != nil {
			return nil, err
		}
		for i := range reports {
			r := &reports[i]
			if _, ok := reportByInterview[r.InterviewID]; !ok {
				reportByInterview[r.InterviewID] = r
			}
		}
	}

	entries := make([]DashboardEntry, 0, len(applicants))
	for _, a := range applicants {
		latest := latestByApplicant[a.ID]
		var report *models.PostReport
		if latest != nil {
			report = reportByInterview[latest.ID]
		}
		status, score := deriveInterviewOutcome(latest, report)
		entries = append(entries, DashboardEntry{
			ApplicantView:   buildApplicantView(a),
			InterviewStatus: status,
			Score:           score,
		})
	}

	return &MainDashboardView{Stats: *stats, Applicants: entries}, nil
}

// PreReportBundle 打包某申请人的面试前材料
func (s *DashboardService) PreReportBundle(ctx context.Context, applicantID uint64) (*PreReportBundleView, error) {
	const op = "pre_report_bundle"

	db := s.store.MySQL.DB().WithContext(ctx)
	if err := db.First(&models.Applicant{}, applicantID).Error; err != nil {
		return nil, wrapLookupErr(err, "applicant", applicantID, op)
	}

	workHistories, err := s.histories.ListWorkHistories(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	projectHistories, err := s.histories.ListProjectHistories(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	preReports, err := s.reports.ListPreReports(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	descriptions := make([]string, 0, len(preReports))
	for _, r := range preReports {
		descriptions = append(descriptions, r.Description)
	}

	return &PreReportBundleView{
		WorkHistories:     workHistories,
		ProjectHistories:  projectHistories,
		FinalDescriptions: descriptions,
	}, nil
}

// deriveInterviewOutcome 由最近一场面试推导看板进度：
// 没有面试或面试未完成 -> pending且无分数；
// 面试已完成 -> completed，分数取其评分报告（可能还没录入）
func deriveInterviewOutcome(latest *models.Interview, report *models.PostReport) (string, *int) {
	if latest == nil || latest.DoneAt == nil {
		return constants.InterviewOutcomePending, nil
	}
	if report == nil {
		return constants.InterviewOutcomeCompleted, nil
	}
	return constants.InterviewOutcomeCompleted, report.Score
}
