package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-ai-go/internal/config"
	"interview-ai-go/internal/constants"
	"interview-ai-go/internal/storage"
)

// setupTestServices 连接本地MySQL并初始化业务服务。
// 连不上数据库时跳过测试，保证单元测试环境也能跑通整个包
func setupTestServices(t *testing.T) (*Services, *storage.Storage) {
	t.Helper()

	host := os.Getenv("MYSQL_TEST_HOST")
	if host == "" {
		host = "localhost"
	}
	database := os.Getenv("MYSQL_TEST_DATABASE")
	if database == "" {
		database = "interview_ai_test"
	}

	cfg := &config.Config{
		MySQL: config.MySQLConfig{
			Host:                   host,
			Port:                   3306,
			Username:               "root",
			Password:               os.Getenv("MYSQL_TEST_PASSWORD"),
			Database:               database,
			ConnectTimeoutSeconds:  5,
			ReadTimeoutSeconds:     10,
			WriteTimeoutSeconds:    10,
			MaxIdleConns:           2,
			MaxOpenConns:           10,
			ConnMaxLifetimeMinutes: 10,
			ConnMaxIdleTimeMinutes: 5,
			LogLevel:               1,
		},
		Dashboard: config.DashboardConfig{StatsCacheTTLSeconds: 30},
	}

	mysql, err := storage.NewMySQL(&cfg.MySQL)
	if err != nil {
		t.Skipf("连不上测试MySQL，跳过集成测试: %v", err)
	}
	t.Cleanup(func() { _ = mysql.Close() })

	store := &storage.Storage{MySQL: mysql}
	require.NoError(t, store.MySQL.SeedBaseData(context.Background()), "写入基础目录数据失败")

	return NewServices(store, cfg), store
}

// registerTestApplicant 登记一个带两个技术栈标签的申请人
func registerTestApplicant(t *testing.T, services *Services) *ApplicantView {
	t.Helper()

	view, err := services.Applicants.Register(context.Background(), RegisterApplicantInput{
		Username:     fmt.Sprintf("tester-%d", time.Now().UnixNano()),
		Email:        fmt.Sprintf("tester-%d@example.com", time.Now().UnixNano()),
		Location:     "서울",
		PositionID:   1,
		ExperienceID: 1,
		TechStackIDs: []uint64{1, 2},
	})
	require.NoError(t, err, "登记申请人失败")
	return view
}

// TestRegisterAndFindWithTags 登记后查询应返回解析好的目录标题
func TestRegisterAndFindWithTags(t *testing.T) {
	services, _ := setupTestServices(t)
	ctx := context.Background()

	view := registerTestApplicant(t, services)
	assert.Equal(t, constants.StatusWaiting, view.Applicant.Status, "新申请人应处于WAITING状态")
	assert.NotEmpty(t, view.PositionTitle)
	assert.NotEmpty(t, view.ExperienceTitle)
	assert.Len(t, view.TechStackNames, 2)

	found, err := services.Applicants.FindWithTags(ctx, view.Applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, view.TechStackNames, found.TechStackNames)
}

// TestRegisterRollbackOnBadTechStack 技术栈ID解析失败时不应留下半个申请人
func TestRegisterRollbackOnBadTechStack(t *testing.T) {
	services, _ := setupTestServices(t)
	ctx := context.Background()

	before, err := services.Applicants.ListWithTags(ctx)
	require.NoError(t, err)

	_, err = services.Applicants.Register(ctx, RegisterApplicantInput{
		Username:     "rollback-tester",
		Email:        "rollback@example.com",
		PositionID:   1,
		ExperienceID: 1,
		TechStackIDs: []uint64{1, 999999999},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "未知技术栈ID应返回NotFound")

	after, err := services.Applicants.ListWithTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after), "失败的登记不应写入任何申请人")
}

// TestInterviewLifecycle 完整走一遍面试状态机：
// 开始 -> 两轮对话 -> 完成 -> 重复完成冲突 -> 评分 -> 重复评分冲突
func TestInterviewLifecycle(t *testing.T) {
	services, _ := setupTestServices(t)
	ctx := context.Background()

	applicant := registerTestApplicant(t, services)

	interview, err := services.Interviews.Start(ctx, applicant.Applicant.ID, constants.DefaultManagerID)
	require.NoError(t, err, "开始面试失败")
	assert.Nil(t, interview.DoneAt, "新面试的完成时间应为空")

	// 开始面试后申请人状态应推进到INTERVIEWING
	afterStart, err := services.Applicants.FindWithTags(ctx, applicant.Applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInterviewing, afterStart.Applicant.Status)

	// 两轮对话按追加顺序返回
	_, err = services.Interviews.AddTurn(ctx, interview.ID, "안녕하세요", true)
	require.NoError(t, err)
	_, err = services.Interviews.AddTurn(ctx, interview.ID, "반갑습니다", false)
	require.NoError(t, err)

	turns, err := services.Interviews.Turns(ctx, interview.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "안녕하세요", turns[0].Content)
	assert.True(t, turns[0].IsManager)
	assert.Equal(t, "반갑습니다", turns[1].Content)
	assert.False(t, turns[1].IsManager)
	assert.Less(t, turns[0].Sequence, turns[1].Sequence)

	completed, err := services.Interviews.Complete(ctx, interview.ID)
	require.NoError(t, err)
	require.NotNil(t, completed.DoneAt)

	// 完成是单向的：重复完成返回冲突，时间戳不被覆盖
	_, err = services.Interviews.Complete(ctx, interview.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))

	report, err := services.Reports.RecordScore(ctx, interview.ID, 85, "good")
	require.NoError(t, err)
	require.NotNil(t, report.Score)
	assert.Equal(t, 85, *report.Score)

	// 一场面试至多一份评分报告
	_, err = services.Reports.RecordScore(ctx, interview.ID, 90, "again")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))

	// 看板上该申请人应显示completed/85
	dashboard, err := services.Dashboard.MainDashboard(ctx)
	require.NoError(t, err)
	var entry *DashboardEntry
	for i := range dashboard.Applicants {
		if dashboard.Applicants[i].Applicant.ID == applicant.Applicant.ID {
			entry = &dashboard.Applicants[i]
			break
		}
	}
	require.NotNil(t, entry, "看板应包含该申请人")
	assert.Equal(t, constants.InterviewOutcomeCompleted, entry.InterviewStatus)
	require.NotNil(t, entry.Score)
	assert.Equal(t, 85, *entry.Score)
}

// TestRecordScoreValidation 评分必须落在[0,100]
func TestRecordScoreValidation(t *testing.T) {
	services, _ := setupTestServices(t)
	ctx := context.Background()

	applicant := registerTestApplicant(t, services)
	interview, err := services.Interviews.Start(ctx, applicant.Applicant.ID, constants.DefaultManagerID)
	require.NoError(t, err)

	_, err = services.Reports.RecordScore(ctx, interview.ID, -1, "")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = services.Reports.RecordScore(ctx, interview.ID, 101, "")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

// TestProjectHistoryRoundTrip 项目创建后读回应还原同一组技术栈（主技术栈在前）
func TestProjectHistoryRoundTrip(t *testing.T) {
	services, _ := setupTestServices(t)
	ctx := context.Background()

	applicant := registerTestApplicant(t, services)

	created, err := services.Histories.CreateProjectHistory(ctx, CreateProjectHistoryInput{
		ApplicantID:  applicant.Applicant.ID,
		Title:        "커머스 플랫폼",
		Description:  "주문/결제 모듈 개발",
		TechStackIDs: []uint64{1, 2, 3},
	})
	require.NoError(t, err)
	require.Len(t, created.TechStacks, 3)

	views, err := services.Histories.ListProjectHistories(ctx, applicant.Applicant.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	got := make([]uint64, 0, len(views[0].TechStacks))
	for _, stack := range views[0].TechStacks {
		got = append(got, stack.ID)
	}
	assert.Equal(t, []uint64{1, 2, 3}, got)

	// description里应带旧格式的文本标记（只编码次要技术栈）
	assert.Contains(t, views[0].Project.Description, "사용 기술: ")
}

// TestDashboardStats 统计应包含全部三个状态的计数，且总数自洽
func TestDashboardStats(t *testing.T) {
	services, _ := setupTestServices(t)
	ctx := context.Background()

	registerTestApplicant(t, services)

	stats, err := services.Dashboard.Stats(ctx)
	require.NoError(t, err)

	require.Len(t, stats.CountByStatus, 3, "三个状态都应出现在计数里")
	var sum int64
	for _, status := range constants.ApplicantStatuses {
		count, ok := stats.CountByStatus[status]
		assert.True(t, ok, "状态 %s 缺失", status)
		sum += count
	}
	assert.Equal(t, stats.TotalApplicants, sum, "各状态计数之和应等于总数")
	assert.GreaterOrEqual(t, stats.AverageScore, 0.0)
}

// TestUpdateStatusRejectsUnknown 未知状态值应被拒绝
func TestUpdateStatusRejectsUnknown(t *testing.T) {
	services, _ := setupTestServices(t)
	ctx := context.Background()

	applicant := registerTestApplicant(t, services)

	_, err := services.Applicants.UpdateStatus(ctx, applicant.Applicant.ID, "CANCELLED")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	view, err := services.Applicants.UpdateStatus(ctx, applicant.Applicant.ID, constants.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusCompleted, view.Applicant.Status)
}

// TestAddTurnConcurrent 并发追加对话：成功的序号互不重复，
// 撞到唯一索引的失败以Conflict返回而不是裸数据库错误
func TestAddTurnConcurrent(t *testing.T) {
	services, _ := setupTestServices(t)
	ctx := context.Background()

	applicant := registerTestApplicant(t, services)
	interview, err := services.Interviews.Start(ctx, applicant.Applicant.ID, constants.DefaultManagerID)
	require.NoError(t, err)

	const workers = 5
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = services.Interviews.AddTurn(ctx, interview.ID, fmt.Sprintf("동시 발화 %d", idx), false)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			assert.True(t, errors.Is(err, ErrConflict), "并发失败应翻译为Conflict, 实际: %v", err)
		}
	}

	turns, err := services.Interviews.Turns(ctx, interview.ID)
	require.NoError(t, err)
	seen := make(map[int]bool, len(turns))
	for _, turn := range turns {
		assert.False(t, seen[turn.Sequence], "序号 %d 出现了两次", turn.Sequence)
		seen[turn.Sequence] = true
	}
}

// TestPreReportBundle 打包视图应按录入顺序返回评估描述
func TestPreReportBundle(t *testing.T) {
	services, _ := setupTestServices(t)
	ctx := context.Background()

	applicant := registerTestApplicant(t, services)

	for _, desc := range []string{"첫 번째 평가", "두 번째 평가"} {
		_, err := services.Reports.RecordPreReport(ctx, RecordPreReportInput{
			ApplicantID: applicant.Applicant.ID,
			Description: desc,
		})
		require.NoError(t, err)
	}

	bundle, err := services.Dashboard.PreReportBundle(ctx, applicant.Applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"첫 번째 평가", "두 번째 평가"}, bundle.FinalDescriptions)
}
