package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"interview-ai-go/internal/constants"
	"interview-ai-go/internal/storage/models"
)

// TestAverageOrZero 没有任何评分时AVG聚合返回NULL，
// 平均分应折算成0.0，而不是错误也不是NaN
func TestAverageOrZero(t *testing.T) {
	got := averageOrZero(nil)
	assert.Equal(t, 0.0, got)
	assert.False(t, math.IsNaN(got))

	val := 87.5
	assert.Equal(t, 87.5, averageOrZero(&val))

	zero := 0.0
	assert.Equal(t, 0.0, averageOrZero(&zero))
}

// TestDeriveInterviewOutcomeNoInterview 没有面试记录 -> pending且无分数
func TestDeriveInterviewOutcomeNoInterview(t *testing.T) {
	status, score := deriveInterviewOutcome(nil, nil)
	assert.Equal(t, constants.InterviewOutcomePending, status)
	assert.Nil(t, score)
}

// TestDeriveInterviewOutcomeInProgress 面试进行中 -> pending且无分数
func TestDeriveInterviewOutcomeInProgress(t *testing.T) {
	interview := &models.Interview{ID: 1, DoneAt: nil}
	status, score := deriveInterviewOutcome(interview, nil)
	assert.Equal(t, constants.InterviewOutcomePending, status)
	assert.Nil(t, score)
}

// TestDeriveInterviewOutcomeDoneWithoutReport 面试完成但未评分 -> completed且无分数
func TestDeriveInterviewOutcomeDoneWithoutReport(t *testing.T) {
	now := time.Now()
	interview := &models.Interview{ID: 1, DoneAt: &now}
	status, score := deriveInterviewOutcome(interview, nil)
	assert.Equal(t, constants.InterviewOutcomeCompleted, status)
	assert.Nil(t, score)
}

// TestDeriveInterviewOutcomeDoneWithScore 面试完成且已评分 -> completed带分数
func TestDeriveInterviewOutcomeDoneWithScore(t *testing.T) {
	now := time.Now()
	interview := &models.Interview{ID: 1, DoneAt: &now}
	val := 85
	report := &models.PostReport{InterviewID: 1, Score: &val}

	status, score := deriveInterviewOutcome(interview, report)
	assert.Equal(t, constants.InterviewOutcomeCompleted, status)
	assert.NotNil(t, score)
	assert.Equal(t, 85, *score)
}

// TestDeriveInterviewOutcomeDoneNullScore 评分报告存在但分数为空 -> completed且无分数
func TestDeriveInterviewOutcomeDoneNullScore(t *testing.T) {
	now := time.Now()
	interview := &models.Interview{ID: 1, DoneAt: &now}
	report := &models.PostReport{InterviewID: 1, Score: nil}

	status, score := deriveInterviewOutcome(interview, report)
	assert.Equal(t, constants.InterviewOutcomeCompleted, status)
	assert.Nil(t, score)
}
