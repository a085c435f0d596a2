package constants

// 申请状态：创建后为 WAITING，开始面试后为 INTERVIEWING，由管理端手动置为 COMPLETED
const (
	StatusWaiting      = "WAITING"
	StatusInterviewing = "INTERVIEWING"
	StatusCompleted    = "COMPLETED"
)

// ApplicantStatuses 全部合法的申请状态，按流程顺序排列
var ApplicantStatuses = []string{StatusWaiting, StatusInterviewing, StatusCompleted}

// IsValidApplicantStatus 判断给定状态是否合法
func IsValidApplicantStatus(status string) bool {
	for _, s := range ApplicantStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// 看板展示用的面试进度状态
const (
	InterviewOutcomePending   = "pending"
	InterviewOutcomeCompleted = "completed"
)

// DefaultManagerID 默认面试官ID，启动时保证存在
const DefaultManagerID uint64 = 0

// 评分范围
const (
	MinScore = 0
	MaxScore = 100
)
