package models

import (
	"time"

	"gorm.io/datatypes"
)

// Position 职位目录表，种子数据写入后只读
type Position struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"type:varchar(100);not null" json:"title"`
}

func (Position) TableName() string {
	return "positions"
}

// Experience 经验年限目录表，种子数据写入后只读
type Experience struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"type:varchar(100);not null" json:"title"`
}

func (Experience) TableName() string {
	return "experiences"
}

// TechStack 技术栈目录表；title事实上唯一（由种子数据保证，不做硬约束）
type TechStack struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"type:varchar(100);not null;index:idx_tech_stacks_title" json:"title"`
}

func (TechStack) TableName() string {
	return "tech_stacks"
}

// Applicant 申请人主表
type Applicant struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username          string    `gorm:"type:varchar(100);not null" json:"username"`
	Email             string    `gorm:"type:varchar(255);not null" json:"email"`
	Location          string    `gorm:"type:varchar(255)" json:"location"`
	ResumeFilePath    string    `gorm:"type:varchar(1024)" json:"resume_file_path"`
	GithubURL         string    `gorm:"type:varchar(512)" json:"github_url"`
	PortfolioURL      string    `gorm:"type:varchar(512)" json:"portfolio_url"`
	PortfolioFilePath string    `gorm:"type:varchar(1024)" json:"portfolio_file_path"`
	ApplyAt           time.Time `gorm:"type:datetime(6);not null" json:"apply_at"`
	Status            string    `gorm:"type:varchar(20);not null;default:'WAITING';index:idx_applicants_status" json:"status"`
	PositionID        uint64    `gorm:"not null" json:"position_id"`
	ExperienceID      uint64    `gorm:"not null" json:"experience_id"`
	CreatedAt         time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)" json:"-"`
	UpdatedAt         time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime" json:"-"`

	Position   *Position       `gorm:"foreignKey:PositionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"position,omitempty"`
	Experience *Experience     `gorm:"foreignKey:ExperienceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"experience,omitempty"`
	Tags       []ApplicantTech `gorm:"foreignKey:ApplicantID;references:ID" json:"tags,omitempty"`
}

func (Applicant) TableName() string {
	return "applicants"
}

// ApplicantTech 申请人与技术栈的关联表，申请人删除时级联删除
type ApplicantTech struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicantID uint64 `gorm:"not null;uniqueIndex:idx_applicant_techs_pair,priority:1" json:"applicant_id"`
	TechStackID uint64 `gorm:"not null;uniqueIndex:idx_applicant_techs_pair,priority:2" json:"tech_stack_id"`

	Applicant *Applicant `gorm:"foreignKey:ApplicantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TechStack *TechStack `gorm:"foreignKey:TechStackID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tech_stack,omitempty"`
}

func (ApplicantTech) TableName() string {
	return "applicant_techs"
}

// WorkHistory 工作经历表；EndDate为空表示在职
type WorkHistory struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicantID uint64          `gorm:"not null;index:idx_work_histories_applicant_id" json:"applicant_id"`
	CompanyName string          `gorm:"type:varchar(255);not null" json:"company_name"`
	PositionID  uint64          `gorm:"not null" json:"position_id"`
	StartDate   datatypes.Date  `gorm:"type:date" json:"start_date"`
	EndDate     *datatypes.Date `gorm:"type:date" json:"end_date"`

	Applicant *Applicant `gorm:"foreignKey:ApplicantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Position  *Position  `gorm:"foreignKey:PositionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"position,omitempty"`
}

func (WorkHistory) TableName() string {
	return "work_histories"
}

// ProjectHistory 项目经历表
// 主技术栈为结构化外键；次要技术栈存于project_techs关联表，
// 同时在description中以 " (사용 기술: ...)" 标记保留一份文本，兼容旧数据
type ProjectHistory struct {
	ID                 uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicantID        uint64 `gorm:"not null;index:idx_project_histories_applicant_id" json:"applicant_id"`
	Title              string `gorm:"type:varchar(255);not null" json:"title"`
	Description        string `gorm:"type:text" json:"description"`
	PrimaryTechStackID uint64 `gorm:"column:primary_tech_stack_id;not null" json:"primary_tech_stack_id"`

	Applicant        *Applicant    `gorm:"foreignKey:ApplicantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PrimaryTechStack *TechStack    `gorm:"foreignKey:PrimaryTechStackID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"primary_tech_stack,omitempty"`
	SecondaryTechs   []ProjectTech `gorm:"foreignKey:ProjectHistoryID;references:ID" json:"secondary_techs,omitempty"`
}

func (ProjectHistory) TableName() string {
	return "project_histories"
}

// ProjectTech 项目经历与次要技术栈的关联表
type ProjectTech struct {
	ID               uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectHistoryID uint64 `gorm:"not null;uniqueIndex:idx_project_techs_pair,priority:1" json:"project_history_id"`
	TechStackID      uint64 `gorm:"not null;uniqueIndex:idx_project_techs_pair,priority:2" json:"tech_stack_id"`

	ProjectHistory *ProjectHistory `gorm:"foreignKey:ProjectHistoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TechStack      *TechStack      `gorm:"foreignKey:TechStackID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tech_stack,omitempty"`
}

func (ProjectTech) TableName() string {
	return "project_techs"
}

// Manager 面试官表；ID由调用方指定，默认面试官ID为0，启动时写入
type Manager struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CreatedAt time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)" json:"-"`
}

func (Manager) TableName() string {
	return "managers"
}

// Interview 面试会话表；DoneAt为空表示进行中，写入后不可回退
type Interview struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ManagerID   uint64     `gorm:"not null" json:"manager_id"`
	ApplicantID uint64     `gorm:"not null;index:idx_interviews_applicant_id" json:"applicant_id"`
	DoneAt      *time.Time `gorm:"type:datetime(6)" json:"done_at"`
	CreatedAt   time.Time  `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)" json:"created_at"`

	Manager   *Manager   `gorm:"foreignKey:ManagerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Applicant *Applicant `gorm:"foreignKey:ApplicantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Interview) TableName() string {
	return "interviews"
}

// Conversation 面试对话表，只增不改；Sequence在同一面试内单调递增
type Conversation struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	InterviewID uint64    `gorm:"not null;uniqueIndex:idx_conversations_interview_seq,priority:1" json:"interview_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsManager   bool      `gorm:"not null" json:"is_manager"`
	Sequence    int       `gorm:"not null;uniqueIndex:idx_conversations_interview_seq,priority:2" json:"sequence"`
	CreatedAt   time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)" json:"created_at"`

	Interview *Interview `gorm:"foreignKey:InterviewID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// PreReport 面试前评估记录，可选关联某条工作/项目经历
type PreReport struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicantID      uint64    `gorm:"not null;index:idx_pre_reports_applicant_id" json:"applicant_id"`
	WorkHistoryID    *uint64   `gorm:"type:bigint unsigned" json:"work_history_id"`
	ProjectHistoryID *uint64   `gorm:"type:bigint unsigned" json:"project_history_id"`
	Description      string    `gorm:"type:text" json:"description"`
	CreatedAt        time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)" json:"created_at"`

	Applicant      *Applicant      `gorm:"foreignKey:ApplicantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	WorkHistory    *WorkHistory    `gorm:"foreignKey:WorkHistoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	ProjectHistory *ProjectHistory `gorm:"foreignKey:ProjectHistoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (PreReport) TableName() string {
	return "pre_reports"
}

// PostReport 面试后评分表；interview_id唯一，一次面试至多一份报告
type PostReport struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	InterviewID uint64    `gorm:"not null;uniqueIndex:idx_post_reports_interview_id" json:"interview_id"`
	Score       *int      `gorm:"type:int" json:"score"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)" json:"-"`
	UpdatedAt   time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime" json:"-"`

	Interview *Interview `gorm:"foreignKey:InterviewID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (PostReport) TableName() string {
	return "post_reports"
}
