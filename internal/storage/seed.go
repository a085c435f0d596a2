package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"interview-ai-go/internal/constants"
	"interview-ai-go/internal/logger"
	"interview-ai-go/internal/storage/models"
)

// 初始目录数据，与线上种子保持一致
var (
	seedTechStacks = []string{
		"Java", "Spring Boot", "Spring Framework", "Spring Security", "Spring Data JPA",
		"JavaScript", "TypeScript", "React", "Vue.js", "Angular",
		"Node.js", "Express.js", "Nest.js",
		"Python", "Django", "Flask", "FastAPI",
		"MySQL", "PostgreSQL", "MongoDB", "Redis", "Oracle",
		"Docker", "Kubernetes", "Jenkins", "GitLab CI/CD",
		"AWS", "Azure", "Google Cloud Platform",
		"Git", "GitHub", "GitLab", "Bitbucket",
		"HTML", "CSS", "SCSS", "Bootstrap", "Tailwind CSS",
		"JPA", "Hibernate", "MyBatis",
		"Gradle", "Maven", "npm", "Webpack",
		"JUnit", "Mockito", "Jest", "Cypress",
		"Elasticsearch", "Kafka", "RabbitMQ",
		"Linux", "Ubuntu", "CentOS",
		"Nginx", "Apache", "Tomcat",
		"Go", "Gin", "GORM",
	}

	seedExperiences = []string{
		"1~2년",
		"3~4년",
		"5~6년",
		"7년 이상",
	}

	seedPositions = []string{
		"프론트엔드 개발자",
		"백엔드 개발자",
		"풀스택 엔지니어",
		"모바일 개발자",
		"DevOps 엔지니어",
		"데이터 엔지니어",
		"UI/UX 디자이너",
		"제품 매니저",
	}
)

// SeedBaseData 写入目录种子数据和默认面试官，已存在则跳过。
// 默认面试官(id=0)在这里显式创建，保证面试开始前一定存在
func (m *MySQL) SeedBaseData(ctx context.Context) error {
	log := logger.Ctx(ctx)
	db := m.db.WithContext(ctx)

	// 默认面试官，幂等写入
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Manager{ID: constants.DefaultManagerID}).Error; err != nil {
		return fmt.Errorf("创建默认面试官失败: %w", err)
	}

	if err := seedCatalog(db, "tech_stacks", seedTechStacks, func(title string) interface{} {
		return &models.TechStack{Title: title}
	}); err != nil {
		return err
	}
	if err := seedCatalog(db, "experiences", seedExperiences, func(title string) interface{} {
		return &models.Experience{Title: title}
	}); err != nil {
		return err
	}
	if err := seedCatalog(db, "positions", seedPositions, func(title string) interface{} {
		return &models.Position{Title: title}
	}); err != nil {
		return err
	}

	log.Info().Msg("基础目录数据初始化完成")
	return nil
}

// seedCatalog 写入单个目录表，表里已有数据则整体跳过
func seedCatalog(db *gorm.DB, table string, titles []string, build func(string) interface{}) error {
	var count int64
	if err := db.Table(table).Count(&count).Error; err != nil {
		return fmt.Errorf("检查 %s 现有数据失败: %w", table, err)
	}
	if count > 0 {
		logger.Debug().Str("table", table).Int64("count", count).Msg("目录数据已存在，跳过初始化")
		return nil
	}

	for _, title := range titles {
		if err := db.Create(build(title)).Error; err != nil {
			return fmt.Errorf("写入 %s 种子数据失败: %w", table, err)
		}
	}
	logger.Info().Str("table", table).Int("count", len(titles)).Msg("目录种子数据写入完成")
	return nil
}
