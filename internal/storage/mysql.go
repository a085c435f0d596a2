package storage

import (
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"interview-ai-go/internal/config"
	"interview-ai-go/internal/storage/models"
)

var mysqlTracer = otel.Tracer("interview-ai-go/storage/mysql")

// gormTracingPlugin GORM插件，为数据库操作创建OpenTelemetry span
type gormTracingPlugin struct {
	tracer trace.Tracer
	dbName string
}

func (p *gormTracingPlugin) Name() string {
	return "GormOpenTelemetryPlugin"
}

// Initialize 为各类CRUD操作注册Before/After回调
func (p *gormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	registrations := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("otel:before_create", p.before("CREATE")) },
		func() error { return cb.Create().After("gorm:create").Register("otel:after_create", p.after()) },
		func() error { return cb.Query().Before("gorm:query").Register("otel:before_query", p.before("SELECT")) },
		func() error { return cb.Query().After("gorm:query").Register("otel:after_query", p.after()) },
		func() error { return cb.Update().Before("gorm:update").Register("otel:before_update", p.before("UPDATE")) },
		func() error { return cb.Update().After("gorm:update").Register("otel:after_update", p.after()) },
		func() error { return cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before("DELETE")) },
		func() error { return cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after()) },
		func() error { return cb.Row().Before("gorm:row").Register("otel:before_row", p.before("ROW")) },
		func() error { return cb.Row().After("gorm:row").Register("otel:after_row", p.after()) },
		func() error { return cb.Raw().Before("gorm:raw").Register("otel:before_raw", p.before("RAW")) },
		func() error { return cb.Raw().After("gorm:raw").Register("otel:after_raw", p.after()) },
	}

	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

// before 在GORM操作前开启span并存入Statement上下文
func (p *gormTracingPlugin) before(operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		tableName := db.Statement.Table
		if tableName == "" {
			tableName = "unknown"
		}

		newCtx, _ := p.tracer.Start(ctx, fmt.Sprintf("%s %s", operation, tableName),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				semconv.DBSystemMySQL,
				attribute.String("db.name", p.dbName),
				attribute.String("db.operation", operation),
				attribute.String("db.sql.table", tableName),
			),
		)
		db.Statement.Context = newCtx
	}
}

// after 在GORM操作后补充结果属性并结束span
func (p *gormTracingPlugin) after() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		span := trace.SpanFromContext(db.Statement.Context)
		if !span.IsRecording() {
			return
		}
		defer span.End()

		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))

		// ErrRecordNotFound 属于正常业务分支，不作为错误上报
		if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
			span.RecordError(db.Error)
			span.SetStatus(codes.Error, db.Error.Error())
			return
		}
		span.SetStatus(codes.Ok, "")
	}
}

// MySQL 提供关系数据库功能
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端并完成表结构迁移
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds, cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds)

	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	default:
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: false,
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true,
		// 把驱动层的唯一键冲突翻译成 gorm.ErrDuplicatedKey，业务层据此返回冲突错误
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)

	m := &MySQL{db: db, cfg: cfg}

	if err := db.Use(&gormTracingPlugin{tracer: mysqlTracer, dbName: cfg.Database}); err != nil {
		return nil, fmt.Errorf("注册追踪插件失败: %w", err)
	}

	if err := m.autoMigrateSchema(); err != nil {
		if inner, derr := db.DB(); derr == nil {
			inner.Close()
		}
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	log.Println("成功连接到MySQL并自动迁移数据库结构")
	return m, nil
}

// autoMigrateSchema 使用GORM自动迁移数据库表结构，迁移期间关闭SQL日志
func (m *MySQL) autoMigrateSchema() error {
	silentLogger := logger.New(
		log.New(log.Writer(), "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
		},
	)
	silentDB := m.db.Session(&gorm.Session{Logger: silentLogger})

	err := silentDB.AutoMigrate(
		&models.Position{},
		&models.Experience{},
		&models.TechStack{},
		&models.Applicant{},
		&models.ApplicantTech{},
		&models.WorkHistory{},
		&models.ProjectHistory{},
		&models.ProjectTech{},
		&models.Manager{},
		&models.Interview{},
		&models.Conversation{},
		&models.PreReport{},
		&models.PostReport{},
	)
	if err != nil {
		return fmt.Errorf("GORM自动迁移失败: %w", err)
	}
	return nil
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}
