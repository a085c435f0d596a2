package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"interview-ai-go/internal/api/router"
	"interview-ai-go/internal/config"
	appLogger "interview-ai-go/internal/logger"
	"interview-ai-go/internal/pipeline"
	"interview-ai-go/internal/storage"
	"interview-ai-go/internal/tracing"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "config.yaml", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		appLogger.Fatal().Err(err).Str("path", configPath).Msg("加载配置失败")
	}

	appLogger.Init(cfg.Logger)
	// Hertz框架日志统一走zerolog适配器
	glog.SetLogger(hertzadapter.From(appLogger.Logger))
	appLogger.Info().Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = appLogger.WithContext(ctx)

	// 链路追踪按配置开启
	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.InitProvider(ctx, &cfg.Tracing)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("初始化链路追踪失败")
		}
		defer func() {
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := shutdownTracing(shutdownCtx); err != nil {
				appLogger.Error().Err(err).Msg("关闭链路追踪失败")
			}
		}()
		appLogger.Info().Str("endpoint", cfg.Tracing.Endpoint).Msg("链路追踪初始化成功")
	}

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer storageManager.Close()
	appLogger.Info().Msg("存储服务初始化成功")

	if cfg.SeedOnStartup {
		if err := storageManager.MySQL.SeedBaseData(ctx); err != nil {
			appLogger.Fatal().Err(err).Msg("写入基础目录数据失败")
		}
		appLogger.Info().Msg("基础目录数据就绪")
	}

	services := pipeline.NewServices(storageManager, cfg)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		ctx.Next(c)
		glog.CtxInfof(c, "%s %s -> %d", string(ctx.Method()), string(ctx.Path()), ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, services, storageManager)
	appLogger.Info().Msg("HTTP路由注册成功")

	appLogger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")
	go func() {
		if err := h.Run(); err != nil {
			appLogger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("服务器关闭失败")
	}
	appLogger.Info().Msg("优雅退出完成")
}
