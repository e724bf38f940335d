package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/metrics"
	"github.com/wyfcoding/procurement/internal/procurement/application"
	"github.com/wyfcoding/procurement/internal/procurement/domain"
	"github.com/wyfcoding/procurement/internal/procurement/infrastructure/messaging"
	"github.com/wyfcoding/procurement/internal/procurement/infrastructure/persistence/mysql"
	httpserver "github.com/wyfcoding/procurement/internal/procurement/interfaces/http"
	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "configs/procurement/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. 初始化配置
	var cfg config.Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 初始化日志
	logCfg := &logging.Config{
		Service:    cfg.Server.Name,
		Module:     "procurement",
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}
	logger := logging.NewFromConfig(logCfg)
	slog.SetDefault(logger.Logger)

	// 3. 初始化指标
	metricsImpl := metrics.NewMetrics(cfg.Server.Name)
	if cfg.Metrics.Enabled {
		go metricsImpl.ExposeHTTP(cfg.Metrics.Port)
	}

	// 4. 初始化基础设施
	db, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	// Auto Migrate (仅用于开发方便)
	if cfg.Server.Environment == "dev" {
		if err := db.RawDB().AutoMigrate(
			&mysql.TenderModel{},
			&mysql.RiskFlagModel{},
			&mysql.SupplierModel{},
			&messaging.OutboxMessage{},
		); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	// 5. 初始化仓储与发布器
	tenderRepo := mysql.NewTenderRepository(db.RawDB())
	supplierRepo := mysql.NewSupplierRepository(db.RawDB())
	publisher := messaging.NewOutboxEventPublisher(db.RawDB())

	// 6. 初始化应用服务
	riskSvc := application.NewRiskService(tenderRepo, domain.DefaultRules(), publisher)
	matchingSvc := application.NewMatchingService(tenderRepo, supplierRepo)
	reportSvc := application.NewReportService(tenderRepo, riskSvc, matchingSvc)
	ingestSvc := application.NewIngestService(tenderRepo, supplierRepo, riskSvc)
	querySvc := application.NewTenderQuery(tenderRepo)

	// 7. 初始化接口层
	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	sys := r.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		sys.GET("/ready", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "READY"}) })
	}

	httpHandler := httpserver.NewTenderHandler(ingestSvc, querySvc, riskSvc, matchingSvc, reportSvc)
	httpHandler.RegisterRoutes(r.Group(""))

	// 8. 启动服务
	g, ctx := errgroup.WithContext(context.Background())

	addr := fmt.Sprintf(":%d", cfg.Server.HTTP.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}
	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// 9. 优雅关闭
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down server...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
