package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/apiserver/handler"
	"github.com/harnesslab/wiremes/internal/apiserver/scheduler"
	"github.com/harnesslab/wiremes/internal/auth/jwt"
	"github.com/harnesslab/wiremes/internal/common/config"
	"github.com/harnesslab/wiremes/internal/erp"
	"github.com/harnesslab/wiremes/internal/i18n"
	"github.com/harnesslab/wiremes/internal/scan"
	"github.com/harnesslab/wiremes/internal/tabs"
	"github.com/harnesslab/wiremes/pkg/logger"
	"github.com/harnesslab/wiremes/pkg/metrics"
	"github.com/harnesslab/wiremes/pkg/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "Wire-harness MES API Server",
		Long:  `API server for the wire-harness manufacturing execution system`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "configs/apiserver.yaml", "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	// Translations
	i18n.SetDefaultLanguage(cfg.I18n.DefaultLang)
	if err := i18n.InitTranslator(cfg.I18n.Path); err != nil {
		zapLogger.Warn("failed to load translations, falling back to message ids", zap.Error(err))
	}

	// Business database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to initialize database",
			zap.String("type", cfg.Database.Type),
			zap.Error(err))
	}
	defer db.Close()

	if err := database.SeedAdmin(context.Background(), db, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		zapLogger.Fatal("failed to seed administrator account", zap.Error(err))
	}

	// Token signing
	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration.Std(),
	})
	if err != nil {
		zapLogger.Fatal("failed to initialize jwt service", zap.Error(err))
	}

	// Tab session store
	tabStore, err := tabs.NewStore(zapLogger, &cfg.Session)
	if err != nil {
		zapLogger.Fatal("failed to initialize tab session store",
			zap.String("type", cfg.Session.Type),
			zap.Error(err))
	}
	tabMgr := tabs.NewManager(tabStore)

	// Metrics
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
	}

	// PDA scan sessions: every completed scan is recorded against the
	// matching lot.
	scanMgr := scan.NewManager(zapLogger, nil, func(ctx context.Context, sess *scan.Session, value string) {
		lot, err := db.GetLotBySerial(ctx, value)
		if err != nil {
			zapLogger.Warn("scanned serial matches no lot",
				zap.String("device", sess.DeviceID),
				zap.String("serial", value))
			if m != nil {
				m.ScanEvent(sess.DeviceID, "unknown")
			}
			return
		}
		if err := db.CreateLotScan(ctx, &database.LotScan{
			LotID:     lot.ID,
			DeviceID:  sess.DeviceID,
			ScannedAt: time.Now(),
		}); err != nil {
			zapLogger.Error("failed to record lot scan", zap.Error(err))
			if m != nil {
				m.ScanEvent(sess.DeviceID, "error")
			}
			return
		}
		if m != nil {
			m.ScanEvent(sess.DeviceID, "ok")
		}
	})

	erpClient := erp.NewClient(zapLogger, cfg.ERP)

	// Background PM due-date sweeps
	pmScheduler := scheduler.NewPMScheduler(zapLogger, db, time.Hour)
	pmScheduler.Start()
	defer pmScheduler.Stop()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(i18n.LanguageMiddleware())
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	h := handler.NewHandler(db, jwtService, cfg, zapLogger, tabMgr, scanMgr, erpClient, m)
	h.RegisterRoutes(r)

	// Uploaded files (user photos)
	r.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	addr := fmt.Sprintf(":%d", cfg.Port)
	zapLogger.Info("listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("server exited", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
