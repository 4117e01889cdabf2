package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/proshopcms/internal/config"
	"github.com/proshopcms/internal/content"
	"github.com/proshopcms/internal/db"
	"github.com/proshopcms/internal/handler"
	"github.com/proshopcms/internal/router"
	"github.com/proshopcms/internal/service"
	"github.com/proshopcms/internal/storage"
)

// application 持有一次运行所需的全部组件。
type application struct {
	db     *gorm.DB
	media  *content.MediaManager
	engine *gin.Engine
}

// Close 等待后台的媒体清理任务结束，然后关闭数据库连接。
func (a *application) Close() error {
	a.media.Wait()
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildApplication(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) (*application, error) {
	gdb, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("数据库初始化失败: %w", err)
	}
	if err := db.EnsureUser(gdb, cfg.SuperRootEmail, cfg.SuperRootPassword); err != nil {
		return nil, fmt.Errorf("failed to ensure admin account: %w", err)
	}

	bucket, uploadDir, err := openBucket(ctx, cfg)
	if err != nil {
		return nil, err
	}
	media := content.NewMediaManager(bucket,
		content.WithCacheControl(cfg.MediaCacheControl),
		content.WithMediaLogger(logger.Named("media")),
	)

	catalogOpts := service.CatalogOptions{Logger: logger, SaveTimeout: cfg.SaveTimeout}
	catalog := service.NewCatalog(gdb, media, catalogOpts)
	about := service.NewAboutService(gdb, media, catalogOpts)
	auth := service.NewAuthService(gdb, cfg.SessionSecret, service.LogNotifier{Logger: logger.Named("auth")})
	settings := service.NewSystemSettingService(gdb, service.SystemSettings{
		AIProvider: cfg.AIProvider,
		AIAPIKey:   cfg.AIAPIKey,
		AIModel:    cfg.AIModel,
	})
	copywriter := service.NewCopywriterService(settings, logger.Named("copywriter"))

	api := handler.NewAPI(handler.Options{
		DB:              gdb,
		Catalog:         catalog,
		About:           about,
		Auth:            auth,
		System:          settings,
		Copywriter:      copywriter,
		Logger:          logger,
		BucketName:      cfg.StorageBucket,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		DefaultLanguage: cfg.DefaultLanguage,
		AllowSignup:     cfg.AllowSignup,
	})

	engine := router.SetupRouter(api, router.Config{
		SessionSecret: cfg.SessionSecret,
		UploadDir:     uploadDir,
		UploadURLPath: cfg.UploadURLPath,
		CORSOrigins:   cfg.CORSOrigins,
		SecureCookies: cfg.SessionSecure,
		Logger:        logger,
	})

	return &application{db: gdb, media: media, engine: engine}, nil
}

// openBucket 按配置选择存储后端。本地存储时返回需要由服务自身提供的目录。
func openBucket(ctx context.Context, cfg config.AppConfig) (storage.Bucket, string, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return storage.NewLocalBucket(cfg.UploadDir, cfg.UploadURLPath), cfg.UploadDir, nil
	case "s3":
		bucket, err := storage.NewS3Bucket(ctx, storage.S3Config{
			Bucket:        cfg.StorageBucket,
			Region:        cfg.StorageRegion,
			Endpoint:      cfg.StorageEndpoint,
			AccessKey:     cfg.StorageAccessKey,
			SecretKey:     cfg.StorageSecretKey,
			PublicBaseURL: cfg.StoragePublicBaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		return bucket, "", nil
	default:
		return nil, "", errors.New("unsupported storage driver " + cfg.StorageDriver)
	}
}
