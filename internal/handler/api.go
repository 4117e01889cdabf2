package handler

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/proshopcms/internal/locale"
	"github.com/proshopcms/internal/service"
)

const defaultMaxUploadBytes = 8 << 20

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	catalog    *service.Catalog
	about      *service.AboutService
	auth       *service.AuthService
	dashboard  *service.DashboardService
	public     *service.PublicService
	system     *service.SystemSettingService
	copywriter service.Copywriter
	logger     *zap.Logger

	bucketName      string
	maxUploadBytes  int64
	defaultLanguage string
	allowSignup     bool
}

// Options 为 NewAPI 的依赖集合。
type Options struct {
	DB         *gorm.DB
	Catalog    *service.Catalog
	About      *service.AboutService
	Auth       *service.AuthService
	System     *service.SystemSettingService
	Copywriter service.Copywriter
	Logger     *zap.Logger

	BucketName      string
	MaxUploadBytes  int64
	DefaultLanguage string
	// AllowSignup 打开匿名自助注册；关闭时只有已登录管理员能创建账号。
	AllowSignup bool
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	bucket := opts.BucketName
	if bucket == "" {
		bucket = "images"
	}
	language := locale.NormalizeLanguage(opts.DefaultLanguage)
	if language == "" {
		language = locale.LanguageIndonesian
	}

	return &API{
		db:              opts.DB,
		catalog:         opts.Catalog,
		about:           opts.About,
		auth:            opts.Auth,
		dashboard:       service.NewDashboardService(opts.Catalog),
		public:          service.NewPublicService(opts.Catalog, opts.About, logger),
		system:          opts.System,
		copywriter:      opts.Copywriter,
		logger:          logger,
		bucketName:      bucket,
		maxUploadBytes:  maxUpload,
		defaultLanguage: language,
		allowSignup:     opts.AllowSignup,
	}
}

// DB exposes the underlying gorm instance for health checks.
func (a *API) DB() *gorm.DB {
	return a.db
}
