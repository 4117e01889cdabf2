package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/proshopcms/internal/handler"
	"github.com/proshopcms/internal/logging"
)

const sessionName = "proshop_session"

// Config 为路由层的可选配置。
type Config struct {
	SessionSecret string
	UploadDir     string
	UploadURLPath string
	CORSOrigins   []string
	SecureCookies bool
	Logger        *zap.Logger
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.GinLogger(cfg.Logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// 配置会话中间件
	secret := cfg.SessionSecret
	if strings.TrimSpace(secret) == "" {
		secret = "proshop-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// 本地存储时由服务自身提供上传文件。
	if dir := strings.TrimSpace(cfg.UploadDir); dir != "" {
		urlPath := strings.TrimSpace(cfg.UploadURLPath)
		if urlPath == "" {
			urlPath = "/static/uploads"
		}
		r.Static(urlPath, dir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/healthz", api.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/api")
	public.Use(api.LocaleMiddleware())
	{
		public.GET("/products", api.ListProducts)
		public.GET("/products/:slug", api.ShowProduct)
		public.GET("/portfolios", api.ListPortfolios)
		public.GET("/portfolios/:slug", api.ShowPortfolio)
		public.GET("/articles", api.ListArticles)
		public.GET("/articles/:slug", api.ShowArticle)
		public.GET("/awards", api.ListAwards)
		public.GET("/testimonials", api.ListTestimonials)
		public.GET("/faqs", api.ListFAQs)
		public.GET("/about", api.ShowAbout)
	}

	// 后台管理路由
	admin := r.Group("/admin/api")
	{
		auth := admin.Group("/auth")
		auth.POST("/signup", api.SignUp)
		auth.POST("/signup/confirm", api.ConfirmSignUp)
		auth.POST("/login", api.Login)
		auth.POST("/logout", api.Logout)
		auth.GET("/session", api.Session)
		auth.POST("/password/reset", api.RequestPasswordReset)
		auth.POST("/password/confirm", api.ResetPassword)
		auth.POST("/password/update", handler.AuthRequired(), api.UpdatePassword)

		// 需要认证的后台路由
		protected := admin.Group("")
		protected.Use(handler.AuthRequired())
		{
			api.RegisterContentRoutes(protected)

			protected.GET("/dashboard", api.Dashboard)
			protected.GET("/about", api.GetAbout)
			protected.PUT("/about", api.SaveAbout)
			protected.POST("/media/preview", api.PreviewImage)
			protected.POST("/ai/generate", api.GenerateCopy)
			protected.POST("/ai/test", api.TestAIConnection)
			protected.GET("/settings", api.GetSystemSettings)
			protected.PUT("/settings", api.UpdateSystemSettings)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Accept-Language"},
		ExposeHeaders: []string{"Content-Language"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
