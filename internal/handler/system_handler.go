package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proshopcms/internal/service"
)

// HealthCheck 提供负载均衡与监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}

type systemSettingsRequest struct {
	SiteName   string `json:"site_name"`
	AIProvider string `json:"ai_provider"`
	AIAPIKey   string `json:"ai_api_key"`
	AIModel    string `json:"ai_model"`
}

type aiTestRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
}

// GetSystemSettings 返回当前系统设置。API Key 只返回是否已配置。
func (a *API) GetSystemSettings(c *gin.Context) {
	settings, err := a.system.GetSettings(c.Request.Context())
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to load system settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": systemSettingsPayload(settings)})
}

// UpdateSystemSettings 保存系统设置。
func (a *API) UpdateSystemSettings(c *gin.Context) {
	var payload systemSettingsRequest
	if !bindJSON(c, &payload, "Invalid system settings") {
		return
	}

	settings, err := a.system.UpdateSettings(c.Request.Context(), service.SystemSettingsInput{
		SiteName:   payload.SiteName,
		AIProvider: payload.AIProvider,
		AIAPIKey:   payload.AIAPIKey,
		AIModel:    payload.AIModel,
	})
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to save system settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "System settings saved",
		"settings": systemSettingsPayload(settings),
	})
}

func systemSettingsPayload(settings service.SystemSettings) gin.H {
	return gin.H{
		"site_name":      settings.SiteName,
		"ai_provider":    settings.AIProvider,
		"ai_model":       settings.AIModel,
		"ai_key_present": settings.AIAPIKey != "",
	}
}

// TestAIConnection 测试不同 AI 平台 API Key 的连通性。
func (a *API) TestAIConnection(c *gin.Context) {
	var payload aiTestRequest
	if !bindJSON(c, &payload, "Invalid AI configuration") {
		return
	}

	if err := a.system.TestAIConnection(c.Request.Context(), payload.Provider, payload.APIKey); err != nil {
		switch {
		case errors.Is(err, service.ErrAIAPIKeyMissing):
			respondError(c, http.StatusBadRequest, "API key is required")
		default:
			respondError(c, http.StatusBadGateway, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "AI connection OK"})
}

// GenerateCopy 调用文案助手。失败时 html 字段仍带有可直接展示的提示文本。
func (a *API) GenerateCopy(c *gin.Context) {
	var payload service.CopyRequest
	if !bindJSON(c, &payload, "Invalid copywriting request") {
		return
	}

	result, err := a.copywriter.Generate(c.Request.Context(), payload)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, service.ErrCopyTitleRequired):
		respondError(c, http.StatusBadRequest, "Please enter an article title first")
	case errors.Is(err, service.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": result.HTML, "html": result.HTML})
	default:
		c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": service.AIFailedMessage, "html": result.HTML})
	}
}

// Dashboard 返回各类内容的数量。
func (a *API) Dashboard(c *gin.Context) {
	counts, err := a.dashboard.Counts(c.Request.Context())
	if err != nil {
		a.respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}
