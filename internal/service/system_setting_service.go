package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/proshopcms/internal/db"
)

const (
	// AIProviderOpenAI 表示使用 OpenAI 能力。
	AIProviderOpenAI = "openai"
	// AIProviderDeepSeek 表示使用 DeepSeek 能力。
	AIProviderDeepSeek = "deepseek"
	// AIProviderGemini 表示通过 OpenAI 兼容接口调用 Gemini。
	AIProviderGemini = "gemini"

	defaultSiteName = "Daikin Proshop"
)

var supportedAIProviders = []string{AIProviderOpenAI, AIProviderDeepSeek, AIProviderGemini}

type aiProviderInfo struct {
	Label        string
	BaseURL      string
	DefaultModel string
}

var aiProviders = map[string]aiProviderInfo{
	AIProviderOpenAI:   {Label: "OpenAI", BaseURL: "https://api.openai.com/v1", DefaultModel: "gpt-4o-mini"},
	AIProviderDeepSeek: {Label: "DeepSeek", BaseURL: "https://api.deepseek.com/v1", DefaultModel: "deepseek-chat"},
	AIProviderGemini:   {Label: "Gemini", BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai", DefaultModel: "gemini-1.5-flash"},
}

// SystemSettings 描述后台可配置的系统信息。
type SystemSettings struct {
	SiteName   string `json:"site_name"`
	AIProvider string `json:"ai_provider"`
	AIAPIKey   string `json:"ai_api_key"`
	AIModel    string `json:"ai_model"`
}

// ErrAIAPIKeyMissing 表示未提供必需的 AI 平台 API Key。
var ErrAIAPIKeyMissing = errors.New("api key is required")

// SystemSettingsInput 用于更新系统设置。
type SystemSettingsInput struct {
	SiteName   string `json:"site_name"`
	AIProvider string `json:"ai_provider"`
	AIAPIKey   string `json:"ai_api_key"`
	AIModel    string `json:"ai_model"`
}

// SystemSettingService 提供系统设置的读取与更新能力。
// 数据库中未设置的项回退到启动配置给出的默认值。
type SystemSettingService struct {
	db         *gorm.DB
	defaults   SystemSettings
	httpClient httpDoer
	baseURLs   map[string]string
}

// NewSystemSettingService 构造 SystemSettingService。
func NewSystemSettingService(gdb *gorm.DB, defaults SystemSettings) *SystemSettingService {
	if strings.TrimSpace(defaults.SiteName) == "" {
		defaults.SiteName = defaultSiteName
	}
	if provider := normalizeAIProvider(defaults.AIProvider); provider != "" {
		defaults.AIProvider = provider
	} else {
		defaults.AIProvider = AIProviderGemini
	}
	return &SystemSettingService{
		db:         gdb,
		defaults:   defaults,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURLs:   make(map[string]string),
	}
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyAIProvider,
	db.SettingKeyAIAPIKey,
	db.SettingKeyAIModel,
}

// GetSettings 读取系统设置，如未设置将返回默认值。
func (s *SystemSettingService) GetSettings(ctx context.Context) (SystemSettings, error) {
	result := s.defaults

	var records []db.SystemSetting
	// map 条件会为列名加引号，key 在 MySQL 中是保留字。
	if err := s.db.WithContext(ctx).Where(map[string]interface{}{"key": settingKeys}).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load system settings: %w", err)
	}

	for _, record := range records {
		value := strings.TrimSpace(record.Value)
		if value == "" {
			continue
		}
		switch record.Key {
		case db.SettingKeySiteName:
			result.SiteName = value
		case db.SettingKeyAIProvider:
			if provider := normalizeAIProvider(value); provider != "" {
				result.AIProvider = provider
			}
		case db.SettingKeyAIAPIKey:
			result.AIAPIKey = value
		case db.SettingKeyAIModel:
			result.AIModel = value
		}
	}

	return result, nil
}

// UpdateSettings 保存系统设置，未填写站点名称时回退默认值。
func (s *SystemSettingService) UpdateSettings(ctx context.Context, input SystemSettingsInput) (SystemSettings, error) {
	provider := normalizeAIProvider(input.AIProvider)
	if provider == "" {
		provider = s.defaults.AIProvider
	}

	sanitized := SystemSettings{
		SiteName:   strings.TrimSpace(input.SiteName),
		AIProvider: provider,
		AIAPIKey:   strings.TrimSpace(input.AIAPIKey),
		AIModel:    strings.TrimSpace(input.AIModel),
	}
	if sanitized.SiteName == "" {
		sanitized.SiteName = s.defaults.SiteName
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertSetting(tx, db.SettingKeySiteName, sanitized.SiteName); err != nil {
			return err
		}
		if err := upsertSetting(tx, db.SettingKeyAIProvider, sanitized.AIProvider); err != nil {
			return err
		}
		if err := upsertSetting(tx, db.SettingKeyAIAPIKey, sanitized.AIAPIKey); err != nil {
			return err
		}
		if err := upsertSetting(tx, db.SettingKeyAIModel, sanitized.AIModel); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return SystemSettings{}, fmt.Errorf("update system settings: %w", err)
	}

	return s.GetSettings(ctx)
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

// SetHTTPClient 替换用于访问第三方服务的 HTTP 客户端，主要面向测试场景。
func (s *SystemSettingService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.httpClient = &http.Client{Timeout: 10 * time.Second}
		return
	}
	s.httpClient = client
}

// SetBaseURL 覆盖某个 AI 平台的基础地址，便于测试或自定义代理。
func (s *SystemSettingService) SetBaseURL(provider, base string) {
	if prov := normalizeAIProvider(provider); prov != "" {
		s.baseURLs[prov] = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// TestAIConnection 调用指定 AI 平台的模型列表接口验证 API Key 的有效性。
func (s *SystemSettingService) TestAIConnection(ctx context.Context, provider, apiKey string) error {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return ErrAIAPIKeyMissing
	}

	prov := normalizeAIProvider(provider)
	if prov == "" {
		prov = s.defaults.AIProvider
	}
	info := aiProviders[prov]

	client := s.httpClient
	if client == nil {
		client = http.DefaultClient
	}

	endpoint := resolveBaseURL(s.baseURLs, prov) + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", strings.ToLower(info.Label), err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("User-Agent", "proshop-admin/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("请求 %s 接口失败: %w", info.Label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		msg := strings.TrimSpace(string(body))
		if msg != "" {
			return fmt.Errorf("%s 返回错误：%s (%s)", info.Label, resp.Status, msg)
		}
		return fmt.Errorf("%s 返回错误：%s", info.Label, resp.Status)
	}

	return nil
}

func resolveBaseURL(overrides map[string]string, provider string) string {
	if base := strings.TrimSpace(overrides[provider]); base != "" {
		return strings.TrimRight(base, "/")
	}
	return aiProviders[provider].BaseURL
}

func normalizeAIProvider(provider string) string {
	trimmed := strings.ToLower(strings.TrimSpace(provider))
	for _, candidate := range supportedAIProviders {
		if trimmed == candidate {
			return candidate
		}
	}
	return ""
}
