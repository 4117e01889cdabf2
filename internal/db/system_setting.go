package db

import "gorm.io/gorm"

// SystemSetting 存储后台可配置的系统级键值对。
type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SystemSetting) TableName() string {
	return "system_settings"
}

const (
	// SettingKeySiteName 表示站点名称。
	SettingKeySiteName = "site_name"
	// SettingKeyAIProvider 表示文案助手使用的模型平台。
	SettingKeyAIProvider = "ai_provider"
	// SettingKeyAIAPIKey 表示文案助手的 API Key。
	SettingKeyAIAPIKey = "ai_api_key"
	// SettingKeyAIModel 表示文案助手使用的模型名称。
	SettingKeyAIModel = "ai_model"
)
