package db

import "time"

// Record 是所有内容表共用的主键与时间戳字段。
// 不使用 gorm.Model，删除即物理删除，避免软删除记录继续占用媒体引用。
type Record struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrimaryKey 返回服务端分配的数值主键。
func (r Record) PrimaryKey() uint {
	return r.ID
}
