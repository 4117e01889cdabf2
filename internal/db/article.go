package db

import "time"

// Article 定义文章模型，Content 存储富文本 HTML。
// ReadTime 由正文推导，形如 "4 min"。
type Article struct {
	Record
	Title       string    `gorm:"size:200;not null" json:"title"`
	Slug        string    `gorm:"size:220;index" json:"slug"`
	Excerpt     string    `gorm:"type:text" json:"excerpt"`
	Content     string    `gorm:"type:text" json:"content"`
	ImageURL    string    `gorm:"size:500" json:"image_url"`
	ImagePath   string    `gorm:"size:300" json:"image_path"`
	Category    string    `gorm:"size:100;index" json:"category"`
	Author      string    `gorm:"size:120" json:"author"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	ReadTime    string    `gorm:"size:20" json:"read_time"`
}
