package db

// FAQ 定义常见问题模型。
// Order 可由后台自由调整，不要求唯一，列表按 Order 升序、ID 升序稳定排序。
type FAQ struct {
	Record
	Question string `gorm:"type:text;not null" json:"question"`
	Answer   string `gorm:"type:text" json:"answer"`
	Order    int    `gorm:"column:sort_order;default:0;index" json:"order"`
}

// TableName 指定自定义表名，避免 faqs/f_a_qs 的歧义。
func (FAQ) TableName() string {
	return "faqs"
}
