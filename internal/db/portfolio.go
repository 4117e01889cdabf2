package db

// Portfolio 定义项目案例模型。
type Portfolio struct {
	Record
	Title        string `gorm:"size:200;not null" json:"title"`
	Slug         string `gorm:"size:220;index" json:"slug"`
	Category     string `gorm:"size:100;index" json:"category"`
	Location     string `gorm:"size:200" json:"location"`
	ProductsUsed string `gorm:"type:text" json:"products_used"`
	ImageURL     string `gorm:"size:500" json:"image_url"`
	ImagePath    string `gorm:"size:300" json:"image_path"`
	Summary      string `gorm:"type:text" json:"summary"`
	Challenge    string `gorm:"type:text" json:"challenge"`
	Solution     string `gorm:"type:text" json:"solution"`
	Impact       string `gorm:"type:text" json:"impact"`
}
