package db

// Testimonial 定义客户评价模型。
type Testimonial struct {
	Record
	Name      string `gorm:"size:120;not null" json:"name"`
	Role      string `gorm:"size:120" json:"role"`
	Company   string `gorm:"size:200" json:"company"`
	Content   string `gorm:"type:text" json:"content"`
	ImageURL  string `gorm:"size:500" json:"image_url"`
	ImagePath string `gorm:"size:300" json:"image_path"`
}
