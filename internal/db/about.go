package db

// About 为关于页的单例内容。
type About struct {
	Record
	Content       string `gorm:"type:text" json:"content"`
	Vision        string `gorm:"type:text" json:"vision"`
	ImageURL      string `gorm:"size:500" json:"image_url"`
	ImagePath     string `gorm:"size:300" json:"image_path"`
	ProjectsCount string `gorm:"size:20" json:"projects_count"`
}

// TableName 返回单数表名。
func (About) TableName() string {
	return "about"
}
