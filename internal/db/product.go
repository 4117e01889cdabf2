package db

import "gorm.io/datatypes"

// ProductFeature 描述产品详情页中的一条详细特性。
type ProductFeature struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// ProductApplication 描述产品适用的典型场景。
type ProductApplication struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// Product 定义产品目录模型。
// Features 为简短卖点标签，保持用户录入顺序。
type Product struct {
	Record
	Name              string                                  `gorm:"size:200;not null" json:"name"`
	Slug              string                                  `gorm:"size:220;index" json:"slug"`
	Category          string                                  `gorm:"size:100;index" json:"category"`
	Description       string                                  `gorm:"type:text" json:"description"`
	ImageURL          string                                  `gorm:"size:500" json:"image_url"`
	ImagePath         string                                  `gorm:"size:300" json:"image_path"`
	Features          datatypes.JSONSlice[string]             `json:"features"`
	DetailedFeatures  datatypes.JSONSlice[ProductFeature]     `json:"detailed_features,omitempty"`
	IdealApplications datatypes.JSONSlice[ProductApplication] `json:"ideal_applications,omitempty"`
}
