package db

// Award 定义荣誉奖项模型。Year 为字符串，允许 "2019-2021" 之类的写法。
type Award struct {
	Record
	Year        string `gorm:"size:20;not null" json:"year"`
	Name        string `gorm:"size:200;not null" json:"name"`
	Institution string `gorm:"size:200" json:"institution"`
}
