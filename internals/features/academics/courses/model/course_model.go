package model

// Course adalah mata kuliah; credits dipakai untuk bobot GPA/CPA dan tarif SPP.
type Course struct {
	ID      int    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code    string `gorm:"column:code;type:varchar(32);uniqueIndex;not null" json:"code"`
	Name    string `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Credits int    `gorm:"column:credits;not null" json:"credits"`
}

func (Course) TableName() string { return "courses" }
