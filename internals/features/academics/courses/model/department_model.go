package model

type Department struct {
	ID          int    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"column:name;type:varchar(160);uniqueIndex;not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (Department) TableName() string { return "departments" }
