package model

import "time"

// Timetable adalah baris turunan: satu pertemuan konkret hasil
// materialisasi pola mingguan Class. Selalu di-regenerate penuh
// (delete lalu insert), tidak pernah dipatch per baris.
type Timetable struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ClassID     int       `gorm:"column:class_id;not null;index" json:"class_id"`
	Date        time.Time `gorm:"column:date;type:date;not null" json:"date"`
	StartPeriod int       `gorm:"column:start_period" json:"start_period"`
	EndPeriod   int       `gorm:"column:end_period" json:"end_period"`
	Room        string    `gorm:"column:room;type:varchar(64)" json:"room"`
	IsMakeup    bool      `gorm:"column:is_makeup;not null;default:false" json:"is_makeup"`
	Note        *string   `gorm:"column:note;type:text" json:"note,omitempty"`
}

func (Timetable) TableName() string { return "timetables" }
