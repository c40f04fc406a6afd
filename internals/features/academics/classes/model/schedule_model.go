package model

// Schedule adalah sub-jadwal opsional milik Class (lebih granular dari
// pola mingguan di Class sendiri). day_of_week disimpan string di sumber
// data lama, jadi tetap string dan diparse saat materialisasi.
type Schedule struct {
	ID        int     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ClassID   int     `gorm:"column:class_id;not null;index" json:"class_id"`
	DayOfWeek *string `gorm:"column:day_of_week;type:varchar(8)" json:"day_of_week"`
	StartTime *string `gorm:"column:start_time;type:time" json:"start_time"`
	EndTime   *string `gorm:"column:end_time;type:time" json:"end_time"`
	Room      *string `gorm:"column:room;type:varchar(64)" json:"room"`
}

func (Schedule) TableName() string { return "schedules" }
