package model

import (
	courseModel "lms_backend/internals/features/academics/courses/model"
)

// Konvensi hari: 2=Senin ... 8=Minggu (mengikuti penomoran tradisional thứ).
const (
	DayOfWeekMin = 2
	DayOfWeekMax = 8
)

// Minggu default kalau start_week/end_week kosong.
const (
	DefaultStartWeek = 1
	DefaultEndWeek   = 15
)

// Class adalah kelas paralel dari satu Course pada satu semester.
// Catatan: Semester di sini adalah code string (denormalisasi), bukan FK;
// validasi referensinya dilakukan di controller saat tulis.
type Class struct {
	ID          int    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"column:code;type:varchar(32);uniqueIndex;not null" json:"code"`
	CourseID    int    `gorm:"column:course_id;not null;index" json:"course_id"`
	LecturerID  int    `gorm:"column:lecturer_id;index" json:"lecturer_id"`
	Semester    string `gorm:"column:semester;type:varchar(16);index" json:"semester"`
	MaxStudents int    `gorm:"column:max_students;not null;default:50" json:"max_students"`

	// Pola recurrence mingguan
	StartWeek   *int    `gorm:"column:start_week" json:"start_week"`
	EndWeek     *int    `gorm:"column:end_week" json:"end_week"`
	DayOfWeek   *int    `gorm:"column:day_of_week" json:"day_of_week"` // 2=Mon .. 8=Sun
	StartPeriod *int    `gorm:"column:start_period" json:"start_period"`
	EndPeriod   *int    `gorm:"column:end_period" json:"end_period"`
	Room        *string `gorm:"column:room;type:varchar(64)" json:"room"`

	Course    *courseModel.Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Schedules []Schedule          `gorm:"foreignKey:ClassID" json:"schedules,omitempty"`
}

func (Class) TableName() string { return "classes" }
