package model

import "time"

type AcademicYear struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Year      string    `gorm:"column:year;type:varchar(16);uniqueIndex;not null" json:"year"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null" json:"end_date"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	Semesters []Semester `gorm:"foreignKey:AcademicYearID" json:"semesters,omitempty"`
}

func (AcademicYear) TableName() string { return "academic_years" }

// Semester punya kalender (start_date/end_date) dan code yang dipakai
// sebagai join key dari Class.semester (string denormalisasi).
type Semester struct {
	ID             int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code           string    `gorm:"column:code;type:varchar(16);uniqueIndex;not null" json:"code"`
	Name           string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	AcademicYearID int       `gorm:"column:academic_year_id;not null" json:"academic_year_id"`
	SemesterNumber int       `gorm:"column:semester_number;not null" json:"semester_number"`
	StartDate      time.Time `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"column:end_date;type:date;not null" json:"end_date"`
	IsActive       bool      `gorm:"column:is_active;not null;default:false" json:"is_active"`
}

func (Semester) TableName() string { return "semesters" }
