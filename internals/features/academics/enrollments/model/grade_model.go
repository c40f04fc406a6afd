package model

// GradeTypeFinal adalah tag nilai yang diprioritaskan saat menentukan
// nilai akhir sebuah enrollment.
const GradeTypeFinal = "final"

// Grade menyimpan satu jenis nilai (midterm/final/assignment/...) untuk
// satu enrollment; unik per (enrollment, type). Weight disimpan tapi
// kebijakan pemilihan nilai default tidak menggabungkannya (lihat
// results/service).
type Grade struct {
	ID           int     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EnrollmentID int     `gorm:"column:enrollment_id;not null;index;uniqueIndex:uq_grades_enrollment_type" json:"enrollment_id"`
	GradeType    string  `gorm:"column:grade_type;type:varchar(32);not null;uniqueIndex:uq_grades_enrollment_type" json:"grade_type"`
	Score        float64 `gorm:"column:score;not null" json:"score"`
	// Tanpa tag default: 0 adalah nilai weight yang sah dan harus
	// tersimpan persis seperti dikirim caller.
	Weight       float64 `gorm:"column:weight;not null" json:"weight"`
}

func (Grade) TableName() string { return "grades" }
