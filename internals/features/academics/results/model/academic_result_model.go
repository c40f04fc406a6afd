package model

import "time"

// AcademicResult adalah baris turunan per (student, semester). Di-upsert,
// tidak pernah di-append; setelah recompute sukses nilainya murni fungsi
// dari data sumber saat itu.
type AcademicResult struct {
	ID         int `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StudentID  int `gorm:"column:student_id;not null;index;uniqueIndex:uq_academic_results_student_semester" json:"student_id"`
	SemesterID int `gorm:"column:semester_id;not null;uniqueIndex:uq_academic_results_student_semester" json:"semester_id"`

	GPA float64 `gorm:"column:gpa;not null;default:0" json:"gpa"`
	// CPA per-semester sudah tidak dihitung lagi (pindah ke
	// CumulativeResult); kolom dipertahankan untuk kompatibilitas data.
	CPA float64 `gorm:"column:cpa;not null;default:0" json:"cpa"`

	TotalCredits     int `gorm:"column:total_credits;not null;default:0" json:"total_credits"`
	CompletedCredits int `gorm:"column:completed_credits;not null;default:0" json:"completed_credits"`
	FailedCredits    int `gorm:"column:failed_credits;not null;default:0" json:"failed_credits"`

	CalculatedAt time.Time `gorm:"column:calculated_at;type:timestamptz;not null;autoUpdateTime" json:"calculated_at"`
}

func (AcademicResult) TableName() string { return "academic_results" }
