package model

import "time"

// CumulativeResult: tepat satu baris per student, hasil agregasi seluruh
// riwayat enrollment (semua semester). Ditimpa di tempat.
type CumulativeResult struct {
	ID        int `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StudentID int `gorm:"column:student_id;not null;uniqueIndex" json:"student_id"`

	CPA float64 `gorm:"column:cpa;not null;default:0" json:"cpa"`

	TotalRegisteredCredits int `gorm:"column:total_registered_credits;not null;default:0" json:"total_registered_credits"`
	TotalCompletedCredits  int `gorm:"column:total_completed_credits;not null;default:0" json:"total_completed_credits"`
	TotalFailedCredits     int `gorm:"column:total_failed_credits;not null;default:0" json:"total_failed_credits"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;autoUpdateTime" json:"updated_at"`
}

func (CumulativeResult) TableName() string { return "cumulative_results" }
