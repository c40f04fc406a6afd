package model

// Status pembayaran SPP.
const (
	TuitionStatusPending   = "PENDING"
	TuitionStatusPartial   = "PARTIAL"
	TuitionStatusCompleted = "COMPLETED"
)

// Tuition: satu baris per (student, semester). total_amount dan status
// adalah nilai turunan; paid_amount satu-satunya state eksternal yang
// harus dipertahankan saat recompute.
type Tuition struct {
	ID          int    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StudentID   int    `gorm:"column:student_id;not null;index;uniqueIndex:uq_tuitions_student_semester" json:"student_id"`
	Semester    string `gorm:"column:semester;type:varchar(16);not null;uniqueIndex:uq_tuitions_student_semester" json:"semester"`
	TotalAmount int64  `gorm:"column:total_amount;not null;default:0" json:"total_amount"`
	PaidAmount  int64  `gorm:"column:paid_amount;not null;default:0" json:"paid_amount"`
	Status      string `gorm:"column:status;type:varchar(16);not null;default:'PENDING'" json:"status"`
}

func (Tuition) TableName() string { return "tuitions" }

// DeriveStatus menurunkan status dari total & paid sesuai aturan tetap:
// total 0 → COMPLETED; paid >= total → COMPLETED; paid > 0 → PARTIAL;
// sisanya PENDING.
func DeriveStatus(totalAmount, paidAmount int64) string {
	switch {
	case totalAmount == 0:
		return TuitionStatusCompleted
	case paidAmount >= totalAmount:
		return TuitionStatusCompleted
	case paidAmount > 0:
		return TuitionStatusPartial
	default:
		return TuitionStatusPending
	}
}
