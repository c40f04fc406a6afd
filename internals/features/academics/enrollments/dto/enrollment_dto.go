package dto

/* =========================
   Requests
   ========================= */

type BulkEnrollRequest struct {
	StudentIDs []int `json:"student_ids" validate:"required,min=1,dive,min=1"`
}

type RecordGradeRequest struct {
	GradeType string   `json:"grade_type" validate:"required,max=32"`
	Score     float64  `json:"score" validate:"min=0,max=10"`
	Weight    *float64 `json:"weight" validate:"omitempty,min=0,max=1"`
}

// EffectiveWeight: weight yang dikirim caller apa adanya (0 sekalipun),
// atau 1.0 kalau field-nya tidak dikirim.
func (r RecordGradeRequest) EffectiveWeight() float64 {
	if r.Weight == nil {
		return 1.0
	}
	return *r.Weight
}

/* =========================
   Responses
   ========================= */

// RecomputeOK / RecomputeFailed: status recompute turunan yang
// dilaporkan eksplisit ke pemanggil, bukan cuma baris log. Tulisan nilai
// atau enrollment-nya sendiri tetap sukses.
const (
	RecomputeOK     = "ok"
	RecomputeFailed = "failed"
)

type RecordGradeResponse struct {
	Grade          any    `json:"grade"`
	Recompute      string `json:"recompute"`
	RecomputeError string `json:"recompute_error,omitempty"`
}

type BulkEnrollResponse struct {
	AddedCount       int    `json:"added_count"`
	SkippedCount     int    `json:"skipped_count"`
	// Kosong (dan tidak diserialisasi) kalau tidak ada recompute yang
	// dijalankan, mis. semua kandidat dilewati.
	TuitionRecompute string `json:"tuition_recompute,omitempty"`
}
