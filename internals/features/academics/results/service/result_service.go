package service

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollModel "lms_backend/internals/features/academics/enrollments/model"
	m "lms_backend/internals/features/academics/results/model"
	semesterModel "lms_backend/internals/features/academics/semesters/model"
)

/* =========================
   Service & Constructor
   ========================= */

// ResultService menghitung dan menyimpan hasil akademik turunan
// (AcademicResult per semester + CumulativeResult seluruh riwayat).
type ResultService struct {
	DB       *gorm.DB
	Selector ScoreSelector
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{DB: db, Selector: SelectFinalFirst}
}

// Aggregate adalah hasil agregasi satu batch enrollment.
type Aggregate struct {
	GPA              float64
	TotalCredits     int
	CompletedCredits int
	FailedCredits    int
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// aggregate menjalankan rumus inti: GPA = Σ(skala4 × sks) / Σ(sks).
// Enrollment tanpa nilai dilewati; skala4 >= 1.0 dihitung lulus.
// Class.Course harus sudah ter-preload.
func (s *ResultService) aggregate(enrollments []enrollModel.Enrollment) Aggregate {
	var agg Aggregate
	var weightedSum float64

	for _, e := range enrollments {
		score10, ok := s.Selector(e.Grades)
		if !ok {
			continue
		}
		score4, _ := ConvertScore(score10)

		if e.Class == nil || e.Class.Course == nil {
			continue
		}
		credits := e.Class.Course.Credits

		agg.TotalCredits += credits
		weightedSum += score4 * float64(credits)

		if score4 >= 1.0 {
			agg.CompletedCredits += credits
		} else {
			agg.FailedCredits += credits
		}
	}

	if agg.TotalCredits == 0 {
		return Aggregate{}
	}
	agg.GPA = round2(weightedSum / float64(agg.TotalCredits))
	return agg
}

/* =========================
   GPA per semester
   ========================= */

// CalculateSemesterGPA mengagregasi seluruh enrollment student pada satu
// semester (join via Class.semester == code).
func (s *ResultService) CalculateSemesterGPA(studentID int, semesterCode string) (Aggregate, error) {
	var enrollments []enrollModel.Enrollment
	if err := s.DB.
		Joins("JOIN classes ON classes.id = enrollments.class_id").
		Where("enrollments.student_id = ? AND classes.semester = ?", studentID, semesterCode).
		Preload("Class.Course").
		Preload("Grades", func(db *gorm.DB) *gorm.DB { return db.Order("grades.id") }).
		Find(&enrollments).Error; err != nil {
		return Aggregate{}, err
	}
	return s.aggregate(enrollments), nil
}

// SaveSemesterResult menghitung GPA semester lalu upsert AcademicResult
// keyed (student, semester). Idempoten: data sumber sama → nilai tersimpan
// sama. CPA kumulatif ikut di-update di akhir (rantai eksplisit, bukan
// event) supaya tidak drift.
func (s *ResultService) SaveSemesterResult(studentID, semesterID int) (*m.AcademicResult, error) {
	var semester semesterModel.Semester
	if err := s.DB.First(&semester, semesterID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Semester not found")
		}
		return nil, err
	}

	agg, err := s.CalculateSemesterGPA(studentID, semester.Code)
	if err != nil {
		return nil, err
	}

	var result m.AcademicResult
	err = s.DB.Where("student_id = ? AND semester_id = ?", studentID, semesterID).
		First(&result).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		result = m.AcademicResult{
			StudentID:        studentID,
			SemesterID:       semesterID,
			GPA:              agg.GPA,
			TotalCredits:     agg.TotalCredits,
			CompletedCredits: agg.CompletedCredits,
			FailedCredits:    agg.FailedCredits,
		}
		if err := s.DB.Create(&result).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		result.GPA = agg.GPA
		result.TotalCredits = agg.TotalCredits
		result.CompletedCredits = agg.CompletedCredits
		result.FailedCredits = agg.FailedCredits
		if err := s.DB.Save(&result).Error; err != nil {
			return nil, err
		}
	}

	if _, err := s.UpdateCumulativeResult(studentID); err != nil {
		return nil, err
	}
	return &result, nil
}

/* =========================
   CPA kumulatif
   ========================= */

// CalculateCumulativeCPA: algoritma sama dengan GPA semester tapi atas
// SEMUA enrollment student, lintas semester.
func (s *ResultService) CalculateCumulativeCPA(studentID int) (Aggregate, error) {
	var enrollments []enrollModel.Enrollment
	if err := s.DB.
		Where("enrollments.student_id = ?", studentID).
		Preload("Class.Course").
		Preload("Grades", func(db *gorm.DB) *gorm.DB { return db.Order("grades.id") }).
		Find(&enrollments).Error; err != nil {
		return Aggregate{}, err
	}
	return s.aggregate(enrollments), nil
}

// UpdateCumulativeResult meng-upsert satu-satunya baris CumulativeResult
// milik student.
func (s *ResultService) UpdateCumulativeResult(studentID int) (*m.CumulativeResult, error) {
	agg, err := s.CalculateCumulativeCPA(studentID)
	if err != nil {
		return nil, err
	}

	var cumulative m.CumulativeResult
	err = s.DB.Where("student_id = ?", studentID).First(&cumulative).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		cumulative = m.CumulativeResult{
			StudentID:              studentID,
			CPA:                    agg.GPA,
			TotalRegisteredCredits: agg.TotalCredits,
			TotalCompletedCredits:  agg.CompletedCredits,
			TotalFailedCredits:     agg.FailedCredits,
		}
		if err := s.DB.Create(&cumulative).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		cumulative.CPA = agg.GPA
		cumulative.TotalRegisteredCredits = agg.TotalCredits
		cumulative.TotalCompletedCredits = agg.CompletedCredits
		cumulative.TotalFailedCredits = agg.FailedCredits
		if err := s.DB.Save(&cumulative).Error; err != nil {
			return nil, err
		}
	}
	return &cumulative, nil
}

/* =========================
   Batch per semester
   ========================= */

// CalculateAllInSemester menjalankan SaveSemesterResult untuk semua
// student yang terdaftar di semester tersebut. Return jumlah student.
func (s *ResultService) CalculateAllInSemester(semesterID int) (int, error) {
	var semester semesterModel.Semester
	if err := s.DB.First(&semester, semesterID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, fiber.NewError(fiber.StatusNotFound, "Semester not found")
		}
		return 0, err
	}

	var studentIDs []int
	if err := s.DB.Model(&enrollModel.Enrollment{}).
		Joins("JOIN classes ON classes.id = enrollments.class_id").
		Where("classes.semester = ?", semester.Code).
		Distinct().
		Pluck("enrollments.student_id", &studentIDs).Error; err != nil {
		return 0, err
	}

	count := 0
	for _, studentID := range studentIDs {
		if _, err := s.SaveSemesterResult(studentID, semesterID); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
