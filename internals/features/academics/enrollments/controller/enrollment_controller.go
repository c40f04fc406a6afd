package controller

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classModel "lms_backend/internals/features/academics/classes/model"
	timetableSvc "lms_backend/internals/features/academics/classes/service"
	d "lms_backend/internals/features/academics/enrollments/dto"
	m "lms_backend/internals/features/academics/enrollments/model"
	resultSvc "lms_backend/internals/features/academics/results/service"
	semesterModel "lms_backend/internals/features/academics/semesters/model"
	helper "lms_backend/internals/helpers"
	tuitionSvc "lms_backend/internals/features/finance/tuitions/service"
)

type EnrollmentController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Timetable *timetableSvc.TimetableService
	Results   *resultSvc.ResultService
	Tuitions  *tuitionSvc.TuitionService
}

func New(db *gorm.DB, v *validator.Validate) *EnrollmentController {
	return &EnrollmentController{
		DB:        db,
		Validate:  v,
		Timetable: timetableSvc.NewTimetableService(db),
		Results:   resultSvc.NewResultService(db),
		Tuitions:  tuitionSvc.NewTuitionService(db),
	}
}

func parseIDParam(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

/* =========================
   Bulk enroll (admission gate)
   ========================= */

// BulkEnroll mendaftarkan banyak student sekaligus ke satu kelas.
// Kandidat yang sudah terdaftar dilewati. Kapasitas kurang atau bentrok
// jadwal siapa pun → seluruh request ditolak, tidak ada admisi parsial.
// Setelah commit, tuition tiap student yang masuk dihitung ulang.
func (ctl *EnrollmentController) BulkEnroll(c *fiber.Ctx) error {
	classID, err := parseIDParam(c, "class_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req d.BulkEnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var class classModel.Class
	if err := ctl.DB.First(&class, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// skip yang sudah terdaftar
	var enrolled []int
	if err := ctl.DB.Model(&m.Enrollment{}).
		Where("class_id = ? AND student_id IN ?", classID, req.StudentIDs).
		Pluck("student_id", &enrolled).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	enrolledSet := map[int]bool{}
	for _, id := range enrolled {
		enrolledSet[id] = true
	}

	var candidates []int
	seen := map[int]bool{}
	for _, id := range req.StudentIDs {
		if enrolledSet[id] || seen[id] {
			continue
		}
		seen[id] = true
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return helper.JsonOK(c, "No new students to enroll", d.BulkEnrollResponse{
			SkippedCount: len(req.StudentIDs),
		})
	}

	// cek kapasitas di muka: tolak seluruh call kalau tidak muat
	var current int64
	if err := ctl.DB.Model(&m.Enrollment{}).
		Where("class_id = ?", classID).Count(&current).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	remaining := class.MaxStudents - int(current)
	if len(candidates) > remaining {
		return helper.JsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Class capacity exceeded: %d slot(s) remaining, %d candidate(s)", remaining, len(candidates)))
	}

	// gate bentrok jadwal: satu kandidat bentrok → seluruh call ditolak
	for _, studentID := range candidates {
		conflict, err := ctl.Timetable.HasConflict(studentID, classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if conflict {
			return helper.JsonError(c, fiber.StatusBadRequest,
				fmt.Sprintf("Schedule conflict for student %d", studentID))
		}
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		for _, studentID := range candidates {
			if err := tx.Create(&m.Enrollment{StudentID: studentID, ClassID: classID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// enrollment sudah commit; kegagalan recompute tuition dilaporkan
	// eksplisit, bukan ditelan
	tuitionStatus := d.RecomputeOK
	for _, studentID := range candidates {
		if _, err := ctl.Tuitions.Recalculate(studentID, class.Semester); err != nil {
			log.Printf("[ERROR] tuition recompute failed student=%d semester=%s: %v", studentID, class.Semester, err)
			tuitionStatus = d.RecomputeFailed
		}
	}

	return helper.JsonCreated(c, "Students enrolled", d.BulkEnrollResponse{
		AddedCount:       len(candidates),
		SkippedCount:     len(req.StudentIDs) - len(candidates),
		TuitionRecompute: tuitionStatus,
	})
}

/* =========================
   Withdraw
   ========================= */

// Withdraw menghapus satu enrollment beserta nilainya, lalu menghitung
// ulang hasil akademik dan tuition semester terkait.
func (ctl *EnrollmentController) Withdraw(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var enrollment m.Enrollment
	if err := ctl.DB.Preload("Class").First(&enrollment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enrollment_id = ?", id).Delete(&m.Grade{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m.Enrollment{}, id).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	recompute := d.RecomputeOK
	if enrollment.Class != nil && enrollment.Class.Semester != "" {
		var semester semesterModel.Semester
		if err := ctl.DB.Where("code = ?", enrollment.Class.Semester).First(&semester).Error; err != nil {
			log.Printf("[ERROR] semester lookup failed code=%s: %v", enrollment.Class.Semester, err)
			recompute = d.RecomputeFailed
		} else if _, err := ctl.Results.SaveSemesterResult(enrollment.StudentID, semester.ID); err != nil {
			log.Printf("[ERROR] result recompute failed student=%d: %v", enrollment.StudentID, err)
			recompute = d.RecomputeFailed
		}
		if _, err := ctl.Tuitions.Recalculate(enrollment.StudentID, enrollment.Class.Semester); err != nil {
			log.Printf("[ERROR] tuition recompute failed student=%d: %v", enrollment.StudentID, err)
			recompute = d.RecomputeFailed
		}
	}

	return helper.JsonDeleted(c, "Enrollment withdrawn", fiber.Map{
		"id":        id,
		"recompute": recompute,
	})
}

/* =========================
   Grades
   ========================= */

// RecordGrade meng-upsert nilai per (enrollment, grade_type) lalu
// menjalankan recompute GPA + CPA. Nilai tetap tersimpan meski recompute
// gagal; statusnya dilaporkan di response.
func (ctl *EnrollmentController) RecordGrade(c *fiber.Ctx) error {
	enrollmentID, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req d.RecordGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var enrollment m.Enrollment
	if err := ctl.DB.Preload("Class").First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// upsert per (enrollment, type)
	var grade m.Grade
	err = ctl.DB.Where("enrollment_id = ? AND grade_type = ?", enrollmentID, req.GradeType).
		First(&grade).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		grade = m.Grade{
			EnrollmentID: enrollmentID,
			GradeType:    req.GradeType,
			Score:        req.Score,
			Weight:       req.EffectiveWeight(),
		}
		if err := ctl.DB.Create(&grade).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	default:
		grade.Score = req.Score
		grade.Weight = req.EffectiveWeight()
		if err := ctl.DB.Save(&grade).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	resp := d.RecordGradeResponse{Grade: grade, Recompute: d.RecomputeOK}
	if enrollment.Class != nil && enrollment.Class.Semester != "" {
		var semester semesterModel.Semester
		err := ctl.DB.Where("code = ?", enrollment.Class.Semester).First(&semester).Error
		if err == nil {
			_, err = ctl.Results.SaveSemesterResult(enrollment.StudentID, semester.ID)
		}
		if err != nil {
			log.Printf("[ERROR] result recompute failed enrollment=%d: %v", enrollmentID, err)
			resp.Recompute = d.RecomputeFailed
			resp.RecomputeError = err.Error()
		}
	}

	return helper.JsonCreated(c, "Grade recorded", resp)
}

/* =========================
   Read
   ========================= */

// ListByClass mengembalikan enrollment satu kelas beserta nilainya.
func (ctl *EnrollmentController) ListByClass(c *fiber.Ctx) error {
	classID, err := parseIDParam(c, "class_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var enrollments []m.Enrollment
	if err := ctl.DB.Where("class_id = ?", classID).
		Preload("Grades").Find(&enrollments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", enrollments)
}

// StudentTimetable menggabungkan timetable semua kelas yang diambil
// seorang student.
func (ctl *EnrollmentController) StudentTimetable(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var classIDs []int
	if err := ctl.DB.Model(&m.Enrollment{}).
		Where("student_id = ?", studentID).
		Pluck("class_id", &classIDs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(classIDs) == 0 {
		return helper.JsonOK(c, "", []classModel.Timetable{})
	}

	var rows []classModel.Timetable
	if err := ctl.DB.Where("class_id IN ?", classIDs).
		Order("date, start_period").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}
