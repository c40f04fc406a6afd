package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	m "lms_backend/internals/features/academics/results/model"
	svc "lms_backend/internals/features/academics/results/service"
	helper "lms_backend/internals/helpers"
)

type ResultController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Results  *svc.ResultService
}

func New(db *gorm.DB, v *validator.Validate) *ResultController {
	return &ResultController{DB: db, Validate: v, Results: svc.NewResultService(db)}
}

func parseIDParam(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

// CalculateSemester menjalankan recompute GPA untuk semua student yang
// terdaftar di satu semester; return jumlah student yang dihitung.
func (ctl *ResultController) CalculateSemester(c *fiber.Ctx) error {
	semesterID, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	count, err := ctl.Results.CalculateAllInSemester(semesterID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Semester results calculated", fiber.Map{"count": count})
}

// RecalculateStudent menjalankan recompute untuk satu student di satu
// semester (endpoint operasional; idempoten).
func (ctl *ResultController) RecalculateStudent(c *fiber.Ctx) error {
	semesterID, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := parseIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	result, err := ctl.Results.SaveSemesterResult(studentID, semesterID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Result recalculated", result)
}

// StudentResults: semua AcademicResult milik satu student.
func (ctl *ResultController) StudentResults(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var results []m.AcademicResult
	if err := ctl.DB.Where("student_id = ?", studentID).
		Order("semester_id").Find(&results).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", results)
}

// StudentCumulative: satu-satunya baris CPA kumulatif milik student.
func (ctl *ResultController) StudentCumulative(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var cumulative m.CumulativeResult
	if err := ctl.DB.Where("student_id = ?", studentID).First(&cumulative).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Cumulative result not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", cumulative)
}
