package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "lms_backend/internals/features/academics/semesters/dto"
	m "lms_backend/internals/features/academics/semesters/model"
	helper "lms_backend/internals/helpers"
)

type SemesterController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *SemesterController {
	return &SemesterController{DB: db, Validate: v}
}

/* =========================
   Academic years
   ========================= */

func (ctl *SemesterController) CreateAcademicYear(c *fiber.Ctx) error {
	var req d.CreateAcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	year, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.DB.Create(year).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Academic year already exists")
	}
	return helper.JsonCreated(c, "Academic year created", year)
}

func (ctl *SemesterController) ListAcademicYears(c *fiber.Ctx) error {
	var years []m.AcademicYear
	if err := ctl.DB.Preload("Semesters").Order("year").Find(&years).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", years)
}

/* =========================
   Semesters
   ========================= */

func (ctl *SemesterController) CreateSemester(c *fiber.Ctx) error {
	var req d.CreateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	semester, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var year m.AcademicYear
	if err := ctl.DB.First(&year, semester.AcademicYearID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Academic year not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.DB.Create(semester).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Semester code already exists")
	}
	return helper.JsonCreated(c, "Semester created", semester)
}

func (ctl *SemesterController) ListSemesters(c *fiber.Ctx) error {
	var semesters []m.Semester
	if err := ctl.DB.Order("code").Find(&semesters).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", semesters)
}

func (ctl *SemesterController) GetSemester(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id is invalid")
	}

	var semester m.Semester
	if err := ctl.DB.First(&semester, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Semester not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", semester)
}
