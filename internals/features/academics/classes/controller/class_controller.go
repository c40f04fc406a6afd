package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "lms_backend/internals/features/academics/classes/dto"
	m "lms_backend/internals/features/academics/classes/model"
	svc "lms_backend/internals/features/academics/classes/service"
	courseModel "lms_backend/internals/features/academics/courses/model"
	semesterModel "lms_backend/internals/features/academics/semesters/model"
	helper "lms_backend/internals/helpers"
)

type ClassController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Timetable *svc.TimetableService
}

func New(db *gorm.DB, v *validator.Validate) *ClassController {
	return &ClassController{DB: db, Validate: v, Timetable: svc.NewTimetableService(db)}
}

func parseIDParam(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

// ensureSemesterCode memvalidasi code semester hasil denormalisasi saat
// tulis Class; mismatch adalah error integritas data (400), bukan
// timetable kosong diam-diam.
func (ctl *ClassController) ensureSemesterCode(code string) error {
	var semester semesterModel.Semester
	if err := ctl.DB.Where("code = ?", code).First(&semester).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Semester code "+code+" not found")
		}
		return err
	}
	return nil
}

/* =========================
   Create / Update
   ========================= */

func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req d.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var course courseModel.Course
	if err := ctl.DB.First(&course, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.ensureSemesterCode(req.Semester); err != nil {
		return helper.FromFiberError(c, err)
	}

	class := req.ToModel()
	if err := ctl.DB.Create(class).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Class code already exists")
	}

	// materialisasi pertama; kelas baru belum punya enrollment jadi aman
	if err := ctl.Timetable.Generate(class.ID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Class created", class)
}

func (ctl *ClassController) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req d.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var class m.Class
	if err := ctl.DB.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if req.Semester != nil {
		if err := ctl.ensureSemesterCode(*req.Semester); err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	scheduleChanged := req.Apply(&class)
	if err := ctl.DB.Save(&class).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if scheduleChanged {
		if err := ctl.Timetable.Generate(class.ID); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonUpdated(c, "Class updated", class)
}

/* =========================
   Read
   ========================= */

func (ctl *ClassController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&m.Class{})
	if semester := c.Query("semester"); semester != "" {
		q = q.Where("semester = ?", semester)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var classes []m.Class
	if err := q.Preload("Course").Order("code").
		Offset(p.Offset).Limit(p.Limit).Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", classes, helper.BuildPagination(total, p))
}

func (ctl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var class m.Class
	if err := ctl.DB.Preload("Course").Preload("Schedules").First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", class)
}

// GetTimetable mengembalikan baris pertemuan hasil materialisasi.
func (ctl *ClassController) GetTimetable(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []m.Timetable
	if err := ctl.DB.Where("class_id = ?", id).
		Order("date, start_period").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}

// RegenerateTimetable memaksa materialisasi ulang (endpoint operasional).
func (ctl *ClassController) RegenerateTimetable(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Timetable.Generate(id); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Timetable regenerated", fiber.Map{"class_id": id})
}
