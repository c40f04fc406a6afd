package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "lms_backend/internals/features/academics/courses/dto"
	m "lms_backend/internals/features/academics/courses/model"
	helper "lms_backend/internals/helpers"
)

type CourseController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *CourseController {
	return &CourseController{DB: db, Validate: v}
}

func parseIDParam(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

/* =========================
   Courses
   ========================= */

func (ctl *CourseController) Create(c *fiber.Ctx) error {
	var req d.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	course := req.ToModel()
	if err := ctl.DB.Create(course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Course code already exists")
	}
	return helper.JsonCreated(c, "Course created", course)
}

func (ctl *CourseController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.Model(&m.Course{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var courses []m.Course
	if err := ctl.DB.Order("code").Offset(p.Offset).Limit(p.Limit).Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", courses, helper.BuildPagination(total, p))
}

func (ctl *CourseController) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var course m.Course
	if err := ctl.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", course)
}

func (ctl *CourseController) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req d.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var course m.Course
	if err := ctl.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	req.Apply(&course)
	if err := ctl.DB.Save(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Course updated", course)
}

func (ctl *CourseController) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.Delete(&m.Course{}, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Course deleted", fiber.Map{"id": id})
}

/* =========================
   Departments
   ========================= */

func (ctl *CourseController) CreateDepartment(c *fiber.Ctx) error {
	var req d.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	dept := req.ToModel()
	if err := ctl.DB.Create(dept).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Department name already exists")
	}
	return helper.JsonCreated(c, "Department created", dept)
}

func (ctl *CourseController) ListDepartments(c *fiber.Ctx) error {
	var depts []m.Department
	if err := ctl.DB.Order("name").Find(&depts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", depts)
}
