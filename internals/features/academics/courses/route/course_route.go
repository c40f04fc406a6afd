package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctr "lms_backend/internals/features/academics/courses/controller"
)

// CourseRoutes: CRUD mata kuliah & jurusan (permukaan kolaborator, bukan engine).
func CourseRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := ctr.New(db, v)

	courses := admin.Group("/courses")
	courses.Post("/", ctl.Create)
	courses.Get("/", ctl.List)
	courses.Get("/:id", ctl.GetByID)
	courses.Put("/:id", ctl.Update)
	courses.Delete("/:id", ctl.Delete)

	departments := admin.Group("/departments")
	departments.Post("/", ctl.CreateDepartment)
	departments.Get("/", ctl.ListDepartments)
}
