package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctr "lms_backend/internals/features/academics/enrollments/controller"
)

func EnrollmentRoutes(admin fiber.Router, user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := ctr.New(db, v)

	admin.Post("/classes/:class_id/enrollments", ctl.BulkEnroll)
	admin.Get("/classes/:class_id/enrollments", ctl.ListByClass)
	admin.Delete("/enrollments/:id", ctl.Withdraw)
	admin.Post("/enrollments/:id/grades", ctl.RecordGrade)

	user.Get("/students/:student_id/timetable", ctl.StudentTimetable)
}
