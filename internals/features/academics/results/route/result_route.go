package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctr "lms_backend/internals/features/academics/results/controller"
)

func ResultRoutes(admin fiber.Router, user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := ctr.New(db, v)

	admin.Post("/semesters/:id/calculate-results", ctl.CalculateSemester)
	admin.Post("/semesters/:id/students/:student_id/recalculate", ctl.RecalculateStudent)

	user.Get("/students/:student_id/results", ctl.StudentResults)
	user.Get("/students/:student_id/cumulative", ctl.StudentCumulative)
}
