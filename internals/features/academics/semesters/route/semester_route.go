package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctr "lms_backend/internals/features/academics/semesters/controller"
)

func SemesterRoutes(admin fiber.Router, public fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := ctr.New(db, v)

	years := admin.Group("/academic-years")
	years.Post("/", ctl.CreateAcademicYear)
	years.Get("/", ctl.ListAcademicYears)

	semesters := admin.Group("/semesters")
	semesters.Post("/", ctl.CreateSemester)

	public.Get("/semesters", ctl.ListSemesters)
	public.Get("/semesters/:id", ctl.GetSemester)
}
