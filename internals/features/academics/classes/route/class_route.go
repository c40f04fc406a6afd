package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctr "lms_backend/internals/features/academics/classes/controller"
)

func ClassRoutes(admin fiber.Router, public fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := ctr.New(db, v)

	classes := admin.Group("/classes")
	classes.Post("/", ctl.Create)
	classes.Put("/:id", ctl.Update)
	classes.Post("/:id/timetable/regenerate", ctl.RegenerateTimetable)

	public.Get("/classes", ctl.List)
	public.Get("/classes/:id", ctl.GetByID)
	public.Get("/classes/:id/timetable", ctl.GetTimetable)
}
