package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctr "lms_backend/internals/features/finance/tuitions/controller"
)

func TuitionRoutes(admin fiber.Router, user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := ctr.New(db, v)

	admin.Get("/tuitions", ctl.List)
	admin.Put("/tuitions/:id/payment", ctl.UpdatePayment)
	admin.Get("/settings/tuition-price", ctl.GetPrice)
	admin.Put("/settings/tuition-price", ctl.SetPrice)

	user.Get("/students/:student_id/tuitions", ctl.StudentTuitions)
}
