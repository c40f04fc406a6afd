package routes

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classRoute "lms_backend/internals/features/academics/classes/route"
	courseRoute "lms_backend/internals/features/academics/courses/route"
	enrollmentRoute "lms_backend/internals/features/academics/enrollments/route"
	resultRoute "lms_backend/internals/features/academics/results/route"
	semesterRoute "lms_backend/internals/features/academics/semesters/route"
	tuitionRoute "lms_backend/internals/features/finance/tuitions/route"
)

// SetupRoutes mendaftarkan semua feature route.
// Grup: /api/a (admin/dekan), /api/u (student), /api/public.
// Autentikasi & otorisasi adalah kolaborator eksternal; semua handler
// menerima identifier yang sudah tervalidasi.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()

	admin := app.Group("/api/a")
	user := app.Group("/api/u")
	public := app.Group("/api/public")

	log.Println("[INFO] Setting up CourseRoutes...")
	courseRoute.CourseRoutes(admin, db, v)

	log.Println("[INFO] Setting up SemesterRoutes...")
	semesterRoute.SemesterRoutes(admin, public, db, v)

	log.Println("[INFO] Setting up ClassRoutes...")
	classRoute.ClassRoutes(admin, public, db, v)

	log.Println("[INFO] Setting up EnrollmentRoutes...")
	enrollmentRoute.EnrollmentRoutes(admin, user, db, v)

	log.Println("[INFO] Setting up ResultRoutes...")
	resultRoute.ResultRoutes(admin, user, db, v)

	log.Println("[INFO] Setting up TuitionRoutes...")
	tuitionRoute.TuitionRoutes(admin, user, db, v)
}
