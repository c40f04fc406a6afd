package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	classModel "lms_backend/internals/features/academics/classes/model"
	timetableSvc "lms_backend/internals/features/academics/classes/service"
	courseModel "lms_backend/internals/features/academics/courses/model"
	enrollModel "lms_backend/internals/features/academics/enrollments/model"
	resultModel "lms_backend/internals/features/academics/results/model"
	semesterModel "lms_backend/internals/features/academics/semesters/model"
	tuitionModel "lms_backend/internals/features/finance/tuitions/model"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		courseModel.Course{},
		semesterModel.Semester{},
		classModel.Class{},
		classModel.Schedule{},
		classModel.Timetable{},
		enrollModel.Enrollment{},
		enrollModel.Grade{},
		resultModel.AcademicResult{},
		resultModel.CumulativeResult{},
		tuitionModel.Tuition{},
		tuitionModel.Setting{},
	))

	app := fiber.New()
	ctl := New(db, validator.New())
	app.Post("/classes/:class_id/enrollments", ctl.BulkEnroll)
	app.Post("/enrollments/:id/grades", ctl.RecordGrade)
	app.Delete("/enrollments/:id", ctl.Withdraw)
	return app, db
}

func ptr[T any](v T) *T { return &v }

func seedSemester(t *testing.T, db *gorm.DB) *semesterModel.Semester {
	t.Helper()
	semester := semesterModel.Semester{
		Code: "20231", Name: "HK1 2023", AcademicYearID: 1, SemesterNumber: 1,
		StartDate: time.Date(2023, 9, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&semester).Error)
	return &semester
}

func seedClass(t *testing.T, db *gorm.DB, code string, credits, maxStudents, dayOfWeek, startPeriod, endPeriod int) *classModel.Class {
	t.Helper()

	course := courseModel.Course{Code: "C-" + code, Name: "Course " + code, Credits: credits}
	require.NoError(t, db.Create(&course).Error)

	class := classModel.Class{
		Code:        code,
		CourseID:    course.ID,
		Semester:    "20231",
		MaxStudents: maxStudents,
		DayOfWeek:   ptr(dayOfWeek),
		StartWeek:   ptr(1),
		EndWeek:     ptr(10),
		StartPeriod: ptr(startPeriod),
		EndPeriod:   ptr(endPeriod),
		Room:        ptr("A101"),
	}
	require.NoError(t, db.Create(&class).Error)
	require.NoError(t, timetableSvc.NewTimetableService(db).Generate(class.ID))
	return &class
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestBulkEnrollHappyPath(t *testing.T) {
	app, db := newTestApp(t)
	seedSemester(t, db)
	class := seedClass(t, db, "SE101", 3, 50, 2, 1, 3)

	status, body := doJSON(t, app, "POST", "/classes/1/enrollments",
		fiber.Map{"student_ids": []int{1, 2}})
	require.Equal(t, fiber.StatusCreated, status)

	data := body["data"].(map[string]any)
	require.EqualValues(t, 2, data["added_count"])
	require.Equal(t, "ok", data["tuition_recompute"])

	var enrollments int64
	require.NoError(t, db.Model(&enrollModel.Enrollment{}).
		Where("class_id = ?", class.ID).Count(&enrollments).Error)
	require.EqualValues(t, 2, enrollments)

	// tuition langsung terhitung: 3 sks × harga default
	var tuition tuitionModel.Tuition
	require.NoError(t, db.Where("student_id = ? AND semester = ?", 1, "20231").
		First(&tuition).Error)
	require.EqualValues(t, 3*tuitionModel.DefaultPricePerCredit, tuition.TotalAmount)

	// enroll ulang student yang sama → dilewati, bukan error
	status, body = doJSON(t, app, "POST", "/classes/1/enrollments",
		fiber.Map{"student_ids": []int{1, 2}})
	require.Equal(t, fiber.StatusOK, status)
	data = body["data"].(map[string]any)
	require.EqualValues(t, 0, data["added_count"])
	require.EqualValues(t, 2, data["skipped_count"])

	// tidak ada recompute yang jalan → field statusnya tidak ikut keluar
	_, present := data["tuition_recompute"]
	require.False(t, present)
}

func TestBulkEnrollRejectsOnConflict(t *testing.T) {
	app, db := newTestApp(t)
	seedSemester(t, db)
	seedClass(t, db, "SE101", 3, 50, 2, 1, 3) // id=1
	seedClass(t, db, "SE102", 3, 50, 2, 2, 4) // id=2, bentrok periode 2–3

	status, _ := doJSON(t, app, "POST", "/classes/1/enrollments",
		fiber.Map{"student_ids": []int{1}})
	require.Equal(t, fiber.StatusCreated, status)

	// satu kandidat bentrok → seluruh call ditolak, tidak ada admisi parsial
	status, body := doJSON(t, app, "POST", "/classes/2/enrollments",
		fiber.Map{"student_ids": []int{7, 1}})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, body["message"], "Schedule conflict")

	var count int64
	require.NoError(t, db.Model(&enrollModel.Enrollment{}).
		Where("class_id = ?", 2).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestBulkEnrollRejectsOverCapacity(t *testing.T) {
	app, db := newTestApp(t)
	seedSemester(t, db)
	seedClass(t, db, "SE101", 3, 1, 2, 1, 3)

	status, body := doJSON(t, app, "POST", "/classes/1/enrollments",
		fiber.Map{"student_ids": []int{1, 2}})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, body["message"], "capacity")

	var count int64
	require.NoError(t, db.Model(&enrollModel.Enrollment{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestBulkEnrollClassNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/classes/99/enrollments",
		fiber.Map{"student_ids": []int{1}})
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestRecordGradeUpsertAndRecompute(t *testing.T) {
	app, db := newTestApp(t)
	seedSemester(t, db)
	seedClass(t, db, "SE101", 3, 50, 2, 1, 3)

	status, _ := doJSON(t, app, "POST", "/classes/1/enrollments",
		fiber.Map{"student_ids": []int{1}})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, "POST", "/enrollments/1/grades",
		fiber.Map{"grade_type": "final", "score": 7.5, "weight": 1.0})
	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]any)
	require.Equal(t, "ok", data["recompute"])

	// recompute berantai: AcademicResult + CumulativeResult terisi
	var result resultModel.AcademicResult
	require.NoError(t, db.Where("student_id = ?", 1).First(&result).Error)
	require.Equal(t, 3.0, result.GPA)
	require.Equal(t, 3, result.TotalCredits)

	var cumulative resultModel.CumulativeResult
	require.NoError(t, db.Where("student_id = ?", 1).First(&cumulative).Error)
	require.Equal(t, 3.0, cumulative.CPA)

	// tulis ulang type yang sama → update, bukan baris baru
	status, _ = doJSON(t, app, "POST", "/enrollments/1/grades",
		fiber.Map{"grade_type": "final", "score": 9.0, "weight": 1.0})
	require.Equal(t, fiber.StatusCreated, status)

	var grades int64
	require.NoError(t, db.Model(&enrollModel.Grade{}).Count(&grades).Error)
	require.EqualValues(t, 1, grades)

	require.NoError(t, db.Where("student_id = ?", 1).First(&result).Error)
	require.Equal(t, 4.0, result.GPA)
}

func TestRecordGradeWeightStoredAsSupplied(t *testing.T) {
	app, db := newTestApp(t)
	seedSemester(t, db)
	seedClass(t, db, "SE101", 3, 50, 2, 1, 3)

	status, _ := doJSON(t, app, "POST", "/classes/1/enrollments",
		fiber.Map{"student_ids": []int{1}})
	require.Equal(t, fiber.StatusCreated, status)

	// weight 0 eksplisit harus tersimpan 0, bukan jatuh ke default
	status, _ = doJSON(t, app, "POST", "/enrollments/1/grades",
		fiber.Map{"grade_type": "midterm", "score": 6.0, "weight": 0.0})
	require.Equal(t, fiber.StatusCreated, status)

	var grade enrollModel.Grade
	require.NoError(t, db.Where("enrollment_id = ? AND grade_type = ?", 1, "midterm").
		First(&grade).Error)
	require.Equal(t, 0.0, grade.Weight)

	// field weight tidak dikirim → default 1.0
	status, _ = doJSON(t, app, "POST", "/enrollments/1/grades",
		fiber.Map{"grade_type": "final", "score": 8.0})
	require.Equal(t, fiber.StatusCreated, status)

	require.NoError(t, db.Where("enrollment_id = ? AND grade_type = ?", 1, "final").
		First(&grade).Error)
	require.Equal(t, 1.0, grade.Weight)
}

func TestGradeCreateRoundTripsZeroWeight(t *testing.T) {
	_, db := newTestApp(t)
	seedSemester(t, db)
	seedClass(t, db, "SE101", 3, 50, 2, 1, 3)
	require.NoError(t, db.Create(&enrollModel.Enrollment{StudentID: 1, ClassID: 1}).Error)

	require.NoError(t, db.Create(&enrollModel.Grade{
		EnrollmentID: 1,
		GradeType:    "assignment",
		Score:        7.0,
		Weight:       0,
	}).Error)

	var grade enrollModel.Grade
	require.NoError(t, db.Where("grade_type = ?", "assignment").First(&grade).Error)
	require.Equal(t, 0.0, grade.Weight)
}

func TestWithdrawReportsFailureOnMissingSemester(t *testing.T) {
	app, db := newTestApp(t)
	seedSemester(t, db)
	seedClass(t, db, "SE101", 3, 50, 2, 1, 3)

	status, _ := doJSON(t, app, "POST", "/classes/1/enrollments",
		fiber.Map{"student_ids": []int{1}})
	require.Equal(t, fiber.StatusCreated, status)

	// kelas menunjuk code semester yang tidak ada barisnya
	require.NoError(t, db.Model(&classModel.Class{}).
		Where("id = ?", 1).Update("semester", "20299").Error)

	status, body := doJSON(t, app, "DELETE", "/enrollments/1", nil)
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	require.Equal(t, "failed", data["recompute"])
}

func TestWithdrawRecomputesDerivedRows(t *testing.T) {
	app, db := newTestApp(t)
	seedSemester(t, db)
	seedClass(t, db, "SE101", 3, 50, 2, 1, 3)

	status, _ := doJSON(t, app, "POST", "/classes/1/enrollments",
		fiber.Map{"student_ids": []int{1}})
	require.Equal(t, fiber.StatusCreated, status)
	status, _ = doJSON(t, app, "POST", "/enrollments/1/grades",
		fiber.Map{"grade_type": "final", "score": 7.5, "weight": 1.0})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "DELETE", "/enrollments/1", nil)
	require.Equal(t, fiber.StatusOK, status)

	var enrollments int64
	require.NoError(t, db.Model(&enrollModel.Enrollment{}).Count(&enrollments).Error)
	require.EqualValues(t, 0, enrollments)

	// hasil turunan ikut kembali ke nol
	var result resultModel.AcademicResult
	require.NoError(t, db.Where("student_id = ?", 1).First(&result).Error)
	require.Equal(t, 0.0, result.GPA)
	require.Equal(t, 0, result.TotalCredits)

	var tuition tuitionModel.Tuition
	require.NoError(t, db.Where("student_id = ?", 1).First(&tuition).Error)
	require.EqualValues(t, 0, tuition.TotalAmount)
	require.Equal(t, tuitionModel.TuitionStatusCompleted, tuition.Status)
}
