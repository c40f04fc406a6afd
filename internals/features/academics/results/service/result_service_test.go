package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	classModel "lms_backend/internals/features/academics/classes/model"
	courseModel "lms_backend/internals/features/academics/courses/model"
	enrollModel "lms_backend/internals/features/academics/enrollments/model"
	m "lms_backend/internals/features/academics/results/model"
	semesterModel "lms_backend/internals/features/academics/semesters/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: per koneksi; paksa satu koneksi supaya semua query lihat DB yang sama
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		courseModel.Course{},
		semesterModel.Semester{},
		classModel.Class{},
		classModel.Schedule{},
		classModel.Timetable{},
		enrollModel.Enrollment{},
		enrollModel.Grade{},
		m.AcademicResult{},
		m.CumulativeResult{},
	))
	return db
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// seedEnrollment membuat course+class+enrollment untuk satu student dan
// mengembalikan enrollment id.
func seedEnrollment(t *testing.T, db *gorm.DB, studentID int, code string, credits int, semester string) int {
	t.Helper()

	course := courseModel.Course{Code: "C-" + code, Name: "Course " + code, Credits: credits}
	require.NoError(t, db.Create(&course).Error)

	class := classModel.Class{Code: code, CourseID: course.ID, Semester: semester}
	require.NoError(t, db.Create(&class).Error)

	enrollment := enrollModel.Enrollment{StudentID: studentID, ClassID: class.ID}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment.ID
}

func addGrade(t *testing.T, db *gorm.DB, enrollmentID int, gradeType string, score float64) {
	t.Helper()
	require.NoError(t, db.Create(&enrollModel.Grade{
		EnrollmentID: enrollmentID,
		GradeType:    gradeType,
		Score:        score,
		Weight:       1.0,
	}).Error)
}

func TestCalculateSemesterGPA(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(db)

	require.NoError(t, db.Create(&semesterModel.Semester{
		Code: "20231", Name: "HK1 2023", AcademicYearID: 1, SemesterNumber: 1,
		StartDate: date(2023, 9, 4), EndDate: date(2023, 12, 24),
	}).Error)

	// 3 kelas: 3/3/4 sks dengan final 7.5/5.0/4.0 → GPA 17.5/10 = 1.75
	e1 := seedEnrollment(t, db, 1, "MATH1", 3, "20231")
	e2 := seedEnrollment(t, db, 1, "ALG1", 3, "20231")
	e3 := seedEnrollment(t, db, 1, "PHYS1", 4, "20231")
	addGrade(t, db, e1, "final", 7.5)
	addGrade(t, db, e2, "final", 5.0)
	addGrade(t, db, e3, "final", 4.0)

	agg, err := svc.CalculateSemesterGPA(1, "20231")
	require.NoError(t, err)
	require.Equal(t, 1.75, agg.GPA)
	require.Equal(t, 10, agg.TotalCredits)
	require.Equal(t, 6, agg.CompletedCredits)
	require.Equal(t, 4, agg.FailedCredits)
}

func TestCalculateSemesterGPASkipsUngraded(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(db)

	e1 := seedEnrollment(t, db, 1, "MATH1", 3, "20231")
	seedEnrollment(t, db, 1, "ALG1", 3, "20231") // tanpa nilai → dilewati
	addGrade(t, db, e1, "final", 8.0)

	agg, err := svc.CalculateSemesterGPA(1, "20231")
	require.NoError(t, err)
	require.Equal(t, 3.5, agg.GPA)
	require.Equal(t, 3, agg.TotalCredits)
	require.Equal(t, 0, agg.FailedCredits)
}

func TestCalculateSemesterGPANoEnrollments(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(db)

	agg, err := svc.CalculateSemesterGPA(99, "20231")
	require.NoError(t, err)
	require.Equal(t, Aggregate{}, agg)
}

func TestSaveSemesterResultUpsertIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(db)

	semester := semesterModel.Semester{
		Code: "20231", Name: "HK1 2023", AcademicYearID: 1, SemesterNumber: 1,
		StartDate: date(2023, 9, 4), EndDate: date(2023, 12, 24),
	}
	require.NoError(t, db.Create(&semester).Error)

	e1 := seedEnrollment(t, db, 1, "MATH1", 3, "20231")
	addGrade(t, db, e1, "final", 7.0)

	first, err := svc.SaveSemesterResult(1, semester.ID)
	require.NoError(t, err)
	second, err := svc.SaveSemesterResult(1, semester.ID)
	require.NoError(t, err)

	// data sumber sama → nilai tersimpan sama, tetap satu baris
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.GPA, second.GPA)

	var count int64
	require.NoError(t, db.Model(&m.AcademicResult{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
	var cumCount int64
	require.NoError(t, db.Model(&m.CumulativeResult{}).Count(&cumCount).Error)
	require.EqualValues(t, 1, cumCount)
}

func TestSaveSemesterResultUnknownSemester(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(db)

	_, err := svc.SaveSemesterResult(1, 12345)
	require.Error(t, err)
}

func TestCumulativeCPAAcrossSemesters(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(db)

	// dua semester: 3 sks @ 8.0 (3.5) dan 3 sks @ 4.0 (1.0) → CPA 2.25
	e1 := seedEnrollment(t, db, 1, "MATH1", 3, "20231")
	e2 := seedEnrollment(t, db, 1, "MATH2", 3, "20232")
	addGrade(t, db, e1, "final", 8.0)
	addGrade(t, db, e2, "final", 4.0)

	cumulative, err := svc.UpdateCumulativeResult(1)
	require.NoError(t, err)
	require.Equal(t, 2.25, cumulative.CPA)
	require.Equal(t, 6, cumulative.TotalRegisteredCredits)
	require.Equal(t, 6, cumulative.TotalCompletedCredits)
	require.Equal(t, 0, cumulative.TotalFailedCredits)
}

func TestCalculateAllInSemester(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(db)

	semester := semesterModel.Semester{
		Code: "20231", Name: "HK1 2023", AcademicYearID: 1, SemesterNumber: 1,
		StartDate: date(2023, 9, 4), EndDate: date(2023, 12, 24),
	}
	require.NoError(t, db.Create(&semester).Error)

	course := courseModel.Course{Code: "C1", Name: "Calc", Credits: 3}
	require.NoError(t, db.Create(&course).Error)
	class := classModel.Class{Code: "C1.1", CourseID: course.ID, Semester: "20231"}
	require.NoError(t, db.Create(&class).Error)

	for studentID := 1; studentID <= 3; studentID++ {
		enrollment := enrollModel.Enrollment{StudentID: studentID, ClassID: class.ID}
		require.NoError(t, db.Create(&enrollment).Error)
		addGrade(t, db, enrollment.ID, "final", 6.0)
	}

	count, err := svc.CalculateAllInSemester(semester.ID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	var results int64
	require.NoError(t, db.Model(&m.AcademicResult{}).Count(&results).Error)
	require.EqualValues(t, 3, results)
}
