package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lms_backend/internals/configs"
	classModel "lms_backend/internals/features/academics/classes/model"
	courseModel "lms_backend/internals/features/academics/courses/model"
	enrollModel "lms_backend/internals/features/academics/enrollments/model"
	resultModel "lms_backend/internals/features/academics/results/model"
	semesterModel "lms_backend/internals/features/academics/semesters/model"
	tuitionModel "lms_backend/internals/features/finance/tuitions/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=lms_backend&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connect failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menyamakan skema dengan model.
func Migrate() {
	if err := DB.AutoMigrate(
		courseModel.Department{},
		courseModel.Course{},
		semesterModel.AcademicYear{},
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
	); err != nil {
		log.Fatalf("❌ migrate failed: %v", err)
	}
	log.Println("✅ Migration done.")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
