package model

import (
	classModel "lms_backend/internals/features/academics/classes/model"
)

// Enrollment adalah pasangan (student, class); unik per pasangan.
type Enrollment struct {
	ID        int `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StudentID int `gorm:"column:student_id;not null;index;uniqueIndex:uq_enrollments_student_class" json:"student_id"`
	ClassID   int `gorm:"column:class_id;not null;index;uniqueIndex:uq_enrollments_student_class" json:"class_id"`

	Class  *classModel.Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Grades []Grade           `gorm:"foreignKey:EnrollmentID" json:"grades,omitempty"`
}

func (Enrollment) TableName() string { return "enrollments" }
