package dto

import (
	"strings"

	m "lms_backend/internals/features/academics/courses/model"
)

/* =========================
   Requests
   ========================= */

type CreateCourseRequest struct {
	Code    string `json:"code" validate:"required,max=32"`
	Name    string `json:"name" validate:"required,max=200"`
	Credits int    `json:"credits" validate:"required,min=1,max=20"`
}

func (r *CreateCourseRequest) ToModel() *m.Course {
	return &m.Course{
		Code:    strings.TrimSpace(r.Code),
		Name:    strings.TrimSpace(r.Name),
		Credits: r.Credits,
	}
}

type UpdateCourseRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Credits *int    `json:"credits" validate:"omitempty,min=1,max=20"`
}

func (r *UpdateCourseRequest) Apply(course *m.Course) {
	if r.Name != nil {
		course.Name = strings.TrimSpace(*r.Name)
	}
	if r.Credits != nil {
		course.Credits = *r.Credits
	}
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,max=160"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

func (r *CreateDepartmentRequest) ToModel() *m.Department {
	return &m.Department{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
	}
}
