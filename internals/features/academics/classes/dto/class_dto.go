package dto

import (
	"strings"

	m "lms_backend/internals/features/academics/classes/model"
)

/* =========================
   Requests
   ========================= */

type CreateClassRequest struct {
	Code        string `json:"code" validate:"required,max=32"`
	CourseID    int    `json:"course_id" validate:"required,min=1"`
	LecturerID  int    `json:"lecturer_id" validate:"omitempty,min=1"`
	Semester    string `json:"semester" validate:"required,max=16"`
	MaxStudents int    `json:"max_students" validate:"omitempty,min=1,max=500"`

	StartWeek   *int    `json:"start_week" validate:"omitempty,min=1,max=52"`
	EndWeek     *int    `json:"end_week" validate:"omitempty,min=1,max=52"`
	DayOfWeek   *int    `json:"day_of_week" validate:"omitempty,min=2,max=8"`
	StartPeriod *int    `json:"start_period" validate:"omitempty,min=1,max=16"`
	EndPeriod   *int    `json:"end_period" validate:"omitempty,min=1,max=16"`
	Room        *string `json:"room" validate:"omitempty,max=64"`
}

func (r *CreateClassRequest) ToModel() *m.Class {
	maxStudents := r.MaxStudents
	if maxStudents == 0 {
		maxStudents = 50
	}
	return &m.Class{
		Code:        strings.TrimSpace(r.Code),
		CourseID:    r.CourseID,
		LecturerID:  r.LecturerID,
		Semester:    strings.TrimSpace(r.Semester),
		MaxStudents: maxStudents,
		StartWeek:   r.StartWeek,
		EndWeek:     r.EndWeek,
		DayOfWeek:   r.DayOfWeek,
		StartPeriod: r.StartPeriod,
		EndPeriod:   r.EndPeriod,
		Room:        r.Room,
	}
}

type UpdateClassRequest struct {
	LecturerID  *int    `json:"lecturer_id" validate:"omitempty,min=1"`
	Semester    *string `json:"semester" validate:"omitempty,max=16"`
	MaxStudents *int    `json:"max_students" validate:"omitempty,min=1,max=500"`

	StartWeek   *int    `json:"start_week" validate:"omitempty,min=1,max=52"`
	EndWeek     *int    `json:"end_week" validate:"omitempty,min=1,max=52"`
	DayOfWeek   *int    `json:"day_of_week" validate:"omitempty,min=2,max=8"`
	StartPeriod *int    `json:"start_period" validate:"omitempty,min=1,max=16"`
	EndPeriod   *int    `json:"end_period" validate:"omitempty,min=1,max=16"`
	Room        *string `json:"room" validate:"omitempty,max=64"`
}

func intChanged(old, next *int) bool {
	if next == nil {
		return false
	}
	return old == nil || *old != *next
}

// Apply menerapkan field yang diisi, dan melaporkan apakah ada field
// penentu jadwal ({start_week,end_week,day_of_week,start_period,
// end_period}) yang berubah — pemicu regenerasi timetable.
func (r *UpdateClassRequest) Apply(class *m.Class) (scheduleChanged bool) {
	if r.LecturerID != nil {
		class.LecturerID = *r.LecturerID
	}
	if r.Semester != nil {
		class.Semester = strings.TrimSpace(*r.Semester)
	}
	if r.MaxStudents != nil {
		class.MaxStudents = *r.MaxStudents
	}

	if intChanged(class.StartWeek, r.StartWeek) {
		scheduleChanged = true
	}
	if intChanged(class.EndWeek, r.EndWeek) {
		scheduleChanged = true
	}
	if intChanged(class.DayOfWeek, r.DayOfWeek) {
		scheduleChanged = true
	}
	if intChanged(class.StartPeriod, r.StartPeriod) {
		scheduleChanged = true
	}
	if intChanged(class.EndPeriod, r.EndPeriod) {
		scheduleChanged = true
	}

	if r.StartWeek != nil {
		class.StartWeek = r.StartWeek
	}
	if r.EndWeek != nil {
		class.EndWeek = r.EndWeek
	}
	if r.DayOfWeek != nil {
		class.DayOfWeek = r.DayOfWeek
	}
	if r.StartPeriod != nil {
		class.StartPeriod = r.StartPeriod
	}
	if r.EndPeriod != nil {
		class.EndPeriod = r.EndPeriod
	}
	if r.Room != nil {
		class.Room = r.Room
	}
	return scheduleChanged
}
