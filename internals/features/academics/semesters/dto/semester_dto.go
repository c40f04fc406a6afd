package dto

import (
	"errors"
	"strings"
	"time"

	m "lms_backend/internals/features/academics/semesters/model"
)

func parseDateYYYYMMDD(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.New("invalid date (expected YYYY-MM-DD)")
	}
	return t, nil
}

/* =========================
   Academic year
   ========================= */

type CreateAcademicYearRequest struct {
	Year      string `json:"year" validate:"required,max=16"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (r *CreateAcademicYearRequest) ToModel() (*m.AcademicYear, error) {
	start, err := parseDateYYYYMMDD(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateYYYYMMDD(r.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, errors.New("end_date must be >= start_date")
	}
	return &m.AcademicYear{
		Year:      strings.TrimSpace(r.Year),
		StartDate: start,
		EndDate:   end,
		IsActive:  true,
	}, nil
}

/* =========================
   Semester
   ========================= */

type CreateSemesterRequest struct {
	Code           string `json:"code" validate:"required,max=16"`
	Name           string `json:"name" validate:"required,max=100"`
	AcademicYearID int    `json:"academic_year_id" validate:"required,min=1"`
	SemesterNumber int    `json:"semester_number" validate:"required,min=1,max=3"`
	StartDate      string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsActive       bool   `json:"is_active"`
}

func (r *CreateSemesterRequest) ToModel() (*m.Semester, error) {
	start, err := parseDateYYYYMMDD(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateYYYYMMDD(r.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, errors.New("end_date must be >= start_date")
	}
	return &m.Semester{
		Code:           strings.TrimSpace(r.Code),
		Name:           strings.TrimSpace(r.Name),
		AcademicYearID: r.AcademicYearID,
		SemesterNumber: r.SemesterNumber,
		StartDate:      start,
		EndDate:        end,
		IsActive:       r.IsActive,
	}, nil
}
