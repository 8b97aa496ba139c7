package domain

import "time"

type Education struct {
	ID              int64      `json:"id"`
	CandidateID     int64      `json:"candidate_id"`
	CourseName      string     `json:"course_name"`
	InstitutionName string     `json:"institution_name"`
	CompletionDate  *time.Time `json:"completion_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type EducationInput struct {
	CourseName      string     `json:"course_name"`
	InstitutionName string     `json:"institution_name"`
	CompletionDate  *time.Time `json:"completion_date"`
}
