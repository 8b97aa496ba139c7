package domain

import (
	"context"
	"time"
)

type Candidate struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	Code   int   `json:"code"`
	// Name and Email are joined from the owning user record.
	Name                 string      `json:"name"`
	Email                string      `json:"email"`
	BirthDate            *time.Time  `json:"birth_date"`
	Phone                string      `json:"phone"`
	ZipCode              string      `json:"zip_code"`
	Street               string      `json:"street"`
	Number               string      `json:"number"`
	Complement           string      `json:"complement"`
	Neighborhood         string      `json:"neighborhood"`
	City                 string      `json:"city"`
	State                string      `json:"state"`
	SelectedForInterview bool        `json:"selected_for_interview"`
	InterviewDate        *time.Time  `json:"interview_date"`
	Notified             bool        `json:"notified"`
	Skills               []Skill     `json:"skills"`
	Educations           []Education `json:"educations"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// CandidateFilter narrows recruiter listings by user name and skill name,
// both case-insensitive substring matches.
type CandidateFilter struct {
	Name  string
	Skill string
}

type ProfileInput struct {
	BirthDate    *time.Time `json:"birth_date"`
	Phone        string     `json:"phone" validate:"omitempty,valid_phone"`
	ZipCode      string     `json:"zip_code" validate:"omitempty,valid_zip"`
	Street       string     `json:"street" validate:"max=255"`
	Number       string     `json:"number" validate:"max=20"`
	Complement   string     `json:"complement" validate:"max=255"`
	Neighborhood string     `json:"neighborhood" validate:"max=255"`
	City         string     `json:"city" validate:"max=255"`
	State        string     `json:"state" validate:"omitempty,len=2"`
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate *Candidate) error
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	GetByUserID(ctx context.Context, userID int64) (*Candidate, error)
	List(ctx context.Context, filter CandidateFilter) ([]Candidate, error)
	Update(ctx context.Context, candidate *Candidate) error
	// MarkSelected flips selected_for_interview and stores the interview date.
	// It must not touch rows that are already selected; such calls report
	// ErrAlreadySelected and leave the stored date intact.
	MarkSelected(ctx context.Context, id int64, interviewDate time.Time) error
	MarkNotified(ctx context.Context, id int64) error
	AddSkill(ctx context.Context, candidateID, skillID int64) error
	RemoveSkill(ctx context.Context, candidateID, skillID int64) error
	GetSkills(ctx context.Context, candidateID int64) ([]Skill, error)
	AddEducation(ctx context.Context, education *Education) error
	RemoveEducation(ctx context.Context, candidateID, educationID int64) error
	GetEducations(ctx context.Context, candidateID int64) ([]Education, error)
}

type CandidateUsecase interface {
	CreateProfile(ctx context.Context, input *ProfileInput) (*Candidate, error)
	GetProfile(ctx context.Context) (*Candidate, error)
	UpdateProfile(ctx context.Context, input *ProfileInput) (*Candidate, error)
	AddSkill(ctx context.Context, skillID int64) (*Skill, error)
	RemoveSkill(ctx context.Context, skillID int64) error
	GetSkills(ctx context.Context) ([]Skill, error)
	AddEducation(ctx context.Context, input *EducationInput) (*Education, error)
	RemoveEducation(ctx context.Context, educationID int64) error
	GetEducations(ctx context.Context) ([]Education, error)
}

type RecruiterUsecase interface {
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]Candidate, error)
	GetCandidate(ctx context.Context, id int64) (*Candidate, error)
	AddCandidateSkill(ctx context.Context, candidateID, skillID int64) (*Skill, error)
	RemoveCandidateSkill(ctx context.Context, candidateID, skillID int64) error
	// SelectForInterview transitions a candidate to "scheduled" exactly once,
	// computes the interview slot and notifies the candidate by email.
	SelectForInterview(ctx context.Context, candidateID int64) (*Candidate, error)
}
