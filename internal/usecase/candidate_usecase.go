package usecase

import (
	"context"
	"errors"

	"talent-pool-backend/internal/domain"
	"talent-pool-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	repo      domain.CandidateRepository
	skillRepo domain.SkillRepository
	validate  *validator.Validate
}

func NewCandidateUsecase(repo domain.CandidateRepository, skillRepo domain.SkillRepository, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:      repo,
		skillRepo: skillRepo,
		validate:  validate,
	}
}

// callerID extracts the authenticated user id placed in the context by the
// auth gate. A missing id means the gate did not run; fail safe.
func callerID(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(domain.KeyUserID).(int64)
	if !ok || userID == 0 {
		return 0, apperror.Unauthorized(apperror.CodeUnauthorized, "User not authenticated")
	}
	return userID, nil
}

func (u *candidateUsecase) ownProfile(ctx context.Context) (*domain.Candidate, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	candidate, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate profile not found")
		}
		return nil, err
	}
	return candidate, nil
}

func (u *candidateUsecase) CreateProfile(ctx context.Context, input *domain.ProfileInput) (*domain.Candidate, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := u.repo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("You already have a candidate profile")
	}

	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	candidate := &domain.Candidate{UserID: userID}
	applyProfile(candidate, input)
	if err := u.repo.Create(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (u *candidateUsecase) GetProfile(ctx context.Context) (*domain.Candidate, error) {
	return u.ownProfile(ctx)
}

func (u *candidateUsecase) UpdateProfile(ctx context.Context, input *domain.ProfileInput) (*domain.Candidate, error) {
	candidate, err := u.ownProfile(ctx)
	if err != nil {
		return nil, err
	}

	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	// Partial update: absent fields keep their stored values.
	applyProfile(candidate, input)
	if err := u.repo.Update(ctx, candidate); err != nil {
		return nil, err
	}
	return u.ownProfile(ctx)
}

func applyProfile(candidate *domain.Candidate, input *domain.ProfileInput) {
	if input.BirthDate != nil {
		candidate.BirthDate = input.BirthDate
	}
	if input.Phone != "" {
		candidate.Phone = input.Phone
	}
	if input.ZipCode != "" {
		candidate.ZipCode = input.ZipCode
	}
	if input.Street != "" {
		candidate.Street = input.Street
	}
	if input.Number != "" {
		candidate.Number = input.Number
	}
	if input.Complement != "" {
		candidate.Complement = input.Complement
	}
	if input.Neighborhood != "" {
		candidate.Neighborhood = input.Neighborhood
	}
	if input.City != "" {
		candidate.City = input.City
	}
	if input.State != "" {
		candidate.State = input.State
	}
}

func (u *candidateUsecase) AddSkill(ctx context.Context, skillID int64) (*domain.Skill, error) {
	candidate, err := u.ownProfile(ctx)
	if err != nil {
		return nil, err
	}

	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Skill not found")
		}
		return nil, err
	}

	if err := u.repo.AddSkill(ctx, candidate.ID, skill.ID); err != nil {
		return nil, err
	}
	return skill, nil
}

func (u *candidateUsecase) RemoveSkill(ctx context.Context, skillID int64) error {
	candidate, err := u.ownProfile(ctx)
	if err != nil {
		return err
	}
	if err := u.repo.RemoveSkill(ctx, candidate.ID, skillID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Skill not found on this candidate")
		}
		return err
	}
	return nil
}

func (u *candidateUsecase) GetSkills(ctx context.Context) ([]domain.Skill, error) {
	candidate, err := u.ownProfile(ctx)
	if err != nil {
		return nil, err
	}
	return u.repo.GetSkills(ctx, candidate.ID)
}

func (u *candidateUsecase) AddEducation(ctx context.Context, input *domain.EducationInput) (*domain.Education, error) {
	candidate, err := u.ownProfile(ctx)
	if err != nil {
		return nil, err
	}

	if input.CourseName == "" || input.InstitutionName == "" || input.CompletionDate == nil {
		return nil, apperror.BadRequest("course_name, institution_name and completion_date are required")
	}

	education := &domain.Education{
		CandidateID:     candidate.ID,
		CourseName:      input.CourseName,
		InstitutionName: input.InstitutionName,
		CompletionDate:  input.CompletionDate,
	}
	if err := u.repo.AddEducation(ctx, education); err != nil {
		return nil, err
	}
	return education, nil
}

func (u *candidateUsecase) RemoveEducation(ctx context.Context, educationID int64) error {
	candidate, err := u.ownProfile(ctx)
	if err != nil {
		return err
	}
	if err := u.repo.RemoveEducation(ctx, candidate.ID, educationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Education not found on this candidate")
		}
		return err
	}
	return nil
}

func (u *candidateUsecase) GetEducations(ctx context.Context) ([]domain.Education, error) {
	candidate, err := u.ownProfile(ctx)
	if err != nil {
		return nil, err
	}
	return u.repo.GetEducations(ctx, candidate.ID)
}
