package usecase

import (
	"context"
	"errors"
	"time"

	"talent-pool-backend/internal/domain"
	"talent-pool-backend/internal/schedule"
	"talent-pool-backend/pkg/apperror"
	"talent-pool-backend/pkg/logger"
	"talent-pool-backend/pkg/metrics"
)

type recruiterUsecase struct {
	candidateRepo domain.CandidateRepository
	skillRepo     domain.SkillRepository
	mailer        domain.Mailer
	now           func() time.Time
}

func NewRecruiterUsecase(candidateRepo domain.CandidateRepository, skillRepo domain.SkillRepository, mailer domain.Mailer) domain.RecruiterUsecase {
	return &recruiterUsecase{
		candidateRepo: candidateRepo,
		skillRepo:     skillRepo,
		mailer:        mailer,
		now:           time.Now,
	}
}

// NewRecruiterUsecaseWithClock injects a frozen clock for tests.
func NewRecruiterUsecaseWithClock(candidateRepo domain.CandidateRepository, skillRepo domain.SkillRepository, mailer domain.Mailer, now func() time.Time) domain.RecruiterUsecase {
	return &recruiterUsecase{
		candidateRepo: candidateRepo,
		skillRepo:     skillRepo,
		mailer:        mailer,
		now:           now,
	}
}

func (u *recruiterUsecase) ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	return u.candidateRepo.List(ctx, filter)
}

func (u *recruiterUsecase) GetCandidate(ctx context.Context, id int64) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, err
	}
	return candidate, nil
}

func (u *recruiterUsecase) AddCandidateSkill(ctx context.Context, candidateID, skillID int64) (*domain.Skill, error) {
	if _, err := u.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}

	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Skill not found")
		}
		return nil, err
	}

	if err := u.candidateRepo.AddSkill(ctx, candidateID, skill.ID); err != nil {
		return nil, err
	}
	return skill, nil
}

func (u *recruiterUsecase) RemoveCandidateSkill(ctx context.Context, candidateID, skillID int64) error {
	if err := u.candidateRepo.RemoveSkill(ctx, candidateID, skillID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Skill not found on this candidate")
		}
		return err
	}
	return nil
}

// SelectForInterview schedules the candidate on the third business day at
// 14:00. Selection is one-shot: a second call is rejected and the stored
// interview date is left untouched. The selection is persisted before the
// notification email goes out; a mail failure surfaces to the caller but does
// not roll the selection back.
func (u *recruiterUsecase) SelectForInterview(ctx context.Context, candidateID int64) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, err
	}

	if candidate.SelectedForInterview {
		return nil, apperror.BadRequest("This candidate has already been selected for an interview")
	}

	interviewDate := schedule.InterviewDate(u.now(), schedule.DefaultBusinessDays, schedule.DefaultHour)

	if err := u.candidateRepo.MarkSelected(ctx, candidateID, interviewDate); err != nil {
		if errors.Is(err, domain.ErrAlreadySelected) {
			return nil, apperror.BadRequest("This candidate has already been selected for an interview")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, err
	}

	logger.Log.Info("Candidate selected for interview",
		"candidate_id", candidateID, "interview_date", interviewDate)

	if err := u.mailer.SendInterviewNotification(candidate.Email, candidate.Name, interviewDate); err != nil {
		logger.Log.Error("Failed to send interview notification",
			"candidate_id", candidateID, "email", candidate.Email, "error", err)
		metrics.EmailsSent.WithLabelValues("interview", "error").Inc()
		return nil, apperror.BadRequest("Failed to send interview notification email")
	}
	metrics.EmailsSent.WithLabelValues("interview", "ok").Inc()

	if err := u.candidateRepo.MarkNotified(ctx, candidateID); err != nil {
		// Selection and notification already happened; a stale notified flag
		// is not worth failing the request over.
		logger.Log.Warn("Failed to mark candidate as notified", "candidate_id", candidateID, "error", err)
	}

	candidate.SelectedForInterview = true
	candidate.InterviewDate = &interviewDate
	candidate.Notified = true
	return candidate, nil
}
