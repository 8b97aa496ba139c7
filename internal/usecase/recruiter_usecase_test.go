package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"talent-pool-backend/internal/domain"
	"talent-pool-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSelectForInterview(t *testing.T) {
	ctx := context.Background()
	// Friday 15:00, past the 14:00 cutoff: counting starts on Saturday, so the
	// third business day lands on Wednesday the 9th.
	friday := time.Date(2026, 9, 4, 15, 0, 0, 0, time.UTC)
	expectedDate := time.Date(2026, 9, 9, 14, 0, 0, 0, time.UTC)

	newUC := func(candidateRepo *MockCandidateRepo, mailer *MockMailer) domain.RecruiterUsecase {
		return usecase.NewRecruiterUsecaseWithClock(candidateRepo, new(MockSkillRepo), mailer,
			func() time.Time { return friday })
	}

	open := func() *domain.Candidate {
		return &domain.Candidate{ID: 5, UserID: 8, Name: "Jane", Email: "jane@example.com"}
	}

	t.Run("schedules on the third business day and notifies", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		mailer := new(MockMailer)
		uc := newUC(candidateRepo, mailer)

		candidateRepo.On("GetByID", ctx, int64(5)).Return(open(), nil)
		candidateRepo.On("MarkSelected", ctx, int64(5), expectedDate).Return(nil)
		candidateRepo.On("MarkNotified", ctx, int64(5)).Return(nil)
		mailer.On("SendInterviewNotification", "jane@example.com", "Jane", expectedDate).Return(nil)

		candidate, err := uc.SelectForInterview(ctx, 5)
		require.NoError(t, err)

		assert.True(t, candidate.SelectedForInterview)
		assert.True(t, candidate.Notified)
		require.NotNil(t, candidate.InterviewDate)
		assert.Equal(t, expectedDate, *candidate.InterviewDate)
		candidateRepo.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("second selection is rejected", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := newUC(candidateRepo, new(MockMailer))

		selected := open()
		selected.SelectedForInterview = true
		selected.InterviewDate = &expectedDate
		candidateRepo.On("GetByID", ctx, int64(5)).Return(selected, nil)

		_, err := uc.SelectForInterview(ctx, 5)
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		candidateRepo.AssertNotCalled(t, "MarkSelected", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent selection loses at the database guard", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		mailer := new(MockMailer)
		uc := newUC(candidateRepo, mailer)

		candidateRepo.On("GetByID", ctx, int64(5)).Return(open(), nil)
		candidateRepo.On("MarkSelected", ctx, int64(5), expectedDate).Return(domain.ErrAlreadySelected)

		_, err := uc.SelectForInterview(ctx, 5)
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		mailer.AssertNotCalled(t, "SendInterviewNotification", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := newUC(candidateRepo, new(MockMailer))
		candidateRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := uc.SelectForInterview(ctx, 99)
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
	})

	t.Run("mail failure surfaces but the selection stands", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		mailer := new(MockMailer)
		uc := newUC(candidateRepo, mailer)

		candidateRepo.On("GetByID", ctx, int64(5)).Return(open(), nil)
		candidateRepo.On("MarkSelected", ctx, int64(5), expectedDate).Return(nil)
		mailer.On("SendInterviewNotification", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		_, err := uc.SelectForInterview(ctx, 5)
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		candidateRepo.AssertCalled(t, "MarkSelected", ctx, int64(5), expectedDate)
		candidateRepo.AssertNotCalled(t, "MarkNotified", mock.Anything, mock.Anything)
	})

	t.Run("notified flag failure does not fail the request", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		mailer := new(MockMailer)
		uc := newUC(candidateRepo, mailer)

		candidateRepo.On("GetByID", ctx, int64(5)).Return(open(), nil)
		candidateRepo.On("MarkSelected", ctx, int64(5), expectedDate).Return(nil)
		candidateRepo.On("MarkNotified", ctx, int64(5)).Return(errors.New("db hiccup"))
		mailer.On("SendInterviewNotification", "jane@example.com", "Jane", expectedDate).Return(nil)

		candidate, err := uc.SelectForInterview(ctx, 5)
		require.NoError(t, err)
		assert.True(t, candidate.SelectedForInterview)
	})
}

func TestRecruiterSkills(t *testing.T) {
	ctx := context.Background()

	t.Run("add resolves the skill from the catalog", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewRecruiterUsecase(candidateRepo, skillRepo, new(MockMailer))

		candidateRepo.On("GetByID", ctx, int64(5)).Return(&domain.Candidate{ID: 5}, nil)
		skillRepo.On("GetByID", ctx, int64(2)).Return(&domain.Skill{ID: 2, Name: "Go"}, nil)
		candidateRepo.On("AddSkill", ctx, int64(5), int64(2)).Return(nil)

		skill, err := uc.AddCandidateSkill(ctx, 5, 2)
		require.NoError(t, err)
		assert.Equal(t, "Go", skill.Name)
	})

	t.Run("unknown skill", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewRecruiterUsecase(candidateRepo, skillRepo, new(MockMailer))

		candidateRepo.On("GetByID", ctx, int64(5)).Return(&domain.Candidate{ID: 5}, nil)
		skillRepo.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrNotFound)

		_, err := uc.AddCandidateSkill(ctx, 5, 404)
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
	})
}

func TestListCandidates(t *testing.T) {
	ctx := context.Background()
	candidateRepo := new(MockCandidateRepo)
	uc := usecase.NewRecruiterUsecase(candidateRepo, new(MockSkillRepo), new(MockMailer))

	filter := domain.CandidateFilter{Name: "ja", Skill: "go"}
	candidateRepo.On("List", ctx, filter).Return([]domain.Candidate{{ID: 1}, {ID: 2}}, nil)

	candidates, err := uc.ListCandidates(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}
