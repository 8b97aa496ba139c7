package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"talent-pool-backend/internal/domain"
	"talent-pool-backend/internal/usecase"
	"talent-pool-backend/pkg/apperror"
	"talent-pool-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func asAppError(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	tokens := token.NewManager("test-secret")

	t.Run("creates candidate with profile and sends verification email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		candidateRepo := new(MockCandidateRepo)
		mailer := new(MockMailer)
		uc := usecase.NewAuthUsecase(userRepo, candidateRepo, mailer, tokens)

		userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		}).Return(nil)
		candidateRepo.On("Create", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil)
		mailer.On("SendVerificationEmail", "new@example.com", "New User", mock.AnythingOfType("string")).Return(nil)

		user, err := uc.Register(ctx, domain.RegisterInput{Name: "New User", Email: "new@example.com"})
		require.NoError(t, err)

		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, domain.RoleCandidate, user.Role)
		assert.False(t, user.EmailVerified)
		assert.NotEmpty(t, user.VerificationToken)
		candidateRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(c *domain.Candidate) bool {
			return c.UserID == 7
		}))
		mailer.AssertExpectations(t)
	})

	t.Run("manager role gets no candidate profile", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		candidateRepo := new(MockCandidateRepo)
		mailer := new(MockMailer)
		uc := usecase.NewAuthUsecase(userRepo, candidateRepo, mailer, tokens)

		userRepo.On("GetByEmail", ctx, "boss@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		mailer.On("SendVerificationEmail", "boss@example.com", "Boss", mock.AnythingOfType("string")).Return(nil)

		user, err := uc.Register(ctx, domain.RegisterInput{Name: "Boss", Email: "boss@example.com", Role: domain.RoleManager})
		require.NoError(t, err)

		assert.Equal(t, domain.RoleManager, user.Role)
		candidateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockCandidateRepo), new(MockMailer), tokens)

		userRepo.On("GetByEmail", ctx, "taken@example.com").Return(&domain.User{ID: 1, Email: "taken@example.com"}, nil)

		_, err := uc.Register(ctx, domain.RegisterInput{Name: "Dup", Email: "taken@example.com"})
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusConflict, appErr.Status)
	})

	t.Run("mail failure surfaces after the user is persisted", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		candidateRepo := new(MockCandidateRepo)
		mailer := new(MockMailer)
		uc := usecase.NewAuthUsecase(userRepo, candidateRepo, mailer, tokens)

		userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		candidateRepo.On("Create", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil)
		mailer.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		_, err := uc.Register(ctx, domain.RegisterInput{Name: "New User", Email: "new@example.com"})
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusInternalServerError, appErr.Status)
		userRepo.AssertCalled(t, "Create", ctx, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := token.NewManager("test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	verified := &domain.User{
		ID: 3, Email: "jane@example.com", Role: domain.RoleManager,
		PasswordHash: string(hash), EmailVerified: true,
	}

	t.Run("success issues a verifiable token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockCandidateRepo), new(MockMailer), tokens)
		userRepo.On("GetByEmail", ctx, "jane@example.com").Return(verified, nil)

		user, signed, err := uc.Login(ctx, "jane@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, int64(3), user.ID)

		claims, err := tokens.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, int64(3), claims.UserID)
		assert.Equal(t, domain.RoleManager, claims.Role)
	})

	t.Run("unknown email collapses to invalid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockCandidateRepo), new(MockMailer), tokens)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, _, err := uc.Login(ctx, "ghost@example.com", "whatever")
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusUnauthorized, appErr.Status)
		assert.Equal(t, apperror.CodeInvalidCredentials, appErr.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockCandidateRepo), new(MockMailer), tokens)
		userRepo.On("GetByEmail", ctx, "jane@example.com").Return(verified, nil)

		_, _, err := uc.Login(ctx, "jane@example.com", "wrong")
		appErr := asAppError(t, err)
		assert.Equal(t, apperror.CodeInvalidCredentials, appErr.Code)
	})

	t.Run("unverified email is rejected before the password check", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockCandidateRepo), new(MockMailer), tokens)
		unverified := &domain.User{ID: 4, Email: "late@example.com", PasswordHash: string(hash)}
		userRepo.On("GetByEmail", ctx, "late@example.com").Return(unverified, nil)

		_, _, err := uc.Login(ctx, "late@example.com", "correct-horse")
		appErr := asAppError(t, err)
		assert.Equal(t, apperror.CodeEmailNotVerified, appErr.Code)
	})
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()
	tokens := token.NewManager("test-secret")
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	t.Run("sets password and marks verified", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecaseWithClock(userRepo, new(MockCandidateRepo), new(MockMailer), tokens,
			func() time.Time { return now })

		pending := &domain.User{
			ID: 9, Email: "new@example.com", Role: domain.RoleCandidate,
			VerificationToken: "tok-123", CreatedAt: now.Add(-2 * time.Hour),
		}
		userRepo.On("GetByVerificationToken", ctx, "tok-123").Return(pending, nil)
		userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, signed, err := uc.VerifyEmail(ctx, "tok-123", "chosen-password")
		require.NoError(t, err)

		assert.True(t, user.EmailVerified)
		assert.Empty(t, user.VerificationToken)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("chosen-password")))
		_, err = tokens.Verify(signed)
		assert.NoError(t, err)
	})

	t.Run("unknown token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockCandidateRepo), new(MockMailer), tokens)
		userRepo.On("GetByVerificationToken", ctx, "nope").Return(nil, domain.ErrNotFound)

		_, _, err := uc.VerifyEmail(ctx, "nope", "pw")
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.Equal(t, apperror.CodeInvalidToken, appErr.Code)
	})

	t.Run("token older than 24h is expired", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecaseWithClock(userRepo, new(MockCandidateRepo), new(MockMailer), tokens,
			func() time.Time { return now })

		stale := &domain.User{
			ID: 10, Email: "old@example.com",
			VerificationToken: "tok-old", CreatedAt: now.Add(-25 * time.Hour),
		}
		userRepo.On("GetByVerificationToken", ctx, "tok-old").Return(stale, nil)

		_, _, err := uc.VerifyEmail(ctx, "tok-old", "pw")
		appErr := asAppError(t, err)
		assert.Equal(t, apperror.CodeTokenExpired, appErr.Code)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
