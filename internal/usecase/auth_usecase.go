package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"talent-pool-backend/internal/domain"
	"talent-pool-backend/pkg/apperror"
	"talent-pool-backend/pkg/logger"
	"talent-pool-backend/pkg/metrics"
	"talent-pool-backend/pkg/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// verificationTokenTTL bounds how long a registration can stay unverified.
const verificationTokenTTL = 24 * time.Hour

type authUsecase struct {
	userRepo      domain.UserRepository
	candidateRepo domain.CandidateRepository
	mailer        domain.Mailer
	tokens        *token.Manager
	now           func() time.Time
}

func NewAuthUsecase(userRepo domain.UserRepository, candidateRepo domain.CandidateRepository, mailer domain.Mailer, tokens *token.Manager) domain.AuthUsecase {
	return &authUsecase{
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		mailer:        mailer,
		tokens:        tokens,
		now:           time.Now,
	}
}

// NewAuthUsecaseWithClock injects a frozen clock for tests.
func NewAuthUsecaseWithClock(userRepo domain.UserRepository, candidateRepo domain.CandidateRepository, mailer domain.Mailer, tokens *token.Manager, now func() time.Time) domain.AuthUsecase {
	return &authUsecase{
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		mailer:        mailer,
		tokens:        tokens,
		now:           now,
	}
}

func (u *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("This email is already in use")
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCandidate
	}

	// Temporary random password; the real one is set on email verification.
	tempHash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := u.now()
	user := &domain.User{
		Name:              input.Name,
		Email:             input.Email,
		PasswordHash:      string(tempHash),
		Role:              role,
		EmailVerified:     false,
		VerificationToken: uuid.NewString(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if role == domain.RoleCandidate {
		if err := u.candidateRepo.Create(ctx, &domain.Candidate{UserID: user.ID}); err != nil {
			return nil, err
		}
	}

	if err := u.mailer.SendVerificationEmail(user.Email, user.Name, user.VerificationToken); err != nil {
		logger.Log.Error("Failed to send verification email", "email", user.Email, "error", err)
		metrics.EmailsSent.WithLabelValues("verification", "error").Inc()
		return nil, apperror.New(http.StatusInternalServerError, "", "Failed to send verification email", err)
	}
	metrics.EmailsSent.WithLabelValues("verification", "ok").Inc()

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Not-found and lookup failures collapse into the same rejection so
		// the response cannot be used to enumerate accounts.
		return nil, "", apperror.Unauthorized(apperror.CodeInvalidCredentials, "Invalid credentials")
	}

	if !user.EmailVerified {
		return nil, "", apperror.Unauthorized(apperror.CodeEmailNotVerified, "Please verify your email first")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.Unauthorized(apperror.CodeInvalidCredentials, "Invalid credentials")
	}

	signed, err := u.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	return user, signed, nil
}

func (u *authUsecase) VerifyEmail(ctx context.Context, verificationToken, password string) (*domain.User, string, error) {
	user, err := u.userRepo.GetByVerificationToken(ctx, verificationToken)
	if err != nil {
		return nil, "", apperror.BadRequestCode(apperror.CodeInvalidToken, "Invalid or expired verification token")
	}

	if u.now().Sub(user.CreatedAt) > verificationTokenTTL {
		logger.Log.Warn("Expired verification token", "user_id", user.ID)
		return nil, "", apperror.BadRequestCode(apperror.CodeTokenExpired, "Verification token expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	user.PasswordHash = string(hash)
	user.UpdatedAt = u.now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, "", err
	}

	signed, err := u.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	return user, signed, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
