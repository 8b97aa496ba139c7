package domain

import (
	"context"
	"time"
)

const (
	RoleCandidate = "candidate"
	RoleManager   = "manager"
)

type User struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Role              string    `json:"role"`
	EmailVerified     bool      `json:"email_verified"`
	VerificationToken string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByVerificationToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type RegisterInput struct {
	Name  string
	Email string
	Role  string
}

type AuthUsecase interface {
	// Register creates an unverified user with a temporary password and sends
	// the verification email. For the candidate role an empty candidate
	// profile is created alongside.
	Register(ctx context.Context, input RegisterInput) (*User, error)
	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, email, password string) (*User, string, error)
	// VerifyEmail consumes a verification token, sets the password and marks
	// the email verified, then issues a bearer token.
	VerifyEmail(ctx context.Context, verificationToken, password string) (*User, string, error)
	GetCurrentUser(ctx context.Context, id int64) (*User, error)
}
