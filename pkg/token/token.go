package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MaxAge is the hard cap on token lifetime. It is enforced from the issued-at
// claim independently of the embedded exp, so a token with a forged or missing
// exp still dies 24 hours after issuance.
const MaxAge = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity carried by a verified token. The raw JWT is never
// propagated past the verifier.
type Claims struct {
	UserID int64
	Email  string
	Role   string
}

// Manager signs and verifies HS256 bearer tokens.
type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), now: time.Now}
}

// NewManagerWithClock injects a frozen clock for tests.
func NewManagerWithClock(secret string, now func() time.Time) *Manager {
	return &Manager{secret: []byte(secret), now: now}
}

// Generate creates a signed token with {id, email, role} claims expiring in 24h.
func (m *Manager) Generate(userID int64, email, role string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(MaxAge).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry, then enforces the external
// 24h age cap. Every failure collapses into ErrInvalidToken so callers cannot
// leak a distinguishing reason to the client.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only symmetric HMAC is accepted; RS256/none tokens are rejected here.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	// Age cap from iat, regardless of exp.
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	if m.now().Sub(time.Unix(int64(iat), 0)) > MaxAge {
		return nil, ErrInvalidToken
	}

	id, ok := claims["id"].(float64) // JWT numbers decode as float64
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &Claims{UserID: int64(id), Email: email, Role: role}, nil
}
