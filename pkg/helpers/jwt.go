package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSecret means the signing secret is not configured. It is a
	// deployment problem, never a client error.
	ErrMissingSecret = errors.New("jwt: signing secret is not configured")
	ErrInvalidToken  = errors.New("jwt: invalid token")
)

// JWTManager handles generation and validation of JWT tokens
type JWTManager struct {
	AccessSecret     []byte
	RefreshSecret    []byte
	ActivationSecret []byte
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	ActivationTTL    time.Duration

	// Now is the clock used for issuing and validating; defaults to time.Now.
	Now func() time.Time
}

func NewJWTManager(accessSecret, refreshSecret, activationSecret string, accessTTL, refreshTTL, activationTTL time.Duration) *JWTManager {
	return &JWTManager{
		AccessSecret:     []byte(accessSecret),
		RefreshSecret:    []byte(refreshSecret),
		ActivationSecret: []byte(activationSecret),
		AccessTTL:        accessTTL,
		RefreshTTL:       refreshTTL,
		ActivationTTL:    activationTTL,
		Now:              time.Now,
	}
}

// Claims carry only the user id.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// PendingRegistration is the not-yet-persisted account embedded in an activation token.
type PendingRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ActivationClaims struct {
	User           PendingRegistration `json:"user"`
	ActivationCode string              `json:"activation_code"`
	jwt.RegisteredClaims
}

func (m *JWTManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *JWTManager) registered(ttl time.Duration) (jwt.RegisteredClaims, time.Time) {
	now := m.now()
	exp := now.Add(ttl)
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}, exp
}

func sign(claims jwt.Claims, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *JWTManager) GenerateAccessToken(userID string) (string, time.Time, error) {
	rc, exp := m.registered(m.AccessTTL)
	s, err := sign(&Claims{UserID: userID, RegisteredClaims: rc}, m.AccessSecret)
	return s, exp, err
}

func (m *JWTManager) GenerateRefreshToken(userID string) (string, time.Time, error) {
	rc, exp := m.registered(m.RefreshTTL)
	s, err := sign(&Claims{UserID: userID, RegisteredClaims: rc}, m.RefreshSecret)
	return s, exp, err
}

// GenerateActivationToken signs the pending registration together with its code.
func (m *JWTManager) GenerateActivationToken(user PendingRegistration, code string) (string, time.Time, error) {
	rc, exp := m.registered(m.ActivationTTL)
	s, err := sign(&ActivationClaims{User: user, ActivationCode: code, RegisteredClaims: rc}, m.ActivationSecret)
	return s, exp, err
}

func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if err := m.parse(tokenStr, claims, m.AccessSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if err := m.parse(tokenStr, claims, m.RefreshSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *JWTManager) ParseActivationToken(tokenStr string) (*ActivationClaims, error) {
	claims := &ActivationClaims{}
	if err := m.parse(tokenStr, claims, m.ActivationSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *JWTManager) parse(tokenStr string, claims jwt.Claims, secret []byte) error {
	if len(secret) == 0 {
		return ErrMissingSecret
	}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return err
	}
	if !tkn.Valid {
		return ErrInvalidToken
	}
	return nil
}
