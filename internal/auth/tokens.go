package auth

import (
	"errors"
	"fmt"
	"time"

	"smartq/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims содержит данные пользователя из проверенного токена.
type Claims struct {
	UserID    uint
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

// Manager выпускает и проверяет пары access/refresh токенов (HS256).
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (m *Manager) GeneratePair(u models.User) (access, refresh string, err error) {
	access, err = m.generate(u, m.accessTTL, m.accessSecret)
	if err != nil {
		return "", "", fmt.Errorf("access token: %w", err)
	}
	refresh, err = m.generate(u, m.refreshTTL, m.refreshSecret)
	if err != nil {
		return "", "", fmt.Errorf("refresh token: %w", err)
	}
	return access, refresh, nil
}

func (m *Manager) generate(u models.User, duration time.Duration, secret []byte) (string, error) {
	now := m.now()
	role := u.Role
	if role == "" {
		role = models.RoleCustomer
	}
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    role,
		"jti":     uuid.New().String(),
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (m *Manager) ParseAccess(tokenString string) (Claims, error) {
	return m.parse(tokenString, m.accessSecret)
}

func (m *Manager) ParseRefresh(tokenString string) (Claims, error) {
	return m.parse(tokenString, m.refreshSecret)
}

func (m *Manager) parse(tokenString string, secret []byte) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: uint(userID), Role: role, TokenID: jti, ExpiresAt: exp.Time}, nil
}

// RemainingTTL возвращает, сколько ещё действителен токен.
func (m *Manager) RemainingTTL(c Claims) time.Duration {
	return c.ExpiresAt.Sub(m.now())
}
