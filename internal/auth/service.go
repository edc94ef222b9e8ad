package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"go.uber.org/zap"
)

type Permission string

const (
	PermOperator   Permission = "operator"
	PermTechnician Permission = "technician"
	PermAdmin      Permission = "admin"
)

const (
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type loginState struct {
	failed      int
	lockedUntil time.Time
}

// AuthService authenticates the operator accounts from the configuration.
type AuthService struct {
	users          map[string]config.UserConfig
	jwtHandler     *JWTHandler
	passwordHasher *PasswordHasher
	logger         *zap.Logger

	mu       sync.Mutex
	attempts map[string]*loginState
}

func NewAuthService(cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	jwtSecret := cfg.GetJWTSecret()
	if !cfg.IsProductionReady() {
		logger.Warn("JWT secret is the development fallback or too short",
			zap.String("env", cfg.JWTSecretEnv))
	}

	users := make(map[string]config.UserConfig, len(cfg.Users))
	for _, u := range cfg.Users {
		users[u.Username] = u
	}

	return &AuthService{
		users:          users,
		jwtHandler:     NewJWTHandler(jwtSecret, cfg.AccessTokenTTL),
		passwordHasher: NewPasswordHasher(),
		logger:         logger,
		attempts:       make(map[string]*loginState),
	}
}

// LoginUser authenticates a user and returns an access token
func (a *AuthService) LoginUser(username, password, ipAddress string) (string, time.Time, error) {
	a.mu.Lock()
	state := a.attempts[username]
	if state != nil && time.Now().Before(state.lockedUntil) {
		until := state.lockedUntil
		a.mu.Unlock()
		return "", time.Time{}, fmt.Errorf("account locked until %v", until.Format(time.RFC3339))
	}
	a.mu.Unlock()

	user, ok := a.users[username]
	if !ok {
		a.logger.Warn("Login failed", zap.String("username", username), zap.String("ip", ipAddress), zap.String("reason", "user not found"))
		return "", time.Time{}, ErrInvalidCredentials
	}

	// Verify password
	valid, err := a.passwordHasher.VerifyPassword(password, user.PasswordHash)
	if err != nil || !valid {
		a.recordFailure(username)
		a.logger.Warn("Login failed", zap.String("username", username), zap.String("ip", ipAddress), zap.String("reason", "invalid password"))
		return "", time.Time{}, ErrInvalidCredentials
	}

	a.mu.Lock()
	delete(a.attempts, username)
	a.mu.Unlock()

	token, expiresAt, err := a.jwtHandler.GenerateAccessToken(user.Username, user.Role)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	a.logger.Info("User logged in", zap.String("username", username), zap.String("role", user.Role), zap.String("ip", ipAddress))
	return token, expiresAt, nil
}

func (a *AuthService) recordFailure(username string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.attempts[username]
	if state == nil {
		state = &loginState{}
		a.attempts[username] = state
	}
	state.failed++
	if state.failed >= maxFailedAttempts {
		state.lockedUntil = time.Now().Add(lockoutDuration)
		state.failed = 0
	}
}

// ValidateToken returns the permissions carried by a JWT.
func (a *AuthService) ValidateToken(token string) (*JWTClaims, []Permission, error) {
	claims, err := a.jwtHandler.ValidateAccessToken(token)
	if err != nil {
		return nil, nil, err
	}
	return claims, a.roleToPermissions(claims.Role), nil
}

func (a *AuthService) roleToPermissions(role string) []Permission {
	switch role {
	case "admin":
		return []Permission{PermOperator, PermTechnician, PermAdmin}
	case "technician":
		return []Permission{PermOperator, PermTechnician}
	default:
		return []Permission{PermOperator}
	}
}
