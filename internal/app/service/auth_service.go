package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"faculty_api/internal/common"
	"faculty_api/internal/common/security"
	"faculty_api/internal/domain/model"
	"faculty_api/internal/domain/repository"
	"faculty_api/internal/platform/logging"

	"github.com/google/uuid"
)

const (
	DefaultEventLimit = 20
	MaxEventLimit     = 100
)

type AuthService struct {
	userRepo  repository.UserRepository
	eventRepo repository.AuthEventRepository
	hasher    *security.PasswordHasher
	tokens    *security.TokenManager
	audit     AuditPublisher
}

func NewAuthService(
	userRepo repository.UserRepository,
	eventRepo repository.AuthEventRepository,
	hasher *security.PasswordHasher,
	tokens *security.TokenManager,
	audit AuditPublisher,
) *AuthService {
	if audit == nil {
		audit = NoopAuditPublisher{}
	}
	return &AuthService{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		hasher:    hasher,
		tokens:    tokens,
		audit:     audit,
	}
}

type RegisterRequest struct {
	Username   string `json:"username"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Location   string `json:"location"`
	RemoteAddr string `json:"-"`
}

type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RemoteAddr string `json:"-"`
}

type LoginResponse struct {
	JWTToken string `json:"jwtToken"`
}

// Register creates a user and returns its id. The lookup only produces a
// friendly error early; the users.username constraint is what guarantees
// uniqueness under concurrent registrations.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return 0, common.Errorf("username and password are required: %w", common.ErrValidation)
	}

	_, err := s.userRepo.FindByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return 0, common.ErrUserAlreadyExists
	case !errors.Is(err, common.ErrNotFound):
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Username:       req.Username,
		Name:           req.Name,
		HashedPassword: hashedPassword,
		Location:       req.Location,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrUserAlreadyExists when a concurrent insert won
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	s.publish(ctx, user.Username, model.EventRegister, req.RemoteAddr)
	return user.ID, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidUser
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.HashedPassword) {
		s.publish(ctx, user.Username, model.EventLoginFailure, req.RemoteAddr)
		return nil, common.ErrInvalidPassword
	}

	token, err := s.tokens.Issue(security.Claims{Username: user.Username})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.publish(ctx, user.Username, model.EventLoginSuccess, req.RemoteAddr)
	return &LoginResponse{JWTToken: token}, nil
}

// Profile loads the authenticated user. A token for a username that no
// longer resolves is treated like an invalid token.
func (s *AuthService) Profile(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("no user %q behind token: %w", username, common.ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}

// Events lists the most recent auth events for username, newest first.
func (s *AuthService) Events(ctx context.Context, username string, limit int) ([]model.AuthEvent, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	if limit > MaxEventLimit {
		limit = MaxEventLimit
	}
	events, err := s.eventRepo.ListByUsername(ctx, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list auth events: %w", err)
	}
	return events, nil
}

func (s *AuthService) publish(ctx context.Context, username string, kind model.AuthEventKind, remoteAddr string) {
	event := model.AuthEvent{
		ID:         uuid.NewString(),
		Username:   username,
		Kind:       kind,
		RemoteAddr: remoteAddr,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		// Auditing must never fail the credential flow.
		logging.FromContext(ctx).Warn().Err(err).
			Str("username", username).
			Str("kind", string(kind)).
			Msg("failed to publish auth event")
	}
}
