package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"fittrack-backend/internal/database"
	"fittrack-backend/internal/models"
	"fittrack-backend/internal/observability"
)

var (
	// ErrInvalidCredentials is the generic denial for both unknown users
	// and wrong passwords; the audit trail carries the distinction.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when a session acts on a resource it does
	// not own.
	ErrForbidden = errors.New("forbidden")
)

// UserStore is the slice of user persistence the guard needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionStore issues and resolves session tokens
type SessionStore interface {
	Create(ctx context.Context, username string, ttl time.Duration) (string, *models.Session, error)
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// AuditSink appends authentication attempt records
type AuditSink interface {
	Record(ctx context.Context, username string, status models.AuditStatus, details string) error
}

// Service handles registration, login and per-request access gating
type Service struct {
	users    UserStore
	sessions SessionStore
	audit    AuditSink
	ttl      time.Duration
	log      zerolog.Logger
}

// NewService creates a new auth service. Every collaborator is an explicit
// dependency.
func NewService(users UserStore, sessions SessionStore, audit AuditSink, ttl time.Duration, log zerolog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		audit:    audit,
		ttl:      ttl,
		log:      log,
	}
}

// Register validates and creates a new account. On any validation failure
// it returns field-level messages and performs no storage write. A
// duplicate username surfaces as its own field message rather than a
// generic failure.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if errs := validateRegistration(&req); errs != nil {
		return nil, errs
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ValidationErrors{"username": "Username already exists"}
		}
		return nil, err
	}

	return user, nil
}

// LoginResult is returned on a successful login
type LoginResult struct {
	Token   string
	Session *models.Session
}

// Login verifies credentials and establishes a session. Every attempt
// writes exactly one audit entry; audit failures are swallowed and logged
// so they can never block or fail the login outcome.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if errors.Is(err, database.ErrNotFound) {
		s.recordAudit(ctx, req.Username, models.AuditFail, models.AuditUserNotFound)
		observability.ObserveLogin("fail")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !VerifyPassword(req.Password, user.PasswordHash) {
		s.recordAudit(ctx, req.Username, models.AuditFail, models.AuditIncorrectPassword)
		observability.ObserveLogin("fail")
		return nil, ErrInvalidCredentials
	}

	token, session, err := s.sessions.Create(ctx, user.Username, s.ttl)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, req.Username, models.AuditSuccess, models.AuditPasswordMatched)
	observability.ObserveLogin("success")

	return &LoginResult{Token: token, Session: session}, nil
}

// Logout invalidates the session for the given token
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteByToken(ctx, token)
}

// ValidateToken resolves the session for a client-presented token. The
// username claim is not re-checked against the users table; a session can
// briefly outlive its user.
func (s *Service) ValidateToken(ctx context.Context, token string) (*models.Session, error) {
	return s.sessions.GetByToken(ctx, token)
}

// recordAudit writes the attempt synchronously but never propagates the
// error: the caller's response does not depend on audit durability.
func (s *Service) recordAudit(ctx context.Context, username string, status models.AuditStatus, details string) {
	if err := s.audit.Record(ctx, username, status, details); err != nil {
		observability.ObserveAuditWriteFailure()
		s.log.Error().Err(err).Str("username", username).Msg("audit write failed")
	}
}
