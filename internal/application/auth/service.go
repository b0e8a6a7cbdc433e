package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/studlink-api/internal/domain"
	jwtinfra "github.com/studlink-api/internal/infrastructure/jwt"
	"github.com/studlink-api/internal/pkg/id"
	"github.com/studlink-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// otpTTL is the validity window of an issued challenge.
const otpTTL = 10 * time.Minute

const otpSubject = "StudLink - Email Verification OTP"

const otpEmailBody = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">StudLink - NIT Hamirpur</h2>
  <p>Your OTP for email verification is:</p>
  <h1 style="color: #2563eb; font-size: 32px; letter-spacing: 5px;">%s</h1>
  <p>This OTP will expire in 10 minutes.</p>
  <p>If you didn't request this, please ignore this email.</p>
</div>`

type VerifyRegisterRequest struct {
	Email    string                  `json:"email" validate:"required"`
	OTP      string                  `json:"otp" validate:"required"`
	UserData domain.RegisterUserData `json:"userData" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult carries the outcome of a successful registration or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

type Service interface {
	RequestChallenge(ctx context.Context, email string) error
	VerifyAndRegister(ctx context.Context, req VerifyRegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	VerifySession(ctx context.Context, token string) (*domain.User, error)
}

type challengeStore interface {
	Put(ctx context.Context, c *domain.Challenge) error
	// Consume performs the read-check-delete sequence as one atomic unit.
	Consume(ctx context.Context, email, code string) (*domain.Challenge, error)
	Delete(ctx context.Context, email string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
}

type mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type tokenProvider interface {
	Sign(userID, email, role string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

type service struct {
	challenges challengeStore
	users      userStore
	mailer     mailer
	tokens     tokenProvider
	adminKey   string
}

type ServiceDeps struct {
	ChallengeStore challengeStore
	UserRepo       userStore
	Mailer         mailer
	JWTProvider    tokenProvider
	AdminAuthKey   string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		challenges: deps.ChallengeStore,
		users:      deps.UserRepo,
		mailer:     deps.Mailer,
		tokens:     deps.JWTProvider,
		adminKey:   deps.AdminAuthKey,
	}
}

func (s *service) RequestChallenge(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrMissingInput)
	}
	code, err := otp.NewCode()
	if err != nil {
		return err
	}
	c := &domain.Challenge{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL).Unix(),
	}
	if err := s.challenges.Put(ctx, c); err != nil {
		return err
	}

	body := fmt.Sprintf(otpEmailBody, code)
	if err := s.mailer.Send(ctx, email, otpSubject, body); err != nil {
		slog.Error("OTP email delivery failed", "email", email, "err", err)
		// Roll back the stored challenge so the address isn't locked behind
		// a code that was never delivered.
		if derr := s.challenges.Delete(ctx, email); derr != nil {
			slog.Warn("failed to roll back challenge after delivery failure", "email", email, "err", derr)
		}
		return fmt.Errorf("could not send OTP email: %w", domain.ErrDeliveryFailure)
	}
	return nil
}

func (s *service) VerifyAndRegister(ctx context.Context, req VerifyRegisterRequest) (*AuthResult, error) {
	if req.Email == "" || req.OTP == "" {
		return nil, fmt.Errorf("email and otp are required: %w", domain.ErrMissingInput)
	}

	// Checks that don't depend on the challenge run first, so a rejected
	// request leaves the challenge stored and the caller can retry with the
	// same code.
	role := req.UserData.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if domain.ElevatedRole(role) {
		if s.adminKey == "" || req.UserData.AdminAuthKey != s.adminKey {
			return nil, fmt.Errorf("invalid admin authorization key: %w", domain.ErrUnauthorizedAdmin)
		}
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.UserData.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Consume is the last gate before user creation: of two concurrent
	// attempts with the same code, only one reaches this point successfully.
	challenge, err := s.challenges.Consume(ctx, req.Email, req.OTP)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:           id.New(),
		Email:            req.Email,
		PasswordHash:     string(hash),
		Role:             role,
		FullName:         req.UserData.FullName,
		IsCollegeStudent: req.UserData.IsCollegeStudent,
		RollNo:           req.UserData.RollNo,
		Year:             req.UserData.Year,
		Branch:           req.UserData.Branch,
		Degree:           req.UserData.Degree,
		IsVerified:       true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	token, err := s.tokens.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		s.restoreChallenge(ctx, challenge)
		return nil, fmt.Errorf("sign session token: %w", domain.ErrSigningFailure)
	}
	if err := s.users.Put(ctx, u); err != nil {
		s.restoreChallenge(ctx, challenge)
		return nil, err
	}
	return &AuthResult{User: u, Token: token}, nil
}

// restoreChallenge re-stores a consumed challenge after a post-consume
// failure, so the code stays usable for a retry instead of forcing a
// re-request.
func (s *service) restoreChallenge(ctx context.Context, c *domain.Challenge) {
	if err := s.challenges.Put(ctx, c); err != nil {
		slog.Warn("failed to restore challenge after registration failure", "email", c.Email, "err", err)
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", domain.ErrMissingInput)
	}
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrInvalidCredentials)
	}
	token, err := s.tokens.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", domain.ErrSigningFailure)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func (s *service) VerifySession(_ context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", domain.ErrInvalidToken)
	}
	// Minimal projection rebuilt from claims; callers needing the full
	// profile go through the user service.
	return &domain.User{
		UserID:     claims.UserID,
		Email:      claims.Email,
		Role:       claims.Role,
		IsVerified: true,
	}, nil
}
