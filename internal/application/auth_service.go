package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/domain/repository"
	"github.com/eventora/marketplace-api/pkg/apperr"
	"github.com/eventora/marketplace-api/pkg/helpers"
	"github.com/eventora/marketplace-api/pkg/mailer"
	mailtpl "github.com/eventora/marketplace-api/pkg/mailer/templates"
)

const (
	msgInvalidOTP         = "Invalid or expired OTP"
	msgInvalidCredentials = "Invalid email or password"
)

// EmailEnqueuer puts an email job on the delivery queue. Delivery itself
// happens in cmd/email_worker.
type EmailEnqueuer interface {
	PublishJSON(ctx context.Context, v any) error
}

// AuthService covers registration, email verification, login, password
// reset and provider onboarding.
type AuthService struct {
	users repository.UserRepository
	otps  repository.OTPRepository
	jwt   *helpers.JWTManager
	mail  EmailEnqueuer
	log   *logrus.Logger

	otpExpiry      time.Duration
	resendCooldown time.Duration
	now            func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	otps repository.OTPRepository,
	jwt *helpers.JWTManager,
	mail EmailEnqueuer,
	log *logrus.Logger,
	otpExpiry, resendCooldown time.Duration,
) *AuthService {
	return &AuthService{
		users:          users,
		otps:           otps,
		jwt:            jwt,
		mail:           mail,
		log:            log,
		otpExpiry:      otpExpiry,
		resendCooldown: resendCooldown,
		now:            time.Now,
	}
}

type RegisterRequest struct {
	FullName          string   `json:"full_name" binding:"required,min=2,max=100"`
	Email             string   `json:"email" binding:"required,email"`
	Password          string   `json:"password" binding:"required,pwd"`
	Role              string   `json:"role" binding:"required"`
	ServiceCategories []string `json:"service_categories"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"otp" binding:"required,otp"`
}

type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"otp" binding:"required,otp"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *entity.User `json:"user"`
}

// Register creates an unverified account and sends a verification code.
// The account exists even if a later verification never happens; resending
// the code is how the user recovers.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*entity.User, error) {
	role := entity.Role(req.Role)
	if !registrable(role) {
		return nil, apperr.BadRequest("Invalid role")
	}
	// categories only make sense for service providers; other roles
	// always store an empty list regardless of what was submitted
	categories := req.ServiceCategories
	if role != entity.RoleServiceProvider {
		categories = nil
	} else if len(categories) == 0 {
		return nil, apperr.BadRequest("Service categories are required for service providers")
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u := &entity.User{
		ID:                helpers.NewID(),
		FullName:          strings.TrimSpace(req.FullName),
		Email:             NormalizeEmail(req.Email),
		Password:          hash,
		Role:              role,
		ServiceCategories: categories,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, apperr.Internal(err)
	}

	if err := s.issueOTP(ctx, u, entity.OTPEmailVerification); err != nil {
		return nil, err
	}
	return u, nil
}

// VerifyEmail consumes an email-verification code, marks the account
// verified and signs the user in. Each code is single use.
func (s *AuthService) VerifyEmail(ctx context.Context, req VerifyEmailRequest) (*LoginResult, error) {
	u, err := s.userByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.verifyOTP(ctx, u, entity.OTPEmailVerification, req.Code); err != nil {
		return nil, err
	}
	if err := s.users.SetEmailVerified(ctx, u.ID); err != nil {
		return nil, apperr.Internal(err)
	}
	u.IsEmailVerified = true

	token, exp, err := s.jwt.Generate(u.ID, string(u.Role))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// ResendVerificationOTP issues a fresh verification code, subject to the
// resend cooldown of the outstanding one.
func (s *AuthService) ResendVerificationOTP(ctx context.Context, email string) error {
	u, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.IsEmailVerified {
		return apperr.BadRequest("Email already verified")
	}
	return s.issueOTP(ctx, u, entity.OTPEmailVerification)
}

// Login authenticates by email and password. An unknown email and a wrong
// password produce the same response so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperr.Internal(err)
	}
	if !helpers.CompareHashAndPassword(u.Password, req.Password) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	if !u.IsEmailVerified {
		return nil, apperr.Forbidden("Email not verified")
	}

	token, exp, err := s.jwt.Generate(u.ID, string(u.Role))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// ForgotPassword issues a password-reset code. An unknown email is a
// silent no-op so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.WithField("email", email).Info("password reset requested for unknown email")
			return nil
		}
		return apperr.Internal(err)
	}
	return s.issueOTP(ctx, u, entity.OTPPasswordReset)
}

// ResetPassword consumes a password-reset code and sets a new password.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	u, err := s.userByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if err := s.verifyOTP(ctx, u, entity.OTPPasswordReset, req.Code); err != nil {
		return err
	}
	hash, err := helpers.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// SubmitOnboarding stores the provider profile. The populated variant must
// match the caller's role; a resubmission replaces the previous profile.
func (s *AuthService) SubmitOnboarding(ctx context.Context, userID string, onboarding *entity.ProviderOnboarding) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}
	if !u.Role.IsProvider() {
		return nil, apperr.Forbidden("Onboarding is only available to provider accounts")
	}
	if _, ok := onboarding.Variant(); !ok {
		return nil, apperr.BadRequest("Exactly one onboarding profile must be provided")
	}
	if !onboarding.MatchesRole(u.Role) {
		return nil, apperr.Forbidden(fmt.Sprintf("Onboarding profile does not match role %s", u.Role))
	}
	if onboarding.Verification.BusinessType == entity.BusinessCompany && onboarding.Verification.CompanyName == "" {
		return nil, apperr.BadRequest("Company name is required for company accounts")
	}

	onboarding.SubmittedAt = s.now().UTC()
	if err := s.users.UpdateOnboarding(ctx, u.ID, onboarding); err != nil {
		return nil, apperr.Internal(err)
	}
	u.Onboarding = onboarding
	return u, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}
	return u, nil
}

// issueOTP supersedes any outstanding code for the purpose and enqueues
// the email carrying the new one. If the email cannot be enqueued the
// whole operation fails; an unsendable code helps nobody.
func (s *AuthService) issueOTP(ctx context.Context, u *entity.User, purpose entity.OTPPurpose) error {
	now := s.now()

	if rec, err := s.otps.FindActive(ctx, u.ID, purpose, now); err == nil {
		if now.Before(rec.ResendAvailableAt) {
			wait := int(math.Ceil(rec.ResendAvailableAt.Sub(now).Seconds()))
			return apperr.RateLimited(wait)
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apperr.Internal(err)
	}

	if err := s.otps.ConsumeActive(ctx, u.ID, purpose, now); err != nil {
		return apperr.Internal(err)
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return apperr.Internal(err)
	}
	rec := &entity.OTPRecord{
		ID:                helpers.NewID(),
		UserID:            u.ID,
		Email:             u.Email,
		Purpose:           purpose,
		CodeHash:          helpers.HashOTPCode(s.jwt.Secret, code),
		ExpiresAt:         now.Add(s.otpExpiry),
		ResendAvailableAt: now.Add(s.resendCooldown),
	}
	if err := s.otps.Create(ctx, rec); err != nil {
		return apperr.Internal(err)
	}

	job := mailer.EmailJob{
		To:       u.Email,
		Subject:  otpSubject(purpose),
		Template: "otp",
		Data:     mailtpl.OTPData(u.FullName, code, otpPurposeLabel(purpose), int(s.otpExpiry.Minutes())),
	}
	if err := s.mail.PublishJSON(ctx, job); err != nil {
		s.log.WithError(err).WithField("email", u.Email).Error("failed to enqueue OTP email")
		return apperr.Internal(err)
	}
	return nil
}

// verifyOTP checks a candidate code. A missing, expired or mismatched code
// all produce the same message so a caller cannot probe which one it was.
func (s *AuthService) verifyOTP(ctx context.Context, u *entity.User, purpose entity.OTPPurpose, code string) error {
	now := s.now()
	rec, err := s.otps.FindActive(ctx, u.ID, purpose, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.BadRequest(msgInvalidOTP)
		}
		return apperr.Internal(err)
	}
	if !helpers.OTPCodeMatches(s.jwt.Secret, code, rec.CodeHash) {
		return apperr.BadRequest(msgInvalidOTP)
	}
	if err := s.otps.Consume(ctx, rec.ID, now); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *AuthService) userByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}
	return u, nil
}

// NormalizeEmail lowercases and trims so lookups and the unique index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func registrable(r entity.Role) bool {
	for _, allowed := range entity.RegistrableRoles {
		if r == allowed {
			return true
		}
	}
	return false
}

func otpSubject(p entity.OTPPurpose) string {
	if p == entity.OTPPasswordReset {
		return "Your password reset code"
	}
	return "Verify your email address"
}

func otpPurposeLabel(p entity.OTPPurpose) string {
	if p == entity.OTPPasswordReset {
		return "reset your password"
	}
	return "verify your email address"
}
