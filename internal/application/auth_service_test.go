package application

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/domain/repository"
	"github.com/eventora/marketplace-api/pkg/apperr"
	"github.com/eventora/marketplace-api/pkg/helpers"
	"github.com/eventora/marketplace-api/pkg/mailer"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestAuthService(users *mockUserRepo, otps *mockOTPRepo, mail *mockEnqueuer) *AuthService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	s := NewAuthService(users, otps, jwt, mail, log, 10*time.Minute, 30*time.Second)
	s.now = func() time.Time { return testNow }
	return s
}

func appStatus(t *testing.T, err error) *apperr.Error {
	t.Helper()
	appErr, ok := apperr.As(err)
	require.True(t, ok, "expected a typed error, got %v", err)
	return appErr
}

func TestRegister(t *testing.T) {
	t.Run("creates unverified user and enqueues verification email", func(t *testing.T) {
		var created *entity.User
		users := &mockUserRepo{
			CreateFunc: func(_ context.Context, u *entity.User) error {
				created = u
				return nil
			},
		}
		var issued *entity.OTPRecord
		otps := &mockOTPRepo{
			CreateFunc: func(_ context.Context, rec *entity.OTPRecord) error {
				issued = rec
				return nil
			},
		}
		mail := &mockEnqueuer{}
		s := newTestAuthService(users, otps, mail)

		u, err := s.Register(context.Background(), RegisterRequest{
			FullName: "Dina Hassan",
			Email:    "  Dina@Example.COM ",
			Password: "s3cretpass",
			Role:     "customer",
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "dina@example.com", u.Email)
		assert.True(t, helpers.ValidID(u.ID))
		assert.False(t, u.IsEmailVerified)
		assert.NotEqual(t, "s3cretpass", u.Password)
		assert.True(t, helpers.CompareHashAndPassword(u.Password, "s3cretpass"))

		require.NotNil(t, issued)
		assert.Equal(t, entity.OTPEmailVerification, issued.Purpose)
		assert.Equal(t, testNow.Add(10*time.Minute), issued.ExpiresAt)
		assert.Equal(t, testNow.Add(30*time.Second), issued.ResendAvailableAt)
		assert.NotEmpty(t, issued.CodeHash)

		require.Len(t, mail.jobs, 1)
		job := mail.jobs[0].(mailer.EmailJob)
		assert.Equal(t, "dina@example.com", job.To)
		assert.Equal(t, "otp", job.Template)
	})

	t.Run("rejects admin roles", func(t *testing.T) {
		s := newTestAuthService(&mockUserRepo{}, &mockOTPRepo{}, &mockEnqueuer{})
		_, err := s.Register(context.Background(), RegisterRequest{
			FullName: "x", Email: "a@b.c", Password: "password1", Role: "super_admin",
		})
		assert.Equal(t, http.StatusBadRequest, appStatus(t, err).Status)
	})

	t.Run("requires categories for service providers", func(t *testing.T) {
		s := newTestAuthService(&mockUserRepo{}, &mockOTPRepo{}, &mockEnqueuer{})
		_, err := s.Register(context.Background(), RegisterRequest{
			FullName: "x", Email: "a@b.c", Password: "password1", Role: "service_provider",
		})
		assert.Equal(t, http.StatusBadRequest, appStatus(t, err).Status)
	})

	t.Run("drops categories for non-service-provider roles", func(t *testing.T) {
		var created *entity.User
		users := &mockUserRepo{
			CreateFunc: func(_ context.Context, u *entity.User) error {
				created = u
				return nil
			},
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})
		_, err := s.Register(context.Background(), RegisterRequest{
			FullName: "x", Email: "a@b.c", Password: "password1", Role: "customer",
			ServiceCategories: []string{"catering", "photography"},
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Empty(t, created.ServiceCategories)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		users := &mockUserRepo{
			CreateFunc: func(context.Context, *entity.User) error {
				return repository.ErrDuplicateEmail
			},
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})
		_, err := s.Register(context.Background(), RegisterRequest{
			FullName: "x", Email: "a@b.c", Password: "password1", Role: "customer",
		})
		assert.Equal(t, http.StatusConflict, appStatus(t, err).Status)
	})

	t.Run("fails when the email cannot be enqueued", func(t *testing.T) {
		mail := &mockEnqueuer{
			PublishJSONFunc: func(context.Context, any) error {
				return assert.AnError
			},
		}
		s := newTestAuthService(&mockUserRepo{}, &mockOTPRepo{}, mail)
		_, err := s.Register(context.Background(), RegisterRequest{
			FullName: "x", Email: "a@b.c", Password: "password1", Role: "customer",
		})
		assert.Equal(t, http.StatusInternalServerError, appStatus(t, err).Status)
	})
}

func TestIssueOTPCooldown(t *testing.T) {
	user := &entity.User{ID: helpers.NewID(), Email: "a@b.c", Role: entity.RoleCustomer}

	t.Run("resend inside the cooldown is rate limited with ceiled wait", func(t *testing.T) {
		otps := &mockOTPRepo{
			FindActiveFunc: func(_ context.Context, _ string, _ entity.OTPPurpose, now time.Time) (*entity.OTPRecord, error) {
				return &entity.OTPRecord{
					ID:                helpers.NewID(),
					ExpiresAt:         now.Add(5 * time.Minute),
					ResendAvailableAt: now.Add(12500 * time.Millisecond),
				}, nil
			},
		}
		users := &mockUserRepo{
			GetByEmailFunc: func(context.Context, string) (*entity.User, error) { return user, nil },
		}
		s := newTestAuthService(users, otps, &mockEnqueuer{})

		err := s.ResendVerificationOTP(context.Background(), user.Email)
		appErr := appStatus(t, err)
		assert.Equal(t, http.StatusTooManyRequests, appErr.Status)
		assert.Equal(t, 13, appErr.RetryAfter)
		assert.Contains(t, appErr.Message, "13 seconds")
	})

	t.Run("resend after the cooldown supersedes the old code", func(t *testing.T) {
		consumed := false
		otps := &mockOTPRepo{
			FindActiveFunc: func(_ context.Context, _ string, _ entity.OTPPurpose, now time.Time) (*entity.OTPRecord, error) {
				return &entity.OTPRecord{
					ID:                helpers.NewID(),
					ExpiresAt:         now.Add(5 * time.Minute),
					ResendAvailableAt: now.Add(-time.Second),
				}, nil
			},
			ConsumeActiveFunc: func(context.Context, string, entity.OTPPurpose, time.Time) error {
				consumed = true
				return nil
			},
		}
		users := &mockUserRepo{
			GetByEmailFunc: func(context.Context, string) (*entity.User, error) { return user, nil },
		}
		mail := &mockEnqueuer{}
		s := newTestAuthService(users, otps, mail)

		require.NoError(t, s.ResendVerificationOTP(context.Background(), user.Email))
		assert.True(t, consumed, "outstanding codes must be consumed before issuing")
		assert.Len(t, mail.jobs, 1)
	})

	t.Run("resend for a verified account is rejected", func(t *testing.T) {
		verified := &entity.User{ID: user.ID, Email: user.Email, IsEmailVerified: true}
		users := &mockUserRepo{
			GetByEmailFunc: func(context.Context, string) (*entity.User, error) { return verified, nil },
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})
		err := s.ResendVerificationOTP(context.Background(), user.Email)
		assert.Equal(t, http.StatusBadRequest, appStatus(t, err).Status)
	})
}

func TestVerifyEmail(t *testing.T) {
	secret := []byte("test-secret")
	user := &entity.User{ID: helpers.NewID(), Email: "a@b.c"}

	activeRecord := func(code string, now time.Time) *entity.OTPRecord {
		return &entity.OTPRecord{
			ID:        helpers.NewID(),
			UserID:    user.ID,
			CodeHash:  helpers.HashOTPCode(secret, code),
			ExpiresAt: now.Add(5 * time.Minute),
		}
	}

	t.Run("correct code verifies and consumes", func(t *testing.T) {
		var consumedID string
		rec := activeRecord("123456", testNow)
		otps := &mockOTPRepo{
			FindActiveFunc: func(context.Context, string, entity.OTPPurpose, time.Time) (*entity.OTPRecord, error) {
				return rec, nil
			},
			ConsumeFunc: func(_ context.Context, id string, _ time.Time) error {
				consumedID = id
				return nil
			},
		}
		verifiedID := ""
		users := &mockUserRepo{
			GetByEmailFunc: func(context.Context, string) (*entity.User, error) { return user, nil },
			SetEmailVerifiedFunc: func(_ context.Context, id string) error {
				verifiedID = id
				return nil
			},
		}
		s := newTestAuthService(users, otps, &mockEnqueuer{})

		res, err := s.VerifyEmail(context.Background(), VerifyEmailRequest{Email: user.Email, Code: "123456"})
		require.NoError(t, err)
		assert.Equal(t, rec.ID, consumedID)
		assert.Equal(t, user.ID, verifiedID)
		assert.NotEmpty(t, res.Token)
		assert.True(t, res.User.IsEmailVerified)
	})

	t.Run("wrong code and missing code are indistinguishable", func(t *testing.T) {
		users := &mockUserRepo{
			GetByEmailFunc: func(context.Context, string) (*entity.User, error) { return user, nil },
		}

		withRecord := &mockOTPRepo{
			FindActiveFunc: func(context.Context, string, entity.OTPPurpose, time.Time) (*entity.OTPRecord, error) {
				return activeRecord("123456", testNow), nil
			},
		}
		s := newTestAuthService(users, withRecord, &mockEnqueuer{})
		_, errMismatch := s.VerifyEmail(context.Background(), VerifyEmailRequest{Email: user.Email, Code: "654321"})

		s = newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})
		_, errMissing := s.VerifyEmail(context.Background(), VerifyEmailRequest{Email: user.Email, Code: "123456"})

		mismatch := appStatus(t, errMismatch)
		missing := appStatus(t, errMissing)
		assert.Equal(t, mismatch.Status, missing.Status)
		assert.Equal(t, mismatch.Message, missing.Message)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		s := newTestAuthService(&mockUserRepo{}, &mockOTPRepo{}, &mockEnqueuer{})
		_, err := s.VerifyEmail(context.Background(), VerifyEmailRequest{Email: "ghost@x.y", Code: "123456"})
		assert.Equal(t, http.StatusNotFound, appStatus(t, err).Status)
	})
}

func TestLogin(t *testing.T) {
	hash, _ := helpers.HashPassword("correct-horse")
	verified := &entity.User{ID: helpers.NewID(), Email: "a@b.c", Password: hash, Role: entity.RoleCustomer, IsEmailVerified: true}

	t.Run("verified user gets a token", func(t *testing.T) {
		users := &mockUserRepo{
			GetByEmailFunc: func(context.Context, string) (*entity.User, error) { return verified, nil },
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})

		res, err := s.Login(context.Background(), LoginRequest{Email: verified.Email, Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)

		claims, err := s.jwt.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, verified.ID, claims.UserID)
		assert.Equal(t, "customer", claims.Role)
	})

	t.Run("unknown email and bad password return the same error", func(t *testing.T) {
		users := &mockUserRepo{
			GetByEmailFunc: func(context.Context, string) (*entity.User, error) { return verified, nil },
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})
		_, errBadPass := s.Login(context.Background(), LoginRequest{Email: verified.Email, Password: "wrong"})

		s = newTestAuthService(&mockUserRepo{}, &mockOTPRepo{}, &mockEnqueuer{})
		_, errNoUser := s.Login(context.Background(), LoginRequest{Email: "ghost@x.y", Password: "wrong"})

		badPass := appStatus(t, errBadPass)
		noUser := appStatus(t, errNoUser)
		assert.Equal(t, http.StatusUnauthorized, badPass.Status)
		assert.Equal(t, badPass.Status, noUser.Status)
		assert.Equal(t, badPass.Message, noUser.Message)
	})

	t.Run("unverified email is forbidden", func(t *testing.T) {
		unverified := &entity.User{ID: verified.ID, Email: verified.Email, Password: hash}
		users := &mockUserRepo{
			GetByEmailFunc: func(context.Context, string) (*entity.User, error) { return unverified, nil },
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})
		_, err := s.Login(context.Background(), LoginRequest{Email: verified.Email, Password: "correct-horse"})
		assert.Equal(t, http.StatusForbidden, appStatus(t, err).Status)
	})
}

func TestResetPassword(t *testing.T) {
	secret := []byte("test-secret")
	user := &entity.User{ID: helpers.NewID(), Email: "a@b.c"}

	t.Run("valid code sets the new password hash", func(t *testing.T) {
		var newHash string
		users := &mockUserRepo{
			GetByEmailFunc: func(context.Context, string) (*entity.User, error) { return user, nil },
			UpdatePasswordFunc: func(_ context.Context, _ string, passwordHash string) error {
				newHash = passwordHash
				return nil
			},
		}
		otps := &mockOTPRepo{
			FindActiveFunc: func(context.Context, string, entity.OTPPurpose, time.Time) (*entity.OTPRecord, error) {
				return &entity.OTPRecord{
					ID:        helpers.NewID(),
					CodeHash:  helpers.HashOTPCode(secret, "424242"),
					ExpiresAt: testNow.Add(time.Minute),
				}, nil
			},
		}
		s := newTestAuthService(users, otps, &mockEnqueuer{})

		err := s.ResetPassword(context.Background(), ResetPasswordRequest{
			Email: user.Email, Code: "424242", NewPassword: "brand-new-pass",
		})
		require.NoError(t, err)
		assert.True(t, helpers.CompareHashAndPassword(newHash, "brand-new-pass"))
	})

	t.Run("forgot password issues a reset code", func(t *testing.T) {
		var purpose entity.OTPPurpose
		users := &mockUserRepo{
			GetByEmailFunc: func(context.Context, string) (*entity.User, error) { return user, nil },
		}
		otps := &mockOTPRepo{
			CreateFunc: func(_ context.Context, rec *entity.OTPRecord) error {
				purpose = rec.Purpose
				return nil
			},
		}
		s := newTestAuthService(users, otps, &mockEnqueuer{})
		require.NoError(t, s.ForgotPassword(context.Background(), user.Email))
		assert.Equal(t, entity.OTPPasswordReset, purpose)
	})

	t.Run("forgot password is silent for unknown emails", func(t *testing.T) {
		mail := &mockEnqueuer{}
		s := newTestAuthService(&mockUserRepo{}, &mockOTPRepo{}, mail)
		require.NoError(t, s.ForgotPassword(context.Background(), "ghost@x.y"))
		assert.Empty(t, mail.jobs)
	})
}

func TestSubmitOnboarding(t *testing.T) {
	venueProfile := &entity.ProviderOnboarding{
		Verification:  entity.VerificationInfo{BusinessType: entity.BusinessIndividual, NationalIDOrTradeLicenseURL: "https://x/y.pdf"},
		VenueProvider: &entity.VenueProviderProfile{VenueName: "Hall", VenueType: "ballroom", Capacity: 200},
	}

	t.Run("stores the matching profile and stamps submission time", func(t *testing.T) {
		provider := &entity.User{ID: helpers.NewID(), Role: entity.RoleVenueProvider}
		var stored *entity.ProviderOnboarding
		users := &mockUserRepo{
			GetByIDFunc: func(context.Context, string) (*entity.User, error) { return provider, nil },
			UpdateOnboardingFunc: func(_ context.Context, _ string, o *entity.ProviderOnboarding) error {
				stored = o
				return nil
			},
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})

		u, err := s.SubmitOnboarding(context.Background(), provider.ID, venueProfile)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, testNow, stored.SubmittedAt)
		assert.Equal(t, stored, u.Onboarding)
	})

	t.Run("profile variant must match the role", func(t *testing.T) {
		provider := &entity.User{ID: helpers.NewID(), Role: entity.RoleServiceProvider}
		users := &mockUserRepo{
			GetByIDFunc: func(context.Context, string) (*entity.User, error) { return provider, nil },
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})
		_, err := s.SubmitOnboarding(context.Background(), provider.ID, venueProfile)
		assert.Equal(t, http.StatusForbidden, appStatus(t, err).Status)
	})

	t.Run("empty profile is rejected", func(t *testing.T) {
		provider := &entity.User{ID: helpers.NewID(), Role: entity.RoleVenueProvider}
		users := &mockUserRepo{
			GetByIDFunc: func(context.Context, string) (*entity.User, error) { return provider, nil },
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})
		empty := &entity.ProviderOnboarding{
			Verification: entity.VerificationInfo{BusinessType: entity.BusinessIndividual, NationalIDOrTradeLicenseURL: "https://x/y.pdf"},
		}
		_, err := s.SubmitOnboarding(context.Background(), provider.ID, empty)
		assert.Equal(t, http.StatusBadRequest, appStatus(t, err).Status)
	})

	t.Run("customers cannot onboard", func(t *testing.T) {
		customer := &entity.User{ID: helpers.NewID(), Role: entity.RoleCustomer}
		users := &mockUserRepo{
			GetByIDFunc: func(context.Context, string) (*entity.User, error) { return customer, nil },
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})
		_, err := s.SubmitOnboarding(context.Background(), customer.ID, venueProfile)
		assert.Equal(t, http.StatusForbidden, appStatus(t, err).Status)
	})

	t.Run("company accounts need a company name", func(t *testing.T) {
		provider := &entity.User{ID: helpers.NewID(), Role: entity.RoleVenueProvider}
		users := &mockUserRepo{
			GetByIDFunc: func(context.Context, string) (*entity.User, error) { return provider, nil },
		}
		s := newTestAuthService(users, &mockOTPRepo{}, &mockEnqueuer{})

		company := &entity.ProviderOnboarding{
			Verification:  entity.VerificationInfo{BusinessType: entity.BusinessCompany, NationalIDOrTradeLicenseURL: "https://x/y.pdf"},
			VenueProvider: venueProfile.VenueProvider,
		}
		_, err := s.SubmitOnboarding(context.Background(), provider.ID, company)
		assert.Equal(t, http.StatusBadRequest, appStatus(t, err).Status)
	})
}
