package entity

import "time"

// OTPPurpose scopes a one-time code to the flow that issued it.
type OTPPurpose string

const (
	OTPEmailVerification OTPPurpose = "email_verification"
	OTPPasswordReset     OTPPurpose = "password_reset"
)

// OTPRecord is the stored proof for a single issued code. Only the keyed
// hash of the code is persisted. A record is never updated after creation
// except to set ConsumedAt, either by a successful verification or by a
// superseding issuance. Expiry is derived from ExpiresAt at read time;
// nothing ever writes an "expired" state.
type OTPRecord struct {
	ID                string
	UserID            string
	Email             string
	Purpose           OTPPurpose
	CodeHash          string
	ExpiresAt         time.Time
	ResendAvailableAt time.Time
	ConsumedAt        *time.Time
	CreatedAt         time.Time
}

// Active means unconsumed and not yet expired at the given instant.
func (r *OTPRecord) Active(now time.Time) bool {
	return r.ConsumedAt == nil && now.Before(r.ExpiresAt)
}
