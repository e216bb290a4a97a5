package domain

import "time"

// User es la cuenta del dueño. El login es por email (OTP o password).
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	DisplayName     string     `json:"display_name,omitempty"`
	PasswordHash    string     `json:"-"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	OtpCodeHash     string     `json:"-"`
	OtpExpiresAt    *time.Time `json:"otp_expires_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
