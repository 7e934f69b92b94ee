package model

import "time"

// User represents a row in the `users` table. Every field maps to a
// column. The password is never stored raw; PasswordHash holds the
// bcrypt digest computed once at registration. RefreshToken holds the
// single currently valid refresh token for the account (empty when the
// user has never logged in): issuing a new session overwrites it, so a
// second login invalidates the first session's refresh token.
//
// The OTP/verification fields exist for the email-verification flow
// and are not touched by any identity operation yet.
//
// Fields:
//  ID                – primary key identifier of the user.
//  Name              – display name, required.
//  Email             – unique email address, the primary login key.
//  UserName          – unique handle, stored lowercased.
//  PasswordHash      – bcrypt hashed password.
//  RefreshToken      – current refresh token, empty if none.
//  IsAccountVerified – whether the email was verified.
//  VerifyOtp         – pending verification OTP, empty if none.
//  VerifyOtpExpireAt – unix expiry of the pending OTP, 0 if none.
//  CreatedAt         – timestamp of creation.
//  UpdatedAt         – timestamp of last update.
type User struct {
	ID                uint64    // users.id
	Name              string    // users.name
	Email             string    // users.email
	UserName          string    // users.user_name (lowercased)
	PasswordHash      string    // users.password_hash
	RefreshToken      string    // users.refresh_token
	IsAccountVerified bool      // users.is_account_verified
	VerifyOtp         string    // users.verify_otp
	VerifyOtpExpireAt int64     // users.verify_otp_expire_at
	CreatedAt         time.Time // users.created_at
	UpdatedAt         time.Time // users.updated_at
}

// SafeUser is the client-facing projection of a User. It deliberately
// has no fields for the password hash, the refresh token or the OTP
// columns, so a SafeUser can never leak them no matter how it is
// serialized.
type SafeUser struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}
