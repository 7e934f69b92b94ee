package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sridip-de/mern-auth/internal/model"
)

// UserRepo is the credential store: it owns the durable user record
// including the password hash and the single live refresh token.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,user_name,password_hash,refresh_token,is_account_verified,verify_otp,verify_otp_expire_at,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.UserName, &u.PasswordHash,
		&u.RefreshToken, &u.IsAccountVerified, &u.VerifyOtp, &u.VerifyOtpExpireAt,
		&u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a new user with an already-hashed password and
// returns its ID. Hashing is the caller's responsibility; this layer
// never sees the raw password. A concurrent insert that wins the
// email/user_name uniqueness race comes back as ErrDuplicateUser
// (MySQL error 1062).
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash, userName string) (uint64, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, user_name, password_hash) VALUES (?,?,?,?)",
		name, email, userName, passwordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDuplicateUser
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindByEmail fetches the full user record by email. Used for the
// login lookup, where the password hash is needed for verification.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// FindByEmailOrUserName reports whether a user already exists for the
// given email or (lowercased) user name. Only the registration
// uniqueness pre-check uses it.
func (r *UserRepo) FindByEmailOrUserName(ctx context.Context, email, userName string) (bool, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email=? OR user_name=? LIMIT 1",
		email, userName).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindByID returns the safe projection of a user: the query selects
// only non-sensitive columns, so the hash, refresh token and OTP
// fields never leave the database on this path.
func (r *UserRepo) FindByID(ctx context.Context, id uint64) (model.SafeUser, error) {
	var u model.SafeUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,user_name FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.UserName)
	return u, err
}

// UpdateRefreshToken overwrites the stored refresh token for a user.
// This is the only write path after creation and it touches the
// refresh_token column alone, so the password hash can never be
// re-hashed by an unrelated save.
func (r *UserRepo) UpdateRefreshToken(ctx context.Context, id uint64, refreshToken string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=?, updated_at=NOW() WHERE id=?",
		refreshToken, id)
	return err
}
