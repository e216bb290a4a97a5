package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawsitive-coach/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateOTP(ctx context.Context, id, otpHash string, otpExpiresAt time.Time) error
	MarkVerified(ctx context.Context, id string, verifiedAt time.Time) error
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id, email, display_name, password_hash, email_verified_at, otp_code_hash, otp_expires_at, created_at`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.EmailVerifiedAt,
		user.OtpCodeHash,
		user.OtpExpiresAt,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) UpdateOTP(ctx context.Context, id, otpHash string, otpExpiresAt time.Time) error {
	const query = `
		UPDATE users SET otp_code_hash = $2, otp_expires_at = $3 WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, otpHash, otpExpiresAt)
	return err
}

func (r *PgUserRepository) MarkVerified(ctx context.Context, id string, verifiedAt time.Time) error {
	const query = `
		UPDATE users SET email_verified_at = $2, otp_code_hash = '', otp_expires_at = NULL WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, verifiedAt)
	return err
}

func (r *PgUserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.PasswordHash,
		&u.EmailVerifiedAt,
		&u.OtpCodeHash,
		&u.OtpExpiresAt,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	return u, err
}
