package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawsitive-coach/internal/domain"
)

// PreferencesRepository persiste las preferencias de entrenamiento del dueño.
type PreferencesRepository interface {
	Upsert(ctx context.Context, prefs domain.OwnerPreferences) error
	GetByUserID(ctx context.Context, userID string) (domain.OwnerPreferences, error)
}

type PgPreferencesRepository struct {
	pool *pgxpool.Pool
}

func NewPgPreferencesRepository(pool *pgxpool.Pool) *PgPreferencesRepository {
	return &PgPreferencesRepository{pool: pool}
}

func (r *PgPreferencesRepository) Upsert(ctx context.Context, prefs domain.OwnerPreferences) error {
	const query = `
		INSERT INTO user_profiles (user_id, training_experience, time_commitment_minutes, training_goals, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET training_experience = EXCLUDED.training_experience,
		    time_commitment_minutes = EXCLUDED.time_commitment_minutes,
		    training_goals = EXCLUDED.training_goals,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		prefs.UserID,
		prefs.TrainingExperience,
		prefs.TimeCommitmentMinutes,
		prefs.TrainingGoals,
		prefs.CreatedAt,
		prefs.UpdatedAt,
	)
	return err
}

func (r *PgPreferencesRepository) GetByUserID(ctx context.Context, userID string) (domain.OwnerPreferences, error) {
	const query = `
		SELECT user_id, training_experience, time_commitment_minutes, training_goals, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	var p domain.OwnerPreferences
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.TrainingExperience,
		&p.TimeCommitmentMinutes,
		&p.TrainingGoals,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.OwnerPreferences{}, err
	}
	return p, err
}
