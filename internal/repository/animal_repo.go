package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawsitive-coach/internal/domain"
)

// AnimalRepository define el contrato de persistencia para perfiles de perros.
type AnimalRepository interface {
	Create(ctx context.Context, animal domain.AnimalProfile) error
	GetByID(ctx context.Context, id, userID string) (domain.AnimalProfile, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.AnimalProfile, error)
	Update(ctx context.Context, animal domain.AnimalProfile) error
}

// PgAnimalRepository implementa AnimalRepository usando pgxpool.
// Los sets de tags se guardan como text[].
type PgAnimalRepository struct {
	pool *pgxpool.Pool
}

func NewPgAnimalRepository(pool *pgxpool.Pool) *PgAnimalRepository {
	return &PgAnimalRepository{pool: pool}
}

func (r *PgAnimalRepository) Create(ctx context.Context, animal domain.AnimalProfile) error {
	const query = `
		INSERT INTO dogs (id, user_id, name, breed, age_years, age_months, energy_level, temperament_traits, current_skills, behavioral_concerns, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		animal.ID,
		animal.UserID,
		animal.Name,
		animal.Breed,
		animal.AgeYears,
		animal.AgeMonths,
		animal.EnergyLevel,
		animal.TemperamentTraits,
		animal.CurrentSkills,
		animal.BehavioralConcerns,
		animal.CreatedAt,
		animal.UpdatedAt,
	)
	return err
}

func (r *PgAnimalRepository) GetByID(ctx context.Context, id, userID string) (domain.AnimalProfile, error) {
	const query = `
		SELECT id, user_id, name, breed, age_years, age_months, energy_level, temperament_traits, current_skills, behavioral_concerns, created_at, updated_at
		FROM dogs
		WHERE id = $1 AND user_id = $2
	`
	var a domain.AnimalProfile
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Breed,
		&a.AgeYears,
		&a.AgeMonths,
		&a.EnergyLevel,
		&a.TemperamentTraits,
		&a.CurrentSkills,
		&a.BehavioralConcerns,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AnimalProfile{}, err
	}
	return a, err
}

func (r *PgAnimalRepository) ListByUserID(ctx context.Context, userID string) ([]domain.AnimalProfile, error) {
	const query = `
		SELECT id, user_id, name, breed, age_years, age_months, energy_level, temperament_traits, current_skills, behavioral_concerns, created_at, updated_at
		FROM dogs
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var animals []domain.AnimalProfile
	for rows.Next() {
		var a domain.AnimalProfile
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Name,
			&a.Breed,
			&a.AgeYears,
			&a.AgeMonths,
			&a.EnergyLevel,
			&a.TemperamentTraits,
			&a.CurrentSkills,
			&a.BehavioralConcerns,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		animals = append(animals, a)
	}
	return animals, rows.Err()
}

func (r *PgAnimalRepository) Update(ctx context.Context, animal domain.AnimalProfile) error {
	const query = `
		UPDATE dogs
		SET name = $3, breed = $4, age_years = $5, age_months = $6, energy_level = $7,
		    temperament_traits = $8, current_skills = $9, behavioral_concerns = $10, updated_at = $11
		WHERE id = $1 AND user_id = $2
	`
	_, err := r.pool.Exec(ctx, query,
		animal.ID,
		animal.UserID,
		animal.Name,
		animal.Breed,
		animal.AgeYears,
		animal.AgeMonths,
		animal.EnergyLevel,
		animal.TemperamentTraits,
		animal.CurrentSkills,
		animal.BehavioralConcerns,
		animal.UpdatedAt,
	)
	return err
}
