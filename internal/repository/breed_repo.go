package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawsitive-coach/internal/domain"
)

// BreedRepository lee las fichas de raza (data de referencia opcional).
type BreedRepository interface {
	GetByName(ctx context.Context, breedName string) (domain.BreedProfile, error)
}

type PgBreedRepository struct {
	pool *pgxpool.Pool
}

func NewPgBreedRepository(pool *pgxpool.Pool) *PgBreedRepository {
	return &PgBreedRepository{pool: pool}
}

func (r *PgBreedRepository) GetByName(ctx context.Context, breedName string) (domain.BreedProfile, error) {
	const query = `
		SELECT breed_name, breed_group, energy_level, trainability_score
		FROM breed_info
		WHERE breed_name = $1
	`
	var b domain.BreedProfile
	err := r.pool.QueryRow(ctx, query, breedName).Scan(
		&b.BreedName,
		&b.BreedGroup,
		&b.EnergyLevel,
		&b.TrainabilityScore,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.BreedProfile{}, err
	}
	return b, err
}
