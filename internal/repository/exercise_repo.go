package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawsitive-coach/internal/domain"
)

// ExerciseRepository lee el catálogo de ejercicios (data de referencia).
type ExerciseRepository interface {
	ListAll(ctx context.Context) ([]domain.ExerciseDefinition, error)
}

type PgExerciseRepository struct {
	pool *pgxpool.Pool
}

func NewPgExerciseRepository(pool *pgxpool.Pool) *PgExerciseRepository {
	return &PgExerciseRepository{pool: pool}
}

// ListAll devuelve el catálogo completo en orden estable de inserción.
// El orden importa: los empates del scorer lo preservan.
func (r *PgExerciseRepository) ListAll(ctx context.Context) ([]domain.ExerciseDefinition, error) {
	const query = `
		SELECT id, title, category, difficulty_level, duration_minutes, required_skills, instructions, created_at
		FROM training_exercises
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []domain.ExerciseDefinition
	for rows.Next() {
		var ex domain.ExerciseDefinition
		if err := rows.Scan(
			&ex.ID,
			&ex.Title,
			&ex.Category,
			&ex.DifficultyLevel,
			&ex.DurationMinutes,
			&ex.RequiredSkills,
			&ex.Instructions,
			&ex.CreatedAt,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}
