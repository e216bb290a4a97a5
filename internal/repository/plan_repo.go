package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawsitive-coach/internal/domain"
)

// PlanRepository persiste los planes generados. Un plan se inserta completo
// y solo se le mueve el cursor o el status; el contenido nunca se parchea.
type PlanRepository interface {
	Create(ctx context.Context, plan domain.TrainingPlan) error
	GetByID(ctx context.Context, id, userID string) (domain.TrainingPlan, error)
	ListByAnimalID(ctx context.Context, animalID, userID string) ([]domain.TrainingPlan, error)
	ListActive(ctx context.Context) ([]domain.TrainingPlan, error)
	UpdateProgress(ctx context.Context, id, userID string, currentExerciseIndex int, status string) error
}

// PgPlanRepository implementa PlanRepository usando pgxpool.
// Secuencia, recomendaciones y snapshot van como JSONB.
type PgPlanRepository struct {
	pool *pgxpool.Pool
}

func NewPgPlanRepository(pool *pgxpool.Pool) *PgPlanRepository {
	return &PgPlanRepository{pool: pool}
}

const planColumns = `id, dog_id, user_id, plan_name, goal_description, difficulty_level, estimated_duration_weeks, exercise_sequence, ai_recommendations, personalization_factors, status, current_exercise_index, created_at`

func (r *PgPlanRepository) Create(ctx context.Context, plan domain.TrainingPlan) error {
	const query = `
		INSERT INTO training_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		plan.ID,
		plan.AnimalID,
		plan.UserID,
		plan.PlanName,
		plan.GoalDescription,
		plan.DifficultyLevel,
		plan.EstimatedDurationWeeks,
		plan.ExerciseSequence,
		plan.Recommendations,
		plan.PersonalizationFactors,
		plan.Status,
		plan.CurrentExerciseIndex,
		plan.CreatedAt,
	)
	return err
}

func (r *PgPlanRepository) GetByID(ctx context.Context, id, userID string) (domain.TrainingPlan, error) {
	const query = `
		SELECT ` + planColumns + `
		FROM training_plans
		WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, userID)
	plan, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TrainingPlan{}, err
	}
	return plan, err
}

func (r *PgPlanRepository) ListByAnimalID(ctx context.Context, animalID, userID string) ([]domain.TrainingPlan, error) {
	const query = `
		SELECT ` + planColumns + `
		FROM training_plans
		WHERE dog_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, animalID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlans(rows)
}

// ListActive alimenta el scheduler de recordatorios.
func (r *PgPlanRepository) ListActive(ctx context.Context) ([]domain.TrainingPlan, error) {
	const query = `
		SELECT ` + planColumns + `
		FROM training_plans
		WHERE status = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, domain.PlanStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlans(rows)
}

func (r *PgPlanRepository) UpdateProgress(ctx context.Context, id, userID string, currentExerciseIndex int, status string) error {
	const query = `
		UPDATE training_plans
		SET current_exercise_index = $3, status = $4
		WHERE id = $1 AND user_id = $2
	`
	_, err := r.pool.Exec(ctx, query, id, userID, currentExerciseIndex, status)
	return err
}

func scanPlans(rows pgx.Rows) ([]domain.TrainingPlan, error) {
	var plans []domain.TrainingPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func scanPlan(row pgx.Row) (domain.TrainingPlan, error) {
	var p domain.TrainingPlan
	err := row.Scan(
		&p.ID,
		&p.AnimalID,
		&p.UserID,
		&p.PlanName,
		&p.GoalDescription,
		&p.DifficultyLevel,
		&p.EstimatedDurationWeeks,
		&p.ExerciseSequence,
		&p.Recommendations,
		&p.PersonalizationFactors,
		&p.Status,
		&p.CurrentExerciseIndex,
		&p.CreatedAt,
	)
	return p, err
}
