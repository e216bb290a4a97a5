package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pawsitive-coach/internal/domain"
	"pawsitive-coach/internal/email"
	"pawsitive-coach/internal/repository"
)

var (
	ErrPlanServiceNotConfigured = errors.New("plan service not configured")
	ErrAnimalNotFound           = errors.New("animal not found")
	ErrPlanNotFound             = errors.New("plan not found")
	ErrPlanRateLimited          = errors.New("plan generation rate limited")
	ErrEmptyCatalog             = errors.New("exercise catalog is empty")
)

// PlanService orquesta la generación de planes: junta los inputs desde los
// repositorios, corre el motor determinista y persiste el resultado.
type PlanService struct {
	logger      *zap.Logger
	animals     repository.AnimalRepository
	preferences repository.PreferencesRepository
	exercises   repository.ExerciseRepository
	breeds      repository.BreedRepository
	plans       repository.PlanRepository
	users       repository.UserRepository
	emailSender email.Sender
	limiter     RateLimiter
}

func NewPlanService(
	logger *zap.Logger,
	animals repository.AnimalRepository,
	preferences repository.PreferencesRepository,
	exercises repository.ExerciseRepository,
	breeds repository.BreedRepository,
	plans repository.PlanRepository,
	users repository.UserRepository,
	emailSender email.Sender,
	limiter RateLimiter,
) *PlanService {
	return &PlanService{
		logger:      logger,
		animals:     animals,
		preferences: preferences,
		exercises:   exercises,
		breeds:      breeds,
		plans:       plans,
		users:       users,
		emailSender: emailSender,
		limiter:     limiter,
	}
}

// GenerateForAnimal arma el input del motor para un perro del usuario,
// genera el plan y lo persiste como activo.
func (s *PlanService) GenerateForAnimal(ctx context.Context, userID, animalID string) (domain.TrainingPlan, error) {
	if s == nil || s.animals == nil || s.exercises == nil || s.plans == nil {
		return domain.TrainingPlan{}, ErrPlanServiceNotConfigured
	}

	userID = strings.TrimSpace(userID)
	animalID = strings.TrimSpace(animalID)
	if userID == "" || animalID == "" {
		return domain.TrainingPlan{}, ErrAnimalNotFound
	}

	if s.limiter != nil && !s.limiter.Allow(userID) {
		return domain.TrainingPlan{}, ErrPlanRateLimited
	}

	animal, err := s.animals.GetByID(ctx, animalID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TrainingPlan{}, ErrAnimalNotFound
		}
		return domain.TrainingPlan{}, fmt.Errorf("get animal: %w", err)
	}

	input := PlanInput{Animal: animal}

	if s.preferences != nil {
		prefs, err := s.preferences.GetByUserID(ctx, userID)
		switch {
		case err == nil:
			input.Preferences = &prefs
		case errors.Is(err, pgx.ErrNoRows):
			// Sin preferencias el motor usa defaults.
		default:
			return domain.TrainingPlan{}, fmt.Errorf("get preferences: %w", err)
		}
	}

	catalog, err := s.exercises.ListAll(ctx)
	if err != nil {
		return domain.TrainingPlan{}, fmt.Errorf("list exercises: %w", err)
	}
	if len(catalog) == 0 {
		return domain.TrainingPlan{}, ErrEmptyCatalog
	}
	input.Catalog = catalog

	if s.breeds != nil && animal.Breed != "" {
		breed, err := s.breeds.GetByName(ctx, animal.Breed)
		switch {
		case err == nil:
			input.Breed = &breed
		case errors.Is(err, pgx.ErrNoRows):
			// Raza desconocida: el motor sigue sin ajuste de raza.
		default:
			return domain.TrainingPlan{}, fmt.Errorf("get breed: %w", err)
		}
	}

	plan := GeneratePlan(input)
	plan.ID = uuid.NewString()
	plan.AnimalID = animal.ID
	plan.UserID = userID
	plan.Status = domain.PlanStatusActive
	plan.CurrentExerciseIndex = 0
	plan.CreatedAt = time.Now().UTC()

	if err := s.plans.Create(ctx, plan); err != nil {
		return domain.TrainingPlan{}, fmt.Errorf("persist plan: %w", err)
	}

	s.notifyPlanReady(plan, animal.Name)

	return plan, nil
}

// notifyPlanReady envia el correo fuera del request; un fallo solo se loguea.
func (s *PlanService) notifyPlanReady(plan domain.TrainingPlan, animalName string) {
	if s.emailSender == nil || s.users == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := s.users.GetByID(ctx, plan.UserID)
		if err != nil || user.Email == "" {
			return
		}
		if err := s.emailSender.SendPlanReady(ctx, user.Email, animalName, plan.PlanName, plan.EstimatedDurationWeeks); err != nil && s.logger != nil {
			s.logger.Warn("send plan ready email failed",
				zap.Error(err),
				zap.String("plan_id", plan.ID),
			)
		}
	}()
}

// Get devuelve un plan del usuario.
func (s *PlanService) Get(ctx context.Context, userID, planID string) (domain.TrainingPlan, error) {
	if s == nil || s.plans == nil {
		return domain.TrainingPlan{}, ErrPlanServiceNotConfigured
	}
	planID = strings.TrimSpace(planID)
	userID = strings.TrimSpace(userID)
	if planID == "" || userID == "" {
		return domain.TrainingPlan{}, ErrPlanNotFound
	}
	plan, err := s.plans.GetByID(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TrainingPlan{}, ErrPlanNotFound
		}
		return domain.TrainingPlan{}, err
	}
	return plan, nil
}

// ListForAnimal devuelve los planes de un perro, el más reciente primero.
func (s *PlanService) ListForAnimal(ctx context.Context, userID, animalID string) ([]domain.TrainingPlan, error) {
	if s == nil || s.plans == nil {
		return nil, ErrPlanServiceNotConfigured
	}
	animalID = strings.TrimSpace(animalID)
	userID = strings.TrimSpace(userID)
	if animalID == "" || userID == "" {
		return []domain.TrainingPlan{}, nil
	}
	return s.plans.ListByAnimalID(ctx, animalID, userID)
}

// AdvanceProgress marca el ejercicio actual como dominado y avanza el índice.
// Cuando el índice llega al final del currículo el plan pasa a completed.
func (s *PlanService) AdvanceProgress(ctx context.Context, userID, planID string) (domain.TrainingPlan, error) {
	if s == nil || s.plans == nil {
		return domain.TrainingPlan{}, ErrPlanServiceNotConfigured
	}

	plan, err := s.Get(ctx, userID, planID)
	if err != nil {
		return domain.TrainingPlan{}, err
	}
	if plan.Status != domain.PlanStatusActive {
		return plan, nil
	}

	next := plan.CurrentExerciseIndex + 1
	status := domain.PlanStatusActive
	if next >= len(plan.ExerciseSequence) {
		next = len(plan.ExerciseSequence)
		status = domain.PlanStatusCompleted
	}

	if err := s.plans.UpdateProgress(ctx, plan.ID, userID, next, status); err != nil {
		return domain.TrainingPlan{}, fmt.Errorf("update progress: %w", err)
	}

	plan.CurrentExerciseIndex = next
	plan.Status = status
	return plan, nil
}
