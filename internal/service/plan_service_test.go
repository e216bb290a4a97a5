package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"pawsitive-coach/internal/domain"
)

type mockAnimalRepo struct {
	animal domain.AnimalProfile
	err    error
}

func (m *mockAnimalRepo) Create(_ context.Context, _ domain.AnimalProfile) error { return nil }
func (m *mockAnimalRepo) Update(_ context.Context, _ domain.AnimalProfile) error { return nil }
func (m *mockAnimalRepo) ListByUserID(_ context.Context, _ string) ([]domain.AnimalProfile, error) {
	return nil, nil
}
func (m *mockAnimalRepo) GetByID(_ context.Context, id, userID string) (domain.AnimalProfile, error) {
	if m.err != nil {
		return domain.AnimalProfile{}, m.err
	}
	if m.animal.ID != id || m.animal.UserID != userID {
		return domain.AnimalProfile{}, pgx.ErrNoRows
	}
	return m.animal, nil
}

type mockPrefsRepo struct {
	prefs domain.OwnerPreferences
	err   error
}

func (m *mockPrefsRepo) Upsert(_ context.Context, _ domain.OwnerPreferences) error { return nil }
func (m *mockPrefsRepo) GetByUserID(_ context.Context, _ string) (domain.OwnerPreferences, error) {
	if m.err != nil {
		return domain.OwnerPreferences{}, m.err
	}
	return m.prefs, nil
}

type mockExerciseRepo struct {
	catalog []domain.ExerciseDefinition
	err     error
}

func (m *mockExerciseRepo) ListAll(_ context.Context) ([]domain.ExerciseDefinition, error) {
	return m.catalog, m.err
}

type mockBreedRepo struct {
	breed domain.BreedProfile
	err   error
}

func (m *mockBreedRepo) GetByName(_ context.Context, name string) (domain.BreedProfile, error) {
	if m.err != nil {
		return domain.BreedProfile{}, m.err
	}
	if m.breed.BreedName != name {
		return domain.BreedProfile{}, pgx.ErrNoRows
	}
	return m.breed, nil
}

type mockPlanRepo struct {
	mu           sync.Mutex
	created      []domain.TrainingPlan
	createErr    error
	lastProgress struct {
		id     string
		index  int
		status string
	}
}

func (m *mockPlanRepo) Create(_ context.Context, plan domain.TrainingPlan) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, plan)
	return nil
}

func (m *mockPlanRepo) GetByID(_ context.Context, id, userID string) (domain.TrainingPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.created {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return domain.TrainingPlan{}, pgx.ErrNoRows
}

func (m *mockPlanRepo) ListByAnimalID(_ context.Context, animalID, userID string) ([]domain.TrainingPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.TrainingPlan
	for _, p := range m.created {
		if p.AnimalID == animalID && p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPlanRepo) ListActive(_ context.Context) ([]domain.TrainingPlan, error) {
	return nil, nil
}

func (m *mockPlanRepo) UpdateProgress(_ context.Context, id, _ string, currentExerciseIndex int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastProgress.id = id
	m.lastProgress.index = currentExerciseIndex
	m.lastProgress.status = status
	for i := range m.created {
		if m.created[i].ID == id {
			m.created[i].CurrentExerciseIndex = currentExerciseIndex
			m.created[i].Status = status
		}
	}
	return nil
}

type mockUserRepoForPlans struct {
	user domain.User
}

func (m *mockUserRepoForPlans) Create(_ context.Context, _ domain.User) error { return nil }
func (m *mockUserRepoForPlans) GetByID(_ context.Context, id string) (domain.User, error) {
	if m.user.ID != id {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.user, nil
}
func (m *mockUserRepoForPlans) GetByEmail(_ context.Context, _ string) (domain.User, error) {
	return domain.User{}, pgx.ErrNoRows
}
func (m *mockUserRepoForPlans) UpdateOTP(_ context.Context, _, _ string, _ time.Time) error {
	return nil
}
func (m *mockUserRepoForPlans) MarkVerified(_ context.Context, _ string, _ time.Time) error {
	return nil
}

type mockEmailSender struct {
	mu        sync.Mutex
	planReady int
	lastTo    string
	lastPlan  string
}

func (m *mockEmailSender) SendVerificationOTP(_ context.Context, _ string, _ string, _ time.Time) error {
	return nil
}
func (m *mockEmailSender) SendPlanReady(_ context.Context, to, _, planName string, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.planReady++
	m.lastTo = to
	m.lastPlan = planName
	return nil
}
func (m *mockEmailSender) SendTrainingReminder(_ context.Context, _, _, _ string) error {
	return nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(string) bool { return false }

func planServiceFixture() (*PlanService, *mockPlanRepo, *mockEmailSender) {
	input := scenarioInput()
	animal := input.Animal
	animal.UserID = "user-1"

	plans := &mockPlanRepo{}
	sender := &mockEmailSender{}
	svc := NewPlanService(
		nil,
		&mockAnimalRepo{animal: animal},
		&mockPrefsRepo{prefs: domain.OwnerPreferences{
			UserID:                "user-1",
			TrainingExperience:    domain.ExperienceBeginner,
			TimeCommitmentMinutes: 15,
		}},
		&mockExerciseRepo{catalog: input.Catalog},
		&mockBreedRepo{err: pgx.ErrNoRows},
		plans,
		&mockUserRepoForPlans{user: domain.User{ID: "user-1", Email: "owner@example.com"}},
		sender,
		nil,
	)
	return svc, plans, sender
}

func TestPlanServiceGenerateForAnimal(t *testing.T) {
	svc, plans, sender := planServiceFixture()

	plan, err := svc.GenerateForAnimal(context.Background(), "user-1", "dog-1")
	if err != nil {
		t.Fatalf("GenerateForAnimal: %v", err)
	}
	if plan.ID == "" {
		t.Errorf("expected generated plan id")
	}
	if plan.AnimalID != "dog-1" || plan.UserID != "user-1" {
		t.Errorf("ownership not set: animal=%q user=%q", plan.AnimalID, plan.UserID)
	}
	if plan.Status != domain.PlanStatusActive {
		t.Errorf("status = %q; want active", plan.Status)
	}
	if plan.CurrentExerciseIndex != 0 {
		t.Errorf("current index = %d; want 0", plan.CurrentExerciseIndex)
	}
	if plan.CreatedAt.IsZero() {
		t.Errorf("expected created_at set")
	}
	if len(plan.ExerciseSequence) != 2 {
		t.Fatalf("expected 2 curriculum entries, got %d", len(plan.ExerciseSequence))
	}
	if plan.ExerciseSequence[0].ExerciseID != "ex-leash" {
		t.Errorf("first exercise = %q; want ex-leash", plan.ExerciseSequence[0].ExerciseID)
	}

	plans.mu.Lock()
	persisted := len(plans.created)
	plans.mu.Unlock()
	if persisted != 1 {
		t.Fatalf("expected 1 persisted plan, got %d", persisted)
	}

	// El correo sale en una goroutine.
	deadline := time.Now().Add(time.Second)
	for {
		sender.mu.Lock()
		n := sender.planReady
		to := sender.lastTo
		sender.mu.Unlock()
		if n == 1 {
			if to != "owner@example.com" {
				t.Errorf("plan ready sent to %q", to)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("plan ready email never sent")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPlanServiceGenerateForAnimal_Errors(t *testing.T) {
	t.Run("animal not found", func(t *testing.T) {
		svc, _, _ := planServiceFixture()
		if _, err := svc.GenerateForAnimal(context.Background(), "user-1", "missing"); !errors.Is(err, ErrAnimalNotFound) {
			t.Fatalf("expected ErrAnimalNotFound, got %v", err)
		}
	})

	t.Run("foreign animal rejected", func(t *testing.T) {
		svc, _, _ := planServiceFixture()
		if _, err := svc.GenerateForAnimal(context.Background(), "user-2", "dog-1"); !errors.Is(err, ErrAnimalNotFound) {
			t.Fatalf("expected ErrAnimalNotFound, got %v", err)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		svc, _, _ := planServiceFixture()
		svc.exercises = &mockExerciseRepo{}
		if _, err := svc.GenerateForAnimal(context.Background(), "user-1", "dog-1"); !errors.Is(err, ErrEmptyCatalog) {
			t.Fatalf("expected ErrEmptyCatalog, got %v", err)
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		svc, _, _ := planServiceFixture()
		svc.limiter = denyLimiter{}
		if _, err := svc.GenerateForAnimal(context.Background(), "user-1", "dog-1"); !errors.Is(err, ErrPlanRateLimited) {
			t.Fatalf("expected ErrPlanRateLimited, got %v", err)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		var svc *PlanService
		if _, err := svc.GenerateForAnimal(context.Background(), "user-1", "dog-1"); !errors.Is(err, ErrPlanServiceNotConfigured) {
			t.Fatalf("expected ErrPlanServiceNotConfigured, got %v", err)
		}
	})
}

func TestPlanServiceGenerateForAnimal_BreedAdjustment(t *testing.T) {
	svc, _, _ := planServiceFixture()
	svc.breeds = &mockBreedRepo{breed: domain.BreedProfile{
		BreedName:         "Beagle",
		TrainabilityScore: 9,
	}}

	plan, err := svc.GenerateForAnimal(context.Background(), "user-1", "dog-1")
	if err != nil {
		t.Fatalf("GenerateForAnimal: %v", err)
	}
	// Trainability 9 acorta las semanas frente al caso sin raza.
	base, err := planServiceFixtureGenerate(t)
	if err != nil {
		t.Fatalf("baseline generate: %v", err)
	}
	if plan.EstimatedDurationWeeks >= base.EstimatedDurationWeeks {
		t.Errorf("weeks with trainability 9 = %d; want < %d", plan.EstimatedDurationWeeks, base.EstimatedDurationWeeks)
	}
}

func planServiceFixtureGenerate(t *testing.T) (domain.TrainingPlan, error) {
	t.Helper()
	svc, _, _ := planServiceFixture()
	return svc.GenerateForAnimal(context.Background(), "user-1", "dog-1")
}

func TestPlanServiceAdvanceProgress(t *testing.T) {
	svc, plans, _ := planServiceFixture()

	plan, err := svc.GenerateForAnimal(context.Background(), "user-1", "dog-1")
	if err != nil {
		t.Fatalf("GenerateForAnimal: %v", err)
	}

	after, err := svc.AdvanceProgress(context.Background(), "user-1", plan.ID)
	if err != nil {
		t.Fatalf("AdvanceProgress: %v", err)
	}
	if after.CurrentExerciseIndex != 1 || after.Status != domain.PlanStatusActive {
		t.Fatalf("after first advance: index=%d status=%q", after.CurrentExerciseIndex, after.Status)
	}

	after, err = svc.AdvanceProgress(context.Background(), "user-1", plan.ID)
	if err != nil {
		t.Fatalf("AdvanceProgress: %v", err)
	}
	if after.Status != domain.PlanStatusCompleted {
		t.Fatalf("expected plan completed, got %q", after.Status)
	}
	if after.CurrentExerciseIndex != len(plan.ExerciseSequence) {
		t.Fatalf("completed index = %d; want %d", after.CurrentExerciseIndex, len(plan.ExerciseSequence))
	}
	if plans.lastProgress.status != domain.PlanStatusCompleted {
		t.Fatalf("persisted status = %q", plans.lastProgress.status)
	}

	// Avanzar un plan completado es un no-op.
	again, err := svc.AdvanceProgress(context.Background(), "user-1", plan.ID)
	if err != nil {
		t.Fatalf("AdvanceProgress on completed: %v", err)
	}
	if again.CurrentExerciseIndex != after.CurrentExerciseIndex {
		t.Fatalf("completed plan advanced: %d", again.CurrentExerciseIndex)
	}
}

func TestPlanServiceGetAndList(t *testing.T) {
	svc, _, _ := planServiceFixture()

	plan, err := svc.GenerateForAnimal(context.Background(), "user-1", "dog-1")
	if err != nil {
		t.Fatalf("GenerateForAnimal: %v", err)
	}

	got, err := svc.Get(context.Background(), "user-1", plan.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != plan.ID {
		t.Fatalf("Get returned %q", got.ID)
	}

	if _, err := svc.Get(context.Background(), "user-2", plan.ID); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound for foreign user, got %v", err)
	}

	list, err := svc.ListForAnimal(context.Background(), "user-1", "dog-1")
	if err != nil {
		t.Fatalf("ListForAnimal: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(list))
	}
}
