package http

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pawsitive-coach/internal/domain"
	"pawsitive-coach/internal/service"
)

type fakeAnimalRepo struct {
	animals map[string]domain.AnimalProfile
}

func newFakeAnimalRepo() *fakeAnimalRepo {
	return &fakeAnimalRepo{animals: make(map[string]domain.AnimalProfile)}
}

func (m *fakeAnimalRepo) Create(_ context.Context, animal domain.AnimalProfile) error {
	m.animals[animal.ID] = animal
	return nil
}

func (m *fakeAnimalRepo) GetByID(_ context.Context, id, userID string) (domain.AnimalProfile, error) {
	animal, ok := m.animals[id]
	if !ok || animal.UserID != userID {
		return domain.AnimalProfile{}, pgx.ErrNoRows
	}
	return animal, nil
}

func (m *fakeAnimalRepo) ListByUserID(_ context.Context, userID string) ([]domain.AnimalProfile, error) {
	var out []domain.AnimalProfile
	for _, animal := range m.animals {
		if animal.UserID == userID {
			out = append(out, animal)
		}
	}
	return out, nil
}

func (m *fakeAnimalRepo) Update(_ context.Context, animal domain.AnimalProfile) error {
	m.animals[animal.ID] = animal
	return nil
}

type fakePrefsRepo struct {
	prefs map[string]domain.OwnerPreferences
}

func newFakePrefsRepo() *fakePrefsRepo {
	return &fakePrefsRepo{prefs: make(map[string]domain.OwnerPreferences)}
}

func (m *fakePrefsRepo) Upsert(_ context.Context, prefs domain.OwnerPreferences) error {
	m.prefs[prefs.UserID] = prefs
	return nil
}

func (m *fakePrefsRepo) GetByUserID(_ context.Context, userID string) (domain.OwnerPreferences, error) {
	prefs, ok := m.prefs[userID]
	if !ok {
		return domain.OwnerPreferences{}, pgx.ErrNoRows
	}
	return prefs, nil
}

type fakeExerciseRepo struct {
	catalog []domain.ExerciseDefinition
}

func (m *fakeExerciseRepo) ListAll(_ context.Context) ([]domain.ExerciseDefinition, error) {
	return m.catalog, nil
}

type fakeBreedRepo struct{}

func (m *fakeBreedRepo) GetByName(_ context.Context, _ string) (domain.BreedProfile, error) {
	return domain.BreedProfile{}, pgx.ErrNoRows
}

type fakePlanRepo struct {
	mu    sync.Mutex
	plans map[string]domain.TrainingPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]domain.TrainingPlan)}
}

func (m *fakePlanRepo) Create(_ context.Context, plan domain.TrainingPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = plan
	return nil
}

func (m *fakePlanRepo) GetByID(_ context.Context, id, userID string) (domain.TrainingPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	plan, ok := m.plans[id]
	if !ok || plan.UserID != userID {
		return domain.TrainingPlan{}, pgx.ErrNoRows
	}
	return plan, nil
}

func (m *fakePlanRepo) ListByAnimalID(_ context.Context, animalID, userID string) ([]domain.TrainingPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.TrainingPlan
	for _, plan := range m.plans {
		if plan.AnimalID == animalID && plan.UserID == userID {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (m *fakePlanRepo) ListActive(_ context.Context) ([]domain.TrainingPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.TrainingPlan
	for _, plan := range m.plans {
		if plan.Status == domain.PlanStatusActive {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (m *fakePlanRepo) UpdateProgress(_ context.Context, id, userID string, currentExerciseIndex int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	plan, ok := m.plans[id]
	if !ok || plan.UserID != userID {
		return pgx.ErrNoRows
	}
	plan.CurrentExerciseIndex = currentExerciseIndex
	plan.Status = status
	m.plans[id] = plan
	return nil
}

// withTestClaims inyecta claims directamente para no montar el middleware JWT.
func withTestClaims(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(authClaimsKey, service.Claims{UserID: userID, Email: "owner@example.com"})
		c.Next()
	}
}

func planHandlerFixture() (*gin.Engine, *fakeAnimalRepo, *fakePlanRepo) {
	gin.SetMode(gin.TestMode)
	animals := newFakeAnimalRepo()
	plans := newFakePlanRepo()
	users := newMockUserRepo()
	svc := service.NewPlanService(
		zap.NewNop(),
		animals,
		newFakePrefsRepo(),
		&fakeExerciseRepo{catalog: []domain.ExerciseDefinition{
			{ID: "ex-sit", Title: "Sit", Category: domain.CategoryBasicObedience, DifficultyLevel: domain.DifficultyBeginner, DurationMinutes: 10},
			{ID: "ex-leash", Title: "Loose Leash Walking", Category: "Leash Skills", DifficultyLevel: domain.DifficultyBeginner, DurationMinutes: 15},
		}},
		&fakeBreedRepo{},
		plans,
		users,
		&mockOTPSender{},
		nil,
	)
	h := NewPlanHandler(zap.NewNop(), svc)

	r := gin.New()
	auth := r.Group("/", withTestClaims("user-1"))
	auth.POST("/animals/:id/plans", h.GeneratePlan)
	auth.GET("/animals/:id/plans", h.ListPlans)
	auth.GET("/plans/:id", h.GetPlan)
	auth.POST("/plans/:id/progress", h.AdvanceProgress)
	return r, animals, plans
}

func seedDog(animals *fakeAnimalRepo) domain.AnimalProfile {
	dog := domain.AnimalProfile{
		ID:                 "dog-1",
		UserID:             "user-1",
		Name:               "Luna",
		AgeMonths:          8,
		EnergyLevel:        domain.EnergyHigh,
		BehavioralConcerns: []string{"leash pulling"},
	}
	_ = animals.Create(context.Background(), dog)
	return dog
}

func TestPlanHandlerGeneratePlan_Success(t *testing.T) {
	r, animals, plans := planHandlerFixture()
	seedDog(animals)

	rec := performRequest(r, http.MethodPost, "/animals/dog-1/plans", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(plans.plans) != 1 {
		t.Fatalf("expected 1 persisted plan, got %d", len(plans.plans))
	}
	for _, plan := range plans.plans {
		if plan.Status != domain.PlanStatusActive {
			t.Errorf("plan status = %q; want active", plan.Status)
		}
		if plan.AnimalID != "dog-1" || plan.UserID != "user-1" {
			t.Errorf("plan ownership = %q/%q", plan.AnimalID, plan.UserID)
		}
	}
}

func TestPlanHandlerGeneratePlan_AnimalNotFound(t *testing.T) {
	r, _, _ := planHandlerFixture()

	rec := performRequest(r, http.MethodPost, "/animals/ghost/plans", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestPlanHandlerGetPlan_NotFound(t *testing.T) {
	r, _, _ := planHandlerFixture()

	rec := performRequest(r, http.MethodGet, "/plans/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestPlanHandlerListPlans_EmptyIsArray(t *testing.T) {
	r, animals, _ := planHandlerFixture()
	seedDog(animals)

	rec := performRequest(r, http.MethodGet, "/animals/dog-1/plans", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"plans":[]}` {
		t.Fatalf("expected empty array body, got %s", body)
	}
}

func TestPlanHandlerAdvanceProgress_CompletesPlan(t *testing.T) {
	r, animals, plans := planHandlerFixture()
	seedDog(animals)

	rec := performRequest(r, http.MethodPost, "/animals/dog-1/plans", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	var planID string
	for id := range plans.plans {
		planID = id
	}

	// Dos ejercicios en el catálogo: dos avances dejan el plan completado.
	for i := 0; i < 2; i++ {
		rec = performRequest(r, http.MethodPost, "/plans/"+planID+"/progress", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("advance %d: expected status 200, got %d", i, rec.Code)
		}
	}

	plan, err := plans.GetByID(context.Background(), planID, "user-1")
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if plan.Status != domain.PlanStatusCompleted {
		t.Errorf("plan status = %q; want completed", plan.Status)
	}
}

func TestPlanHandlerGeneratePlan_RequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPlanHandler(zap.NewNop(), nil)
	r := gin.New()
	r.POST("/animals/:id/plans", h.GeneratePlan)

	rec := performRequest(r, http.MethodPost, "/animals/dog-1/plans", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
