package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"pawsitive-coach/internal/email"
	"pawsitive-coach/internal/repository"
)

// ReminderScheduler corre el job diario que recuerda a los dueños
// practicar el ejercicio actual de cada plan activo.
type ReminderScheduler struct {
	logger    *zap.Logger
	scheduler *gocron.Scheduler
	plans     repository.PlanRepository
	animals   repository.AnimalRepository
	users     repository.UserRepository
	sender    email.Sender
}

func NewReminderScheduler(
	logger *zap.Logger,
	plans repository.PlanRepository,
	animals repository.AnimalRepository,
	users repository.UserRepository,
	sender email.Sender,
) *ReminderScheduler {
	return &ReminderScheduler{
		logger:    logger,
		scheduler: gocron.NewScheduler(time.UTC),
		plans:     plans,
		animals:   animals,
		users:     users,
		sender:    sender,
	}
}

// Start programa el job diario a la hora indicada (formato HH:MM) y
// arranca el scheduler sin bloquear.
func (s *ReminderScheduler) Start(at string) error {
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.runOnce); err != nil {
		return fmt.Errorf("schedule reminder job: %w", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop frena el scheduler y espera a que termine el job en curso.
func (s *ReminderScheduler) Stop() {
	s.scheduler.Stop()
}

func (s *ReminderScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sent, failed := s.SendDueReminders(ctx)
	s.logger.Info("training reminders job finished",
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)
}

// SendDueReminders manda un recordatorio por cada plan activo cuyo
// ejercicio actual todavía no se completó. Devuelve enviados y fallidos.
func (s *ReminderScheduler) SendDueReminders(ctx context.Context) (sent, failed int) {
	plans, err := s.plans.ListActive(ctx)
	if err != nil {
		s.logger.Error("list active plans", zap.Error(err))
		return 0, 0
	}

	for _, plan := range plans {
		if plan.CurrentExerciseIndex < 0 || plan.CurrentExerciseIndex >= len(plan.ExerciseSequence) {
			continue
		}
		exercise := plan.ExerciseSequence[plan.CurrentExerciseIndex]

		user, err := s.users.GetByID(ctx, plan.UserID)
		if err != nil || user.Email == "" {
			failed++
			continue
		}

		animalName := "your dog"
		if animal, err := s.animals.GetByID(ctx, plan.AnimalID, plan.UserID); err == nil && animal.Name != "" {
			animalName = animal.Name
		}

		if err := s.sender.SendTrainingReminder(ctx, user.Email, animalName, exercise.ExerciseTitle); err != nil {
			s.logger.Warn("send training reminder",
				zap.String("plan_id", plan.ID),
				zap.Error(err),
			)
			failed++
			continue
		}
		sent++
	}

	return sent, failed
}
