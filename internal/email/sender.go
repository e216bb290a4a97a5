package email

import (
	"context"
	"errors"
	"time"
)

// Sender define la interfaz para los correos transaccionales del coach.
type Sender interface {
	SendVerificationOTP(ctx context.Context, toEmail string, code string, expiresAt time.Time) error
	SendPlanReady(ctx context.Context, toEmail string, animalName string, planName string, durationWeeks int) error
	SendTrainingReminder(ctx context.Context, toEmail string, animalName string, exerciseTitle string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) err() error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}

func (s *disabledSender) SendVerificationOTP(_ context.Context, _ string, _ string, _ time.Time) error {
	return s.err()
}

func (s *disabledSender) SendPlanReady(_ context.Context, _ string, _ string, _ string, _ int) error {
	return s.err()
}

func (s *disabledSender) SendTrainingReminder(_ context.Context, _ string, _ string, _ string) error {
	return s.err()
}
