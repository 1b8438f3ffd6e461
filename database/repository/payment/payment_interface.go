package paymentRepo

import (
	"context"

	"slotbook/models"
)

type PaymentRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, p *models.Payment) error
	GetByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error)
}
