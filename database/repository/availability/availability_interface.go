package availabilityRepo

import (
	"context"
	"time"

	"slotbook/models"
)

// AvailabilityRepository stores one declaration per provider per day.
type AvailabilityRepository interface {
	EnsureIndexes(ctx context.Context) error
	// Upsert replaces the declaration for (ProviderID, Date), keeping the
	// original ID and CreatedAt when one exists.
	Upsert(ctx context.Context, a *models.Availability) (*models.Availability, error)
	// GetByProviderAndDate returns repository.ErrNotFound when no
	// declaration exists.
	GetByProviderAndDate(ctx context.Context, providerID string, date time.Time) (*models.Availability, error)
}
