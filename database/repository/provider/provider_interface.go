package providerRepo

import (
	"context"
	"time"

	"slotbook/models"
)

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	EnsureIndexes(ctx context.Context) error
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByUserID resolves the provider profile of an authenticated user.
	GetByUserID(ctx context.Context, userID string) (*models.Provider, error)
	// GetApprovedByIDs returns the approved providers among ids.
	GetApprovedByIDs(ctx context.Context, ids []string) ([]models.Provider, error)
	// SetApproval toggles the approval flag.
	SetApproval(ctx context.Context, id string, approved bool, now time.Time) (*models.Provider, error)
}
