package consumerRepo

import (
	"context"

	"slotbook/models"
)

// ConsumerRepository defines methods for consumer profile access.
type ConsumerRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, consumer *models.Consumer) error
	GetByID(ctx context.Context, id string) (*models.Consumer, error)
	// GetByUserID resolves the consumer profile of an authenticated user.
	GetByUserID(ctx context.Context, userID string) (*models.Consumer, error)
}
