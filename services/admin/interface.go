package admin

import (
	"context"
	"errors"

	"slotbook/database/repository"
	providerRepo "slotbook/database/repository/provider"
	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

type AdminService interface {
	SetProviderApproval(ctx context.Context, providerID string, approved bool) (*models.Provider, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Providers providerRepo.ProviderRepository
	Clock     utils.Clock
	Logger    *zap.Logger
}

// SetProviderApproval approves or revokes a provider. Revocation does not
// touch existing holds: they fail at confirm time.
func (s *DefaultAdminService) SetProviderApproval(ctx context.Context, providerID string, approved bool) (*models.Provider, error) {
	prov, err := s.Providers.SetApproval(ctx, providerID, approved, s.Clock.Now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("Provider not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to update provider approval", err)
	}
	s.Logger.Info("Provider approval changed", zap.String("providerID", providerID), zap.Bool("approved", approved))
	return prov, nil
}
