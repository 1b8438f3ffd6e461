package booking

import (
	"context"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

// AvailableSlots lists an approved provider's open slots starting at or
// after from (never earlier than now), ordered by start.
func (c *Coordinator) AvailableSlots(ctx context.Context, providerID string, from time.Time) (*models.ProviderSlots, error) {
	prov, err := c.approvedProvider(ctx, providerID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to load provider", err)
	}
	if prov == nil {
		return nil, utils.NewNotFoundError("Verified provider not found")
	}

	now := c.Clock.Now()
	if from.Before(now) {
		from = now
	}
	if _, err := c.Slots.ReleaseExpired(ctx, providerID, now); err != nil {
		c.Logger.Warn("Failed to reclaim expired holds", zap.String("providerID", providerID), zap.Error(err))
	}

	slots, err := c.Slots.FindAvailable(ctx, providerID, from)
	if err != nil {
		return nil, utils.NewInternalError("Failed to load slots", err)
	}
	out := make([]models.AvailableSlot, len(slots))
	for i, s := range slots {
		out[i] = models.AvailableSlot{
			ID:            s.ID,
			StartDateTime: s.StartDateTime,
			EndDateTime:   s.EndDateTime,
			Status:        s.Status,
		}
	}
	return &models.ProviderSlots{
		Provider:   prov.Summary(),
		Slots:      out,
		TotalSlots: len(out),
	}, nil
}

// AvailableProviders lists approved providers that have at least one open
// future slot, soonest first.
func (c *Coordinator) AvailableProviders(ctx context.Context) ([]models.AvailableProvider, error) {
	now := c.Clock.Now()
	if _, err := c.Slots.ReleaseExpired(ctx, "", now); err != nil {
		c.Logger.Warn("Failed to reclaim expired holds", zap.Error(err))
	}

	summaries, err := c.Slots.SummarizeAvailable(ctx, now)
	if err != nil {
		return nil, utils.NewInternalError("Failed to summarize slots", err)
	}
	ids := make([]string, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ProviderID
	}
	providers, err := c.Providers.GetApprovedByIDs(ctx, ids)
	if err != nil {
		return nil, utils.NewInternalError("Failed to load providers", err)
	}
	byID := make(map[string]models.Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}

	out := make([]models.AvailableProvider, 0, len(providers))
	for _, s := range summaries {
		p, ok := byID[s.ProviderID]
		if !ok {
			continue
		}
		out = append(out, models.AvailableProvider{
			ProviderSummary:     p.Summary(),
			AvailableSlotsCount: s.AvailableSlotsCount,
			NextAvailableSlot:   s.NextAvailableSlot,
		})
	}
	return out, nil
}
