package memstore

import (
	"context"
	"fmt"
	"time"

	"slotbook/database/repository"
	"slotbook/models"
)

// ProviderStore implements providerRepo.ProviderRepository.
type ProviderStore struct{ s *Store }

func (r *ProviderStore) EnsureIndexes(ctx context.Context) error { return nil }

func (r *ProviderStore) Create(ctx context.Context, p *models.Provider) error {
	defer r.s.lock(ctx)()
	for _, other := range r.s.providers {
		if other.ID == p.ID || (p.UserID != "" && other.UserID == p.UserID) {
			return fmt.Errorf("failed to create provider: %w", repository.ErrDuplicate)
		}
	}
	r.s.providers[p.ID] = *p
	return nil
}

func (r *ProviderStore) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.providers[id]
	if !ok {
		return nil, fmt.Errorf("failed to get provider: %w", repository.ErrNotFound)
	}
	return &p, nil
}

func (r *ProviderStore) GetByUserID(ctx context.Context, userID string) (*models.Provider, error) {
	defer r.s.lock(ctx)()
	for _, p := range r.s.providers {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("failed to get provider: %w", repository.ErrNotFound)
}

func (r *ProviderStore) GetApprovedByIDs(ctx context.Context, ids []string) ([]models.Provider, error) {
	defer r.s.lock(ctx)()
	out := []models.Provider{}
	for _, id := range ids {
		if p, ok := r.s.providers[id]; ok && p.Approved {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProviderStore) SetApproval(ctx context.Context, id string, approved bool, now time.Time) (*models.Provider, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.providers[id]
	if !ok {
		return nil, fmt.Errorf("failed to set provider approval: %w", repository.ErrNotFound)
	}
	p.Approved = approved
	p.ApprovedAt = nil
	if approved {
		at := now
		p.ApprovedAt = &at
	}
	p.UpdatedAt = now
	r.s.providers[id] = p
	return &p, nil
}

// ConsumerStore implements consumerRepo.ConsumerRepository.
type ConsumerStore struct{ s *Store }

func (r *ConsumerStore) EnsureIndexes(ctx context.Context) error { return nil }

func (r *ConsumerStore) Create(ctx context.Context, c *models.Consumer) error {
	defer r.s.lock(ctx)()
	for _, other := range r.s.consumers {
		if other.ID == c.ID || (c.UserID != "" && other.UserID == c.UserID) {
			return fmt.Errorf("failed to create consumer: %w", repository.ErrDuplicate)
		}
	}
	r.s.consumers[c.ID] = *c
	return nil
}

func (r *ConsumerStore) GetByID(ctx context.Context, id string) (*models.Consumer, error) {
	defer r.s.lock(ctx)()
	c, ok := r.s.consumers[id]
	if !ok {
		return nil, fmt.Errorf("failed to get consumer: %w", repository.ErrNotFound)
	}
	return &c, nil
}

func (r *ConsumerStore) GetByUserID(ctx context.Context, userID string) (*models.Consumer, error) {
	defer r.s.lock(ctx)()
	for _, c := range r.s.consumers {
		if c.UserID == userID {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("failed to get consumer: %w", repository.ErrNotFound)
}
