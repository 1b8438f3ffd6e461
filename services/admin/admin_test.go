package admin

import (
	"context"
	"testing"
	"time"

	"slotbook/database/memstore"
	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

func TestSetProviderApproval(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	if err := store.Providers().Create(ctx, &models.Provider{ID: "prov-1", UserID: "u1"}); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := &DefaultAdminService{Providers: store.Providers(), Clock: &utils.FixedClock{T: now}, Logger: zap.NewNop()}

	prov, err := svc.SetProviderApproval(ctx, "prov-1", true)
	if err != nil {
		t.Fatal(err)
	}
	if !prov.Approved || prov.ApprovedAt == nil || !prov.ApprovedAt.Equal(now) {
		t.Fatalf("unexpected provider after approval: %+v", prov)
	}

	prov, err = svc.SetProviderApproval(ctx, "prov-1", false)
	if err != nil {
		t.Fatal(err)
	}
	if prov.Approved || prov.ApprovedAt != nil {
		t.Fatalf("unexpected provider after revocation: %+v", prov)
	}

	if _, err := svc.SetProviderApproval(ctx, "missing", true); !utils.IsKind(err, utils.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
