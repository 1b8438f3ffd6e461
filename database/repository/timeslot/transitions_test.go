package timeslotRepo

import (
	"reflect"
	"testing"
	"time"

	"slotbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestTransitionFilters(t *testing.T) {
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	lapsed := bson.A{
		bson.M{"lockExpiry": bson.M{"$lte": now}},
		bson.M{"lockExpiry": nil},
	}

	tests := []struct {
		name string
		got  bson.M
		want bson.M
	}{
		{
			name: "hold",
			got:  holdFilter("s1", "cons-a", now),
			want: bson.M{
				"id":            "s1",
				"isActive":      true,
				"startDateTime": bson.M{"$gt": now},
				"$or": bson.A{
					bson.M{"status": models.SlotAvailable},
					bson.M{"status": models.SlotLocked, "$or": lapsed},
					bson.M{"status": models.SlotLocked, "lockedBy": "cons-a", "lockExpiry": bson.M{"$gt": now}},
				},
			},
		},
		{
			name: "commit",
			got:  commitFilter("s1", "cons-a", now),
			want: bson.M{
				"id":         "s1",
				"isActive":   true,
				"status":     models.SlotLocked,
				"lockedBy":   "cons-a",
				"lockExpiry": bson.M{"$gt": now},
			},
		},
		{
			name: "expired for one provider",
			got:  expiredFilter("prov-1", now),
			want: bson.M{"status": models.SlotLocked, "$or": lapsed, "providerId": "prov-1"},
		},
		{
			name: "expired across providers",
			got:  expiredFilter("", now),
			want: bson.M{"status": models.SlotLocked, "$or": lapsed},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Fatalf("filter mismatch\n got: %v\nwant: %v", tt.got, tt.want)
			}
		})
	}
}
