package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotLocked      SlotStatus = "locked"
	SlotBooked      SlotStatus = "booked"
	SlotUnavailable SlotStatus = "unavailable"
	SlotExpired     SlotStatus = "expired"
)

// Slot represents one bookable interval of a provider's day.
// StartDateTime/EndDateTime are naive instants: their UTC wall-clock
// fields equal the provider's declared local time of day.
// LockedBy and LockExpiry are set iff Status is locked; AppointmentID is
// set once a booked slot has been linked.
type Slot struct {
	ID               string     `bson:"id" json:"id"`
	ProviderID       string     `bson:"providerId" json:"providerId"`
	StartDateTime    time.Time  `bson:"startDateTime" json:"startDateTime"`
	EndDateTime      time.Time  `bson:"endDateTime" json:"endDateTime"`
	Status           SlotStatus `bson:"status" json:"status"`
	LockedBy         string     `bson:"lockedBy,omitempty" json:"-"`
	LockExpiry       *time.Time `bson:"lockExpiry,omitempty" json:"lockExpiry,omitempty"`
	AppointmentID    string     `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	IsActive         bool       `bson:"isActive" json:"isActive"`
	LastStatusChange time.Time  `bson:"lastStatusChange" json:"lastStatusChange"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// DurationMinutes returns the slot length in whole minutes, never less than one.
func (s Slot) DurationMinutes() int {
	d := int(s.EndDateTime.Sub(s.StartDateTime).Round(time.Minute) / time.Minute)
	if d < 1 {
		return 1
	}
	return d
}

// AvailableSlot is the public projection returned by slot queries.
type AvailableSlot struct {
	ID            string     `json:"id"`
	StartDateTime time.Time  `json:"startDateTime"`
	EndDateTime   time.Time  `json:"endDateTime"`
	Status        SlotStatus `json:"status"`
}

// ProviderSlotSummary aggregates the open slots of one provider.
type ProviderSlotSummary struct {
	ProviderID          string    `bson:"_id" json:"providerId"`
	AvailableSlotsCount int       `bson:"availableSlotsCount" json:"availableSlotsCount"`
	NextAvailableSlot   time.Time `bson:"nextAvailableSlot" json:"nextAvailableSlot"`
}

// HoldRequest is the body of a slot hold.
type HoldRequest struct {
	SlotID      string  `json:"slotId"`
	HoldMinutes Minutes `json:"holdMinutes,omitempty"`
}

// Minutes is a requested duration that decodes from a JSON integer or a
// numeric string. Anything else decodes to 0, which hold policy replaces
// with its default.
type Minutes int

func (m *Minutes) UnmarshalJSON(b []byte) error {
	*m = 0
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && math.Abs(x) <= math.MaxInt32 {
			*m = Minutes(x)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			*m = Minutes(n)
		}
	}
	return nil
}

// HoldResponse describes an acquired hold.
type HoldResponse struct {
	SlotID        string          `json:"slotId"`
	Provider      ProviderSummary `json:"provider"`
	StartDateTime time.Time       `json:"startDateTime"`
	EndDateTime   time.Time       `json:"endDateTime"`
	Status        SlotStatus      `json:"status"`
	LockExpiry    time.Time       `json:"lockExpiry"`
	HoldMinutes   int             `json:"holdMinutes"`
}

// ProviderSlots lists the bookable slots of one approved provider.
type ProviderSlots struct {
	Provider   ProviderSummary `json:"provider"`
	Slots      []AvailableSlot `json:"slots"`
	TotalSlots int             `json:"totalSlots"`
}
