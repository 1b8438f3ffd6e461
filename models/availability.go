package models

import "time"

// Break is a sub-interval of the working window that cannot be booked.
type Break struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// Availability is a provider's declaration for one calendar day.
// Date is the UTC midnight of that day.
type Availability struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"providerId" json:"providerId"`
	Date        time.Time `bson:"date" json:"date"`
	IsAvailable bool      `bson:"isAvailable" json:"isAvailable"`
	StartTime   string    `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime     string    `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Breaks      []Break   `bson:"breaks" json:"breaks"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AvailabilityRequest is the provider-submitted payload. IsAvailable
// defaults to true when omitted.
type AvailabilityRequest struct {
	Date        string  `json:"date"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
	StartTime   string  `json:"startTime,omitempty"`
	EndTime     string  `json:"endTime,omitempty"`
	Breaks      []Break `json:"breaks,omitempty"`
}

// DaySchedule is an availability declaration with the slots of that day.
type DaySchedule struct {
	Availability *Availability `json:"availability"`
	Slots        []Slot        `json:"slots"`
}
