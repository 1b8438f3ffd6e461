package models

import "time"

type Location struct {
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Pincode string `bson:"pincode,omitempty" json:"pincode,omitempty"`
}

type Clinic struct {
	Name     string   `bson:"name" json:"name"`
	Location Location `bson:"location" json:"location"`
}

// Provider is the bookable party. Profiles are created by the identity
// service; this engine reads them and toggles approval.
type Provider struct {
	ID             string     `bson:"id" json:"id"`
	UserID         string     `bson:"userId" json:"-"`
	Name           string     `bson:"name" json:"name"`
	Specialization string     `bson:"specialization" json:"specialization"`
	Clinic         Clinic     `bson:"clinic" json:"clinic"`
	ProfilePhoto   string     `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	Approved       bool       `bson:"approved" json:"approved"`
	ApprovedAt     *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// ProviderSummary is the public view attached to holds and listings.
type ProviderSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Clinic         Clinic `json:"clinic"`
	ProfilePhoto   string `json:"profilePhoto,omitempty"`
}

func (p Provider) Summary() ProviderSummary {
	return ProviderSummary{
		ID:             p.ID,
		Name:           p.Name,
		Specialization: p.Specialization,
		Clinic:         p.Clinic,
		ProfilePhoto:   p.ProfilePhoto,
	}
}

// AvailableProvider is an approved provider with open slots.
type AvailableProvider struct {
	ProviderSummary
	AvailableSlotsCount int       `json:"availableSlotsCount"`
	NextAvailableSlot   time.Time `json:"nextAvailableSlot"`
}

// ApprovalRequest toggles provider approval.
type ApprovalRequest struct {
	Approved bool `json:"approved"`
}
