package models

import "time"

type AppointmentStatus string

const (
	AppointmentPending            AppointmentStatus = "pending"
	AppointmentConfirmed          AppointmentStatus = "confirmed"
	AppointmentRescheduleRequired AppointmentStatus = "reschedule-required"
	AppointmentCancelled          AppointmentStatus = "cancelled"
	AppointmentAttended           AppointmentStatus = "attended"
	AppointmentNoShow             AppointmentStatus = "no-show"
	AppointmentExpired            AppointmentStatus = "expired"
)

type AppointmentPaymentStatus string

const (
	AppointmentPaymentPending  AppointmentPaymentStatus = "pending"
	AppointmentPaymentPaid     AppointmentPaymentStatus = "paid"
	AppointmentPaymentFailed   AppointmentPaymentStatus = "failed"
	AppointmentPaymentRefunded AppointmentPaymentStatus = "refunded"
)

// Actors recorded in the appointment audit trail.
const (
	ActorConsumer = "consumer"
	ActorProvider = "provider"
	ActorAdmin    = "admin"
)

const DefaultServiceName = "Consultation"

type ServiceInfo struct {
	Name     string  `bson:"name" json:"name"`
	Duration int     `bson:"duration" json:"duration"` // minutes
	Fee      float64 `bson:"fee" json:"fee"`
}

type StatusChange struct {
	Status    AppointmentStatus `bson:"status" json:"status"`
	ChangedAt time.Time         `bson:"changedAt" json:"changedAt"`
	ChangedBy string            `bson:"changedBy" json:"changedBy"`
}

// Appointment is a confirmed booking of one slot.
type Appointment struct {
	ID                 string                   `bson:"id" json:"id"`
	ConsumerID         string                   `bson:"consumerId" json:"consumerId"`
	ProviderID         string                   `bson:"providerId" json:"providerId"`
	SlotID             string                   `bson:"slotId" json:"slotId"`
	Service            ServiceInfo              `bson:"service" json:"service"`
	StartDateTime      time.Time                `bson:"startDateTime" json:"startDateTime"`
	EndDateTime        time.Time                `bson:"endDateTime" json:"endDateTime"`
	Status             AppointmentStatus        `bson:"status" json:"status"`
	PaymentStatus      AppointmentPaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	CancellationReason string                   `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledBy        string                   `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time               `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	AttendedAt         *time.Time               `bson:"attendedAt,omitempty" json:"attendedAt,omitempty"`
	StatusHistory      []StatusChange           `bson:"statusHistory" json:"statusHistory"`
	IsActive           bool                     `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time                `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time                `bson:"updatedAt" json:"updatedAt"`
}

// CancelRequest carries an optional cancellation reason.
type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}
