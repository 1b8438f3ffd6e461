package models

import "time"

const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"
)

// AppointmentEvent is published after an appointment changes state.
type AppointmentEvent struct {
	Type          string            `json:"type"`
	AppointmentID string            `json:"appointmentId"`
	ProviderID    string            `json:"providerId"`
	ConsumerID    string            `json:"consumerId"`
	SlotID        string            `json:"slotId"`
	Status        AppointmentStatus `json:"status"`
	StartDateTime time.Time         `json:"startDateTime"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// ReleasePayload is the body of a hold-expiry task.
type ReleasePayload struct {
	SlotID     string    `json:"slotId"`
	ProviderID string    `json:"providerId"`
	LockExpiry time.Time `json:"lockExpiry"`
}
