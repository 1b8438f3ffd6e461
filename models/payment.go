package models

import "time"

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

// Accepted payment methods.
var PaymentMethods = map[string]bool{
	"card":       true,
	"upi":        true,
	"netbanking": true,
	"wallet":     true,
}

// Payment records the gateway outcome of a confirmed appointment.
// Gateway identifiers are stored as received.
type Payment struct {
	ID               string        `bson:"id" json:"id"`
	AppointmentID    string        `bson:"appointmentId" json:"appointmentId"`
	ConsumerID       string        `bson:"consumerId" json:"consumerId"`
	ProviderID       string        `bson:"providerId" json:"providerId"`
	Amount           float64       `bson:"amount" json:"amount"`
	TokenAmount      float64       `bson:"tokenAmount,omitempty" json:"tokenAmount,omitempty"`
	GatewayOrderID   string        `bson:"gatewayOrderId" json:"gatewayOrderId"`
	GatewayPaymentID string        `bson:"gatewayPaymentId,omitempty" json:"gatewayPaymentId,omitempty"`
	GatewaySignature string        `bson:"gatewaySignature,omitempty" json:"-"`
	Status           PaymentStatus `bson:"status" json:"status"`
	Method           string        `bson:"method,omitempty" json:"method,omitempty"`
	PaidAt           *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ConfirmRequest is the proof of payment submitted to book a held slot.
type ConfirmRequest struct {
	SlotID           string  `json:"slotId"`
	Amount           float64 `json:"amount"`
	TokenAmount      float64 `json:"tokenAmount,omitempty"`
	ServiceName      string  `json:"serviceName,omitempty"`
	GatewayOrderID   string  `json:"gatewayOrderId"`
	GatewayPaymentID string  `json:"gatewayPaymentId,omitempty"`
	GatewaySignature string  `json:"gatewaySignature,omitempty"`
	PaymentMethod    string  `json:"paymentMethod,omitempty"`
}

// BookingResult is the outcome of a successful confirm.
type BookingResult struct {
	Appointment *Appointment `json:"appointment"`
	Payment     *Payment     `json:"payment"`
	Slot        *Slot        `json:"slot"`
}
