package memstore

import (
	"slotbook/database"
	appointmentRepo "slotbook/database/repository/appointment"
	availabilityRepo "slotbook/database/repository/availability"
	consumerRepo "slotbook/database/repository/consumer"
	paymentRepo "slotbook/database/repository/payment"
	providerRepo "slotbook/database/repository/provider"
	timeslotRepo "slotbook/database/repository/timeslot"
)

var (
	_ database.Transactor                     = (*Store)(nil)
	_ timeslotRepo.TimeSlotRepository         = (*SlotStore)(nil)
	_ availabilityRepo.AvailabilityRepository = (*AvailabilityStore)(nil)
	_ appointmentRepo.AppointmentRepository   = (*AppointmentStore)(nil)
	_ paymentRepo.PaymentRepository           = (*PaymentStore)(nil)
	_ providerRepo.ProviderRepository         = (*ProviderStore)(nil)
	_ consumerRepo.ConsumerRepository         = (*ConsumerStore)(nil)
)
