package handlers

// HandlerBundle groups every handler the router mounts.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Admin        *AdminHandler
}
