package handlers

// HandlerBundle groups all endpoint handlers into one struct so routes can be
// registered from a single value.
type HandlerBundle struct {
	Slots         *SlotHandler
	Bookings      *BookingHandler
	Reviews       *ReviewHandler
	Notifications *NotificationHandler
}
