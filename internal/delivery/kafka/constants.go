package kafka

const (
	TopicPaymentRecorded   = "payment.recorded"
	TopicBookingConfirmed  = "booking.confirmed"
	TopicBookingOverbooked = "booking.overbooked"

	// Raw processor notifications; value is the body as received.
	TopicPaymentNotifications = "payment.notifications"

	HeaderSignature = "stripe-signature"
	HeaderMessageID = "message_id"
	HeaderTimestamp = "timestamp"
)
