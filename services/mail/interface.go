package mail

// Mailer enqueues outbound email. Delivery happens asynchronously in the
// mail worker; enqueue failures are the only errors callers see.
type Mailer interface {
	// Enqueue schedules a single message for delivery.
	Enqueue(to, subject, body string) error
}
