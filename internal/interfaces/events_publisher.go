package interfaces

// EventPublisher ships committed ledger events to an external sink. The
// ledger invokes it after a mutation has committed and outside every lock,
// so implementations are free to block on I/O.
type EventPublisher interface {
	Publish(topic string, event any) error
}
