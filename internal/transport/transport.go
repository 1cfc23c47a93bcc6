// internal/transport/transport.go
package transport

// Publisher is the interface all simulator bus clients must satisfy.
// Publish hands one message to the bus for the given topic; it is
// fire-and-forget, and an error means the message never left this
// process.
type Publisher interface {
	Publish(topic string, msg any) error
	Close() error
}
