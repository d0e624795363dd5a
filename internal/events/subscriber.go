package events

// Message is one event as received from the bus. IssueID and Actor come
// from the message headers and are empty for publishers that omit them.
type Message struct {
	Topic   string
	IssueID string
	Actor   string
	Data    []byte
}

// Subscriber receives events from the event bus.
type Subscriber interface {
	// Subscribe delivers messages on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan Message, func(), error)
	Close() error
}
