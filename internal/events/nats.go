package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSPublisher sends issue envelopes as NATS messages: the topic is the
// subject, the payload is the body and the routing fields travel as headers.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("issueboard-publisher"))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) PublishIssueEvent(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if env.Topic == "" {
		return fmt.Errorf("publishing event: empty topic")
	}
	msg := nats.NewMsg(env.Topic)
	msg.Data = env.Payload
	if env.IssueID != "" {
		msg.Header.Set(HeaderIssueID, env.IssueID)
	}
	if env.Actor != "" {
		msg.Header.Set(HeaderActor, env.Actor)
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publishing %s: %w", env.Topic, err)
	}
	return nil
}

// Flush blocks until the server has processed everything published so far.
func (p *NATSPublisher) Flush() error {
	return p.conn.Flush()
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// NATSSubscriber subscribes to events from NATS subjects.
type NATSSubscriber struct {
	conn *nats.Conn
}

// NewNATSSubscriber connects to NATS with automatic reconnection support.
// Extra nats.Option values (e.g. disconnect/reconnect handlers) can be appended.
func NewNATSSubscriber(url string, opts ...nats.Option) (*NATSSubscriber, error) {
	defaults := []nats.Option{
		nats.Name("issueboard-subscriber"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSSubscriber{conn: nc}, nil
}

// Subscribe returns a channel of messages for the given topic (wildcards
// like "issues.>" are allowed). Call the returned cancel function to
// unsubscribe and close the channel.
func (s *NATSSubscriber) Subscribe(topic string) (<-chan Message, func(), error) {
	ch := make(chan Message, 64)

	var (
		mu     sync.Mutex
		closed bool
		once   sync.Once
	)

	sub, err := s.conn.Subscribe(topic, func(msg *nats.Msg) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- messageFrom(msg):
		default:
			// Full channel: drop rather than stall the NATS client.
		}
	})
	if err != nil {
		close(ch)
		return nil, nil, fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	// Make sure the server knows about the subscription before returning.
	if err := s.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		close(ch)
		return nil, nil, fmt.Errorf("flushing subscription: %w", err)
	}

	cancel := func() {
		once.Do(func() {
			_ = sub.Unsubscribe()
			mu.Lock()
			closed = true
			mu.Unlock()
			for {
				select {
				case <-ch:
				default:
					close(ch)
					return
				}
			}
		})
	}

	return ch, cancel, nil
}

func messageFrom(msg *nats.Msg) Message {
	m := Message{Topic: msg.Subject, Data: msg.Data}
	if msg.Header != nil {
		m.IssueID = msg.Header.Get(HeaderIssueID)
		m.Actor = msg.Header.Get(HeaderActor)
	}
	return m
}

func (s *NATSSubscriber) Close() error {
	s.conn.Close()
	return nil
}
