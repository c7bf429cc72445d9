package realtime

import (
	"sync"
	"time"
)

// Collection names published by the service layer.
const (
	CollectionPlayers  = "players"
	CollectionCoaches  = "coaches"
	CollectionEvents   = "events"
	CollectionPayments = "payments"
)

// Notification tells a subscriber that a collection changed. Subscribers
// re-fetch the collection; the notification carries no record data, so a
// missed notification only delays convergence until the next write.
type Notification struct {
	Collection string    `json:"collection"`
	At         time.Time `json:"at"`
}

// Broker fans change notifications out to subscribers. Publishing never
// blocks: a subscriber whose channel buffer is full is skipped, last write
// wins on the next successful delivery.
type Broker struct {
	mu     sync.Mutex
	nextID int64
	subs   map[int64]*Subscription
}

// Subscription is one subscriber's handle. Receive from C and call Close on
// teardown to release the channel.
type Subscription struct {
	C <-chan Notification

	id          int64
	broker      *Broker
	collections map[string]bool
	ch          chan Notification
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int64]*Subscription)}
}

// Subscribe registers interest in the given collections. With no collections
// given, the subscription receives every notification.
func (b *Broker) Subscribe(collections ...string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	ch := make(chan Notification, 16)
	sub := &Subscription{
		C:      ch,
		id:     b.nextID,
		broker: b,
		ch:     ch,
	}
	if len(collections) > 0 {
		sub.collections = make(map[string]bool, len(collections))
		for _, c := range collections {
			sub.collections[c] = true
		}
	}
	b.subs[sub.id] = sub
	return sub
}

// Publish notifies every live subscriber interested in the collection.
func (b *Broker) Publish(collection string) {
	n := Notification{Collection: collection, At: time.Now()}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if sub.collections != nil && !sub.collections[collection] {
			continue
		}
		select {
		case sub.ch <- n:
		default: // subscriber is not keeping up, drop
		}
	}
}

// Close unsubscribes and closes the notification channel. Safe to call once.
func (s *Subscription) Close() {
	s.broker.mu.Lock()
	defer s.broker.mu.Unlock()
	if _, ok := s.broker.subs[s.id]; !ok {
		return
	}
	delete(s.broker.subs, s.id)
	close(s.ch)
}
