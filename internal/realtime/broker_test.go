package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerDeliversToMatchingSubscribers(t *testing.T) {
	b := NewBroker()
	all := b.Subscribe()
	onlyPayments := b.Subscribe(CollectionPayments)
	defer all.Close()
	defer onlyPayments.Close()

	b.Publish(CollectionPlayers)
	b.Publish(CollectionPayments)

	n := <-all.C
	assert.Equal(t, CollectionPlayers, n.Collection)
	n = <-all.C
	assert.Equal(t, CollectionPayments, n.Collection)

	n = <-onlyPayments.C
	assert.Equal(t, CollectionPayments, n.Collection)
	assert.False(t, n.At.IsZero())

	select {
	case n := <-onlyPayments.C:
		t.Fatalf("unexpected notification for %s", n.Collection)
	default:
	}
}

func TestBrokerPublishNeverBlocks(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe(CollectionEvents)
	defer sub.Close()

	// Nobody is reading; overflow past the channel buffer must not block.
	for i := 0; i < 100; i++ {
		b.Publish(CollectionEvents)
	}

	delivered := 0
	for {
		select {
		case <-sub.C:
			delivered++
			continue
		default:
		}
		break
	}
	assert.Greater(t, delivered, 0)
	assert.LessOrEqual(t, delivered, 16)
}

func TestSubscriptionCloseStopsDelivery(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe()

	sub.Close()
	sub.Close() // second close is a no-op

	b.Publish(CollectionCoaches)

	_, open := <-sub.C
	require.False(t, open)
}
