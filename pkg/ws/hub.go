package ws

import (
	"errors"

	"github.com/puzpuzpuz/xsync"
)

// Hub fans messages out to the live subscribers of named topics. Delivery is
// at-most-once best-effort: a subscriber whose buffer is full is dropped from
// the topic rather than blocking the broadcast.
type Hub struct {
	topics *xsync.MapOf[string, *topic]

	// OnDrop, when set, is called after a subscriber is removed because its
	// buffer was full.
	OnDrop func(topicName, clientID string)
}

type topic struct {
	subscribers *xsync.MapOf[string, chan []byte]
}

func NewHub() *Hub {
	return &Hub{topics: xsync.NewMapOf[*topic]()}
}

// Register subscribes a client to the topic. All messages broadcast to the
// topic after this point are sent to the returned channel.
func (h *Hub) Register(topicName, clientID string) (<-chan []byte, error) {
	t, _ := h.topics.LoadOrStore(topicName, &topic{subscribers: xsync.NewMapOf[chan []byte]()})

	c := make(chan []byte, 64)
	if _, existed := t.subscribers.LoadOrStore(clientID, c); existed {
		close(c)
		return nil, errors.New("the client has already subscribed this topic")
	}

	return c, nil
}

// Unregister removes the client from the topic and closes its channel.
func (h *Hub) Unregister(topicName, clientID string) {
	t, ok := h.topics.Load(topicName)
	if !ok {
		return
	}

	if c, existed := t.subscribers.LoadAndDelete(clientID); existed {
		close(c)
	}
}

// Broadcast sends the message to every subscriber of the topic. A failed
// subscriber only loses its own subscription, the remaining deliveries and
// the caller are unaffected.
func (h *Hub) Broadcast(topicName string, msg []byte) {
	t, ok := h.topics.Load(topicName)
	if !ok {
		return
	}

	t.subscribers.Range(func(clientID string, c chan []byte) bool {
		select {
		case c <- msg:
		default:
			if stale, existed := t.subscribers.LoadAndDelete(clientID); existed {
				close(stale)
				if h.OnDrop != nil {
					h.OnDrop(topicName, clientID)
				}
			}
		}
		return true
	})
}

// NumSubscribers reports the current subscriber count of a topic.
func (h *Hub) NumSubscribers(topicName string) int {
	t, ok := h.topics.Load(topicName)
	if !ok {
		return 0
	}

	return t.subscribers.Size()
}
