package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()

	c1, err := hub.Register("chat.room1", "user1")
	require.NoError(t, err)
	c2, err := hub.Register("chat.room1", "user2")
	require.NoError(t, err)
	other, err := hub.Register("chat.room2", "user3")
	require.NoError(t, err)

	hub.Broadcast("chat.room1", []byte("hi"))

	require.Equal(t, []byte("hi"), <-c1)
	require.Equal(t, []byte("hi"), <-c2)
	require.Empty(t, other)
}

func TestHubDuplicateRegister(t *testing.T) {
	hub := NewHub()

	_, err := hub.Register("chat.room1", "user1")
	require.NoError(t, err)

	_, err = hub.Register("chat.room1", "user1")
	require.Error(t, err)
}

func TestHubDropsFullSubscriber(t *testing.T) {
	hub := NewHub()

	_, err := hub.Register("chat.room1", "slow")
	require.NoError(t, err)
	healthy, err := hub.Register("chat.room1", "healthy")
	require.NoError(t, err)

	// Overflow the slow subscriber's buffer. The broadcast must neither block
	// nor affect the healthy subscriber.
	for i := 0; i < 128; i++ {
		hub.Broadcast("chat.room1", []byte("msg"))
	}

	require.Equal(t, 1, hub.NumSubscribers("chat.room1"))
	require.Equal(t, []byte("msg"), <-healthy)
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()

	c, err := hub.Register("chat.room1", "user1")
	require.NoError(t, err)

	hub.Unregister("chat.room1", "user1")
	_, open := <-c
	require.False(t, open)
	require.Zero(t, hub.NumSubscribers("chat.room1"))

	// Broadcasting to a topic with no subscribers is a no-op.
	hub.Broadcast("chat.room1", []byte("hi"))
}
