package network

import (
	"arpg-server/pkg/api"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_SendAndBroadcast(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	c := b.Register("c")
	require.Equal(t, 2, b.SubscriberCount())

	assert.True(t, b.SendTo("a", api.ErrorMessage("only a")))
	assert.False(t, b.SendTo("missing", api.ErrorMessage("nobody")))

	assert.Zero(t, b.Broadcast(api.ServerMessage{Type: api.MsgLevel}))

	assert.Equal(t, "only a", (<-a).Error)
	assert.Equal(t, api.MsgLevel, (<-a).Type)
	assert.Equal(t, api.MsgLevel, (<-c).Type)
	assert.Empty(t, c)
}

func TestBroadcaster_ReregisterClosesOldChannel(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("s")
	fresh := b.Register("s")

	_, ok := <-old
	assert.False(t, ok, "old channel should be closed")

	b.Unregister("s")
	_, ok = <-fresh
	assert.False(t, ok)
	assert.False(t, b.HasSubscriber("s"))

	// повторный Unregister безопасен
	b.Unregister("s")
}

func TestBroadcaster_FullBufferDrops(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow")
	for i := 0; i < subscriberBuffer; i++ {
		require.True(t, b.SendTo("slow", api.ServerMessage{Type: api.MsgPath}))
	}
	assert.False(t, b.SendTo("slow", api.ServerMessage{Type: api.MsgPath}))
	assert.Len(t, ch, subscriberBuffer)
}

func TestBroadcaster_BroadcastCountsDrops(t *testing.T) {
	b := NewBroadcaster()
	slow := b.Register("slow")
	fast := b.Register("fast")
	for b.SendTo("slow", api.ServerMessage{Type: api.MsgPath}) {
	}

	assert.Equal(t, 1, b.Broadcast(api.ServerMessage{Type: api.MsgLevel}))
	assert.Len(t, slow, subscriberBuffer)
	assert.Equal(t, api.MsgLevel, (<-fast).Type)
}
