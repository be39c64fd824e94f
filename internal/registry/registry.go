package registry

import (
	"sync"

	"github.com/dropfour/connectfour-backend/internal/apperror"
)

// Channel is the outbound half of a participant connection. Sends are
// fire-and-forget: delivery is never awaited or acknowledged.
type Channel interface {
	Send(payload []byte) error
}

// Registry binds participant IDs to their live outbound channels. It is the
// only source of truth for the channel-to-identity mapping, which is needed
// on closure because close notifications carry only the channel.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]Channel
}

func New() *Registry {
	return &Registry{
		channels: make(map[string]Channel),
	}
}

// Register binds an ID to its channel. IDs are generated, never
// client-supplied, so a collision is an invariant violation.
func (that *Registry) Register(playerID string, channel Channel) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.channels[playerID]; ok {
		return apperror.ErrAlreadyRegistered
	}

	that.channels[playerID] = channel

	return nil
}

// Resolve looks up the channel for a participant. A miss is expected only
// when disconnect cleanup races an in-flight broadcast.
func (that *Registry) Resolve(playerID string) (Channel, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	channel, ok := that.channels[playerID]

	return channel, ok
}

// Unregister removes the binding. Idempotent.
func (that *Registry) Unregister(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.channels, playerID)
}

// FindByChannel recovers the participant ID bound to a channel.
func (that *Registry) FindByChannel(channel Channel) (string, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for playerID, bound := range that.channels {
		if bound == channel {
			return playerID, true
		}
	}

	return "", false
}
