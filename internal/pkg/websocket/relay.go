package websocket

import "github.com/yigit/unidesk/internal/store"

// EventFromChange converts a store change into a feed event
func EventFromChange(change store.Change) *Event {
	return &Event{
		Type:       EventChange,
		Collection: change.Collection,
		Op:         change.Op,
		ID:         change.ID,
		Count:      change.Count,
		Timestamp:  change.At,
	}
}

// ChangeListener returns a store listener forwarding every change to the hub
func (h *Hub) ChangeListener() store.Listener {
	return func(change store.Change) {
		h.Broadcast(EventFromChange(change))
	}
}
