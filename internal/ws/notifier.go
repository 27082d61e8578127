package ws

import (
	"encoding/json"
	"log"

	"github.com/chapa-pos/api/internal/pos"
)

// Notifier broadcasts order lifecycle events to connected kitchen displays.
// It satisfies the notifier interfaces of the checkout service and the
// order handlers.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) OrderCreated(o pos.Order) {
	n.emit("order.created", o)
}

func (n *Notifier) OrderUpdated(o pos.Order) {
	n.emit("order.updated", o)
}

func (n *Notifier) emit(eventType string, o pos.Order) {
	payload, err := json.Marshal(o)
	if err != nil {
		log.Printf("ERROR: failed to marshal %s event: %v", eventType, err)
		return
	}
	n.hub.Broadcast(Event{Type: eventType, Payload: payload})
}
