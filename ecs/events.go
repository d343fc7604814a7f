package ecs

// EventType names an event kind.
type EventType string

const (
	// EventRegionsRebuilt carries the rebuilt *magnet.Source.
	EventRegionsRebuilt EventType = "regions_rebuilt"
	// EventRebuildFailed carries the rebuild error.
	EventRebuildFailed EventType = "rebuild_failed"
	// EventPolarityChanged carries the actor's new magnet.Polarity.
	EventPolarityChanged EventType = "polarity_changed"
	// EventMagnetToggled carries the actor's new enabled state.
	EventMagnetToggled EventType = "magnet_toggled"
)

// Event is an ECS event for the current step.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Items returns the queued events without consuming them.
func (q *EventQueue) Items() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
