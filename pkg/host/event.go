package host

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType names an event variant on the wire
type EventType string

const (
	EventTypeTick              EventType = "tick"
	EventTypeInteractionStart  EventType = "interaction.start"
	EventTypeDespawn           EventType = "npc.despawned"
	EventTypeMenuEntryAdded    EventType = "menu.entry_added"
	EventTypeMenuOptionClicked EventType = "menu.option_clicked"
)

// Event is one notification delivered by the game client.
// The concrete types below are the only implementations.
type Event interface {
	Type() EventType
}

// Tick is the periodic game tick
type Tick struct{}

// InteractionStart reports that Source began interacting with Target.
// Either side may be nil when the client has no actor for it.
type InteractionStart struct {
	Source *Actor `json:"source,omitempty"`
	Target *Actor `json:"target,omitempty"`
}

// Despawn reports that an NPC left the scene. At is when it happened;
// a zero At means "now" to the receiver.
type Despawn struct {
	NPC *Actor    `json:"npc,omitempty"`
	At  time.Time `json:"at,omitempty"`
}

// MenuEntryAdded is fired for each entry while a menu is being built
type MenuEntryAdded struct {
	Entry MenuEntry `json:"entry"`
}

// MenuOptionClicked is fired when the user picks a menu entry
type MenuOptionClicked struct {
	Option string     `json:"option"`
	Action MenuAction `json:"action"`
	Target string     `json:"target"`
}

func (Tick) Type() EventType              { return EventTypeTick }
func (InteractionStart) Type() EventType  { return EventTypeInteractionStart }
func (Despawn) Type() EventType           { return EventTypeDespawn }
func (MenuEntryAdded) Type() EventType    { return EventTypeMenuEntryAdded }
func (MenuOptionClicked) Type() EventType { return EventTypeMenuOptionClicked }

// Envelope is the JSON form of an Event: {"type": "...", "data": {...}}
type Envelope struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode wraps ev in an Envelope and marshals it
func Encode(ev Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", ev.Type(), err)
	}
	return json.Marshal(Envelope{Type: ev.Type(), Data: data})
}

// Decode parses a single JSON envelope into its concrete Event
func Decode(raw []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}

	var ev Event
	switch env.Type {
	case EventTypeTick:
		return Tick{}, nil
	case EventTypeInteractionStart:
		var e InteractionStart
		if err := unmarshalData(env, &e); err != nil {
			return nil, err
		}
		ev = e
	case EventTypeDespawn:
		var e Despawn
		if err := unmarshalData(env, &e); err != nil {
			return nil, err
		}
		ev = e
	case EventTypeMenuEntryAdded:
		var e MenuEntryAdded
		if err := unmarshalData(env, &e); err != nil {
			return nil, err
		}
		ev = e
	case EventTypeMenuOptionClicked:
		var e MenuOptionClicked
		if err := unmarshalData(env, &e); err != nil {
			return nil, err
		}
		ev = e
	default:
		return nil, fmt.Errorf("unknown event type %q", env.Type)
	}
	return ev, nil
}

func unmarshalData(env Envelope, target any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%s event has no data", env.Type)
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("failed to unmarshal %s event: %w", env.Type, err)
	}
	return nil
}
