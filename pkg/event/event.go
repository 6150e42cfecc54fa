// pkg/event/event.go
package event

import (
	"reflect"
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	SimulationStarted Type = "simulation_started"
	SimulationEnded   Type = "simulation_ended"
	BodyAdded         Type = "body_added"
	ShipSpawned       Type = "ship_spawned"
	FocusChanged      Type = "focus_changed"
	AssetLoaded       Type = "asset_loaded"
	AssetLoadFailed   Type = "asset_load_failed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Unsubscribe removes a previously subscribed handler. The handler is
// matched by function identity, so pass the same value given to
// Subscribe.
func (b *Bus) Unsubscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers, ok := b.handlers[eventType]
	if !ok {
		return
	}

	target := reflect.ValueOf(handler).Pointer()
	for i, h := range handlers {
		if reflect.ValueOf(h).Pointer() == target {
			b.handlers[eventType] = append(handlers[:i], handlers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.GetType()]))
	copy(handlers, b.handlers[event.GetType()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// FocusEvent reports a camera focus change
type FocusEvent struct {
	BaseEvent
	Target string // preset/body name, "Ship", or "Free"
	BodyID uint64 // zero unless a body is focused
}

// NewFocusEvent creates a focus change event
func NewFocusEvent(source interface{}, target string, bodyID uint64) *FocusEvent {
	return &FocusEvent{
		BaseEvent: BaseEvent{
			EventType: FocusChanged,
			Source:    source,
		},
		Target: target,
		BodyID: bodyID,
	}
}

// BodyEvent reports a body joining the scene
type BodyEvent struct {
	BaseEvent
	BodyID uint64
	Name   string
}

// NewBodyEvent creates a body lifecycle event
func NewBodyEvent(eventType Type, source interface{}, bodyID uint64, name string) *BodyEvent {
	return &BodyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyID: bodyID,
		Name:   name,
	}
}

// AssetEvent reports the outcome of an asset load
type AssetEvent struct {
	BaseEvent
	Name string
	Path string
	Err  error // nil on success
}

// NewAssetEvent creates an asset load event
func NewAssetEvent(eventType Type, source interface{}, name, path string, err error) *AssetEvent {
	return &AssetEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Name: name,
		Path: path,
		Err:  err,
	}
}
