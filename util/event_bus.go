// util/event_bus.go

package util

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/listpane/logging"
)

const (
	// EventPropertyChanged is published when a dropdown's selected key changes.
	EventPropertyChanged = "property.changed"
	// EventOptionsLoaded is published after a dropdown (re)loads its options.
	EventOptionsLoaded = "options.loaded"
)

// Event represents an event in the system
type Event struct {
	Type    string
	Payload interface{}
}

// PropertyChange is the payload of EventPropertyChanged.
type PropertyChange struct {
	ComponentKey   string
	TargetProperty string
	OldValue       string
	NewValue       string
}

// OptionsLoaded is the payload of EventOptionsLoaded.
type OptionsLoaded struct {
	ComponentKey string
	Count        int
	Err          error
}

// EventHandler is a function that handles an event
type EventHandler func(context.Context, Event) error

// Subscription identifies a handler registered with Subscribe.
type Subscription struct {
	eventType string
	id        uint64
}

type subscriber struct {
	id      uint64
	handler EventHandler
}

// EventBus manages event subscriptions and publications
type EventBus struct {
	subscribers map[string][]subscriber
	nextID      uint64
	mu          sync.RWMutex
	errorChan   chan error
	wg          sync.WaitGroup
}

// NewEventBus creates a new EventBus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]subscriber),
		errorChan:   make(chan error, 100),
	}
}

// Subscribe adds a new subscriber for a specific event type
func (eb *EventBus) Subscribe(eventType string, handler EventHandler) Subscription {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscriber{id: eb.nextID, handler: handler})
	return Subscription{eventType: eventType, id: eb.nextID}
}

// Unsubscribe removes a handler registered with Subscribe
func (eb *EventBus) Unsubscribe(sub Subscription) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[sub.eventType]
	for i, s := range subs {
		if s.id == sub.id {
			eb.subscribers[sub.eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers. Handlers run in their own goroutines.
func (eb *EventBus) Publish(ctx context.Context, eventType string, payload interface{}) {
	eb.mu.RLock()
	subs := append([]subscriber(nil), eb.subscribers[eventType]...)
	eb.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	event := Event{
		Type:    eventType,
		Payload: payload,
	}

	for _, s := range subs {
		eb.wg.Add(1)
		go func(h EventHandler) {
			defer eb.wg.Done()
			if err := h(ctx, event); err != nil {
				select {
				case eb.errorChan <- fmt.Errorf("event handler error: %w", err):
				default:
					logger.Error("Error channel full, logging event handler error",
						zap.Error(err),
						zap.String("eventType", eventType))
				}
			}
		}(s.handler)
	}
}

// Start begins processing handler errors until ctx is done
func (eb *EventBus) Start(ctx context.Context) {
	go eb.processErrors(ctx)
}

// Wait blocks until every handler started by Publish has returned
func (eb *EventBus) Wait() {
	eb.wg.Wait()
}

func (eb *EventBus) processErrors(ctx context.Context) {
	for {
		select {
		case err := <-eb.errorChan:
			logger.Error("Event handler error", zap.Error(err))
		case <-ctx.Done():
			return
		}
	}
}
