package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skolaplan/admin-service/internal/utils"
)

// Event types emitted by the admin service.
const (
	TypeTeacherCreated     = "teacher.created"
	TypeTeacherUpdated     = "teacher.updated"
	TypeTeacherDeactivated = "teacher.deactivated"
	TypeWorkPeriodCreated  = "work_period.created"
	TypeImportCompleted    = "teachers.import_completed"
)

const eventSource = "admin-service"

// Event is the envelope published to the event stream.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope for one payload.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events. Publishing is best-effort for the
// admin flows: a failed publish is logged, never surfaced to the admin.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// MockEventPublisher records events in memory, for tests and for running
// without a broker.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []*Event
	logger utils.Logger
}

func NewMockEventPublisher(logger utils.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (p *MockEventPublisher) Publish(_ context.Context, event *Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	if p.logger != nil {
		p.logger.Debug("event published (mock)", "event_type", event.Type, "event_id", event.ID)
	}
	return nil
}

func (p *MockEventPublisher) Close() error { return nil }

// GetPublishedEvents returns a snapshot of everything published so far.
func (p *MockEventPublisher) GetPublishedEvents() []*Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Event, len(p.events))
	copy(out, p.events)
	return out
}

// ClearEvents drops all recorded events.
func (p *MockEventPublisher) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
