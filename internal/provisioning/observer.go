package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer receives structured events while a run executes.
type Observer interface {
	// Printf logs an unstructured progress message.
	Printf(format string, v ...interface{})

	// Event emits a structured event.
	Event(event Event)
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Step      string
	Resource  string
	Message   string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventStepStarted indicates a step has started.
	EventStepStarted EventType = "step.started"
	// EventStepSkipped indicates a step's check found the resource satisfied.
	EventStepSkipped EventType = "step.skipped"
	// EventStepRemediated indicates a step created and verified its resource.
	EventStepRemediated EventType = "step.remediated"
	// EventStepFailed indicates a step failed.
	EventStepFailed EventType = "step.failed"
	// EventStepWarning indicates a non-fatal step failure.
	EventStepWarning EventType = "step.warning"

	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"

	// EventRunCompleted indicates the whole run finished.
	EventRunCompleted EventType = "run.completed"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	log.Print(formatEvent(event))
}

// formatEvent renders an event as a single log line.
func formatEvent(event Event) string {
	parts := []string{string(event.Type)}

	if event.Step != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Step))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	if event.Message != "" {
		parts = append(parts, event.Message)
	}
	if len(event.Fields) > 0 {
		fieldParts := make([]string, 0, len(event.Fields))
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, "("+strings.Join(fieldParts, ", ")+")")
	}

	return strings.Join(parts, " ")
}

// LogResourceExists logs that a resource was found already present.
func LogResourceExists(observer Observer, step, resourceType, name string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Step:     step,
		Resource: name,
		Message:  fmt.Sprintf("%s already exists", resourceType),
	})
}

// LogResourceCreating logs the start of a resource creation.
func LogResourceCreating(observer Observer, step, resourceType, name string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Step:     step,
		Resource: name,
		Message:  fmt.Sprintf("creating %s", resourceType),
	})
}

// LogResourceCreated logs a successful resource creation.
func LogResourceCreated(observer Observer, step, resourceType, name string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Step:     step,
		Resource: name,
		Message:  fmt.Sprintf("%s created", resourceType),
	})
}
