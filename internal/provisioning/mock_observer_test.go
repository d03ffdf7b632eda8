package provisioning

import "fmt"

// mockObserver records events for assertions.
type mockObserver struct {
	events []Event
	lines  []string
}

func newMockObserver() *mockObserver {
	return &mockObserver{}
}

func (m *mockObserver) Printf(format string, v ...interface{}) {
	m.lines = append(m.lines, fmt.Sprintf(format, v...))
}

func (m *mockObserver) Event(event Event) {
	m.events = append(m.events, event)
}

func (m *mockObserver) eventTypes() []EventType {
	types := make([]EventType, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.Type)
	}
	return types
}
