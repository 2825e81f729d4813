// Package models defines the flat entity records shared by the stores:
// users, creations (event containers), events and messages.
package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// CreationType fixes which event payload a container accepts.
type CreationType string

const (
	CreationTodo     CreationType = "Todo"
	CreationSchedule CreationType = "Schedule"
	CreationTagged   CreationType = "Tagged"
)

// ParseCreationType accepts any casing of Todo, Schedule or Tagged.
func ParseCreationType(s string) (CreationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return CreationTodo, nil
	case "schedule":
		return CreationSchedule, nil
	case "tagged":
		return CreationTagged, nil
	}
	return "", fmt.Errorf("unknown creation type %q", s)
}

// Container is a creation: a named, typed, ordered set of event ids.
// Ownership is recorded on the owning User, not here.
type Container struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Type    CreationType `json:"type"`
	Private bool         `json:"private"`
	Events  []string     `json:"events,omitempty"`
}

func (c *Container) Contains(eventID string) bool {
	return slices.Contains(c.Events, eventID)
}

func (c *Container) Clone() Container {
	cp := *c
	cp.Events = slices.Clone(c.Events)
	return cp
}

// Payload is the type-specific part of an Event. Implementations are
// TodoPayload, SchedulePayload and TaggedPayload.
type Payload interface {
	Kind() CreationType
	fmt.Stringer
	clonePayload() Payload
}

type TodoPayload struct {
	Urgency int `json:"urgency"`
}

func (TodoPayload) Kind() CreationType      { return CreationTodo }
func (p TodoPayload) String() string        { return fmt.Sprintf("Urgency: %d", p.Urgency) }
func (p TodoPayload) clonePayload() Payload { return p }

type SchedulePayload struct {
	Date time.Time `json:"date"`
}

func (SchedulePayload) Kind() CreationType      { return CreationSchedule }
func (p SchedulePayload) String() string        { return "Scheduled: " + p.Date.Format("2006-01-02") }
func (p SchedulePayload) clonePayload() Payload { return p }

type TaggedPayload struct {
	Tags []string `json:"tags"`
}

func (TaggedPayload) Kind() CreationType { return CreationTagged }

func (p TaggedPayload) String() string {
	var b strings.Builder
	b.WriteString("Tags: ")
	for _, t := range p.Tags {
		b.WriteString("[" + t + "]")
	}
	return b.String()
}

func (p TaggedPayload) clonePayload() Payload {
	return TaggedPayload{Tags: slices.Clone(p.Tags)}
}

// Event is a single item inside exactly one container. Its privacy flag is
// independent of the container's.
type Event struct {
	ID      string
	Name    string
	Note    string
	Private bool
	Payload Payload
}

// Kind returns the creation type the event fits, or "" without a payload.
func (e *Event) Kind() CreationType {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.Kind()
}

func (e *Event) Clone() Event {
	cp := *e
	if e.Payload != nil {
		cp.Payload = e.Payload.clonePayload()
	}
	return cp
}

func (e Event) String() string {
	s := fmt.Sprintf("%s - %q", e.Name, e.Note)
	if e.Payload != nil {
		s += " | " + e.Payload.String()
	}
	return s
}

type eventJSON struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Note     string           `json:"note"`
	Private  bool             `json:"private"`
	Kind     CreationType     `json:"kind"`
	Todo     *TodoPayload     `json:"todo,omitempty"`
	Schedule *SchedulePayload `json:"schedule,omitempty"`
	Tagged   *TaggedPayload   `json:"tagged,omitempty"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{ID: e.ID, Name: e.Name, Note: e.Note, Private: e.Private, Kind: e.Kind()}
	switch p := e.Payload.(type) {
	case TodoPayload:
		out.Todo = &p
	case SchedulePayload:
		out.Schedule = &p
	case TaggedPayload:
		out.Tagged = &p
	}
	return json.Marshal(out)
}

func (e *Event) UnmarshalJSON(b []byte) error {
	var in eventJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*e = Event{ID: in.ID, Name: in.Name, Note: in.Note, Private: in.Private}

	switch in.Kind {
	case CreationTodo:
		if in.Todo == nil {
			return fmt.Errorf("event %s: missing todo payload", in.ID)
		}
		e.Payload = *in.Todo
	case CreationSchedule:
		if in.Schedule == nil {
			return fmt.Errorf("event %s: missing schedule payload", in.ID)
		}
		e.Payload = *in.Schedule
	case CreationTagged:
		if in.Tagged == nil {
			return fmt.Errorf("event %s: missing tagged payload", in.ID)
		}
		e.Payload = *in.Tagged
	case "":
	default:
		return fmt.Errorf("event %s: unknown kind %q", in.ID, in.Kind)
	}
	return nil
}
