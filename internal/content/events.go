package content

import (
	"sort"
	"sync"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/models"
	"github.com/google/uuid"
)

// EventSnapshot is the persisted form of an EventStore.
type EventSnapshot struct {
	Events []models.Event `json:"events"`
}

type EventStore struct {
	mu     sync.RWMutex
	events map[string]*models.Event
}

func NewEventStore() *EventStore {
	return &EventStore{events: make(map[string]*models.Event)}
}

// Add stores a copy of e under a fresh id and returns that id.
func (s *EventStore) Add(e models.Event) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := e.Clone()
	cp.ID = uuid.NewString()
	s.events[cp.ID] = &cp
	return cp.ID
}

func (s *EventStore) Get(eventID string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[eventID]
	if !ok {
		return models.Event{}, common.ErrorNotFound
	}
	return e.Clone(), nil
}

// Remove is a no-op for unknown ids, so cascades can be retried.
func (s *EventStore) Remove(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, eventID)
}

// Update applies fn to the stored event. The id is kept whatever fn does.
func (s *EventStore) Update(eventID string, fn func(*models.Event)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[eventID]
	if !ok {
		return common.ErrorNotFound
	}
	fn(e)
	e.ID = eventID
	return nil
}

func (s *EventStore) Snapshot() EventSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := EventSnapshot{Events: make([]models.Event, 0, len(s.events))}
	for _, e := range s.events {
		res.Events = append(res.Events, e.Clone())
	}
	sort.Slice(res.Events, func(i, j int) bool { return res.Events[i].ID < res.Events[j].ID })
	return res
}

func (s *EventStore) Restore(snap EventSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = make(map[string]*models.Event, len(snap.Events))
	for i := range snap.Events {
		e := snap.Events[i].Clone()
		s.events[e.ID] = &e
	}
}
