// Package content stores creations and their events. The two stores are
// independent: a ContainerStore only knows event ids, and keeping both in
// step is the caller's job.
package content

import (
	"slices"
	"sort"
	"sync"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/models"
	"github.com/google/uuid"
)

// ContainerSnapshot is the persisted form of a ContainerStore.
type ContainerSnapshot struct {
	Containers []models.Container `json:"containers"`
}

type ContainerStore struct {
	mu         sync.RWMutex
	containers map[string]*models.Container
}

func NewContainerStore() *ContainerStore {
	return &ContainerStore{containers: make(map[string]*models.Container)}
}

// CreateContainer adds an empty public container.
func (s *ContainerStore) CreateContainer(name string, typ models.CreationType) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &models.Container{ID: uuid.NewString(), Name: name, Type: typ}
	s.containers[c.ID] = c
	return c.ID
}

// AddEvent appends eventID unless the container already holds it.
func (s *ContainerStore) AddEvent(containerID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.containers[containerID]
	if !ok {
		return common.ErrorNotFound
	}
	if !c.Contains(eventID) {
		c.Events = append(c.Events, eventID)
	}
	return nil
}

func (s *ContainerStore) RemoveEvent(containerID, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.containers[containerID]
	if !ok {
		return
	}
	if i := slices.Index(c.Events, eventID); i >= 0 {
		c.Events = slices.Delete(c.Events, i, i+1)
	}
}

func (s *ContainerStore) SetPrivacy(containerID string, private bool) error {
	return s.update(containerID, func(c *models.Container) { c.Private = private })
}

func (s *ContainerStore) Rename(containerID, name string) error {
	return s.update(containerID, func(c *models.Container) { c.Name = name })
}

// DeleteContainer removes the container and returns the event ids it held.
// Deleting a missing container returns nil.
func (s *ContainerStore) DeleteContainer(containerID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.containers[containerID]
	if !ok {
		return nil
	}
	delete(s.containers, containerID)
	return c.Events
}

func (s *ContainerStore) Get(containerID string) (models.Container, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.containers[containerID]
	if !ok {
		return models.Container{}, common.ErrorNotFound
	}
	return c.Clone(), nil
}

func (s *ContainerStore) Exists(containerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.containers[containerID]
	return ok
}

// ContainerOf returns the id of the container holding eventID.
func (s *ContainerStore) ContainerOf(eventID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, c := range s.containers {
		if c.Contains(eventID) {
			return id, true
		}
	}
	return "", false
}

func (s *ContainerStore) Snapshot() ContainerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := ContainerSnapshot{Containers: make([]models.Container, 0, len(s.containers))}
	for _, c := range s.containers {
		res.Containers = append(res.Containers, c.Clone())
	}
	sort.Slice(res.Containers, func(i, j int) bool { return res.Containers[i].ID < res.Containers[j].ID })
	return res
}

func (s *ContainerStore) Restore(snap ContainerSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.containers = make(map[string]*models.Container, len(snap.Containers))
	for i := range snap.Containers {
		c := snap.Containers[i].Clone()
		s.containers[c.ID] = &c
	}
}

func (s *ContainerStore) update(containerID string, fn func(*models.Container)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.containers[containerID]
	if !ok {
		return common.ErrorNotFound
	}
	fn(c)
	return nil
}
