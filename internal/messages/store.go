// Package messages stores messages and their reply threads. Messages only
// grow: follow-ups and attachments are appended, nothing is deleted.
package messages

import (
	"slices"
	"sort"
	"sync"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/models"
	"github.com/google/uuid"
)

const (
	previewTitleLen   = 20
	previewContentLen = 50
)

// Preview is the shortened form of a message shown in inbox listings.
type Preview struct {
	MessageID string
	SenderID  string
	Title     string
	Content   string
}

// Snapshot is the persisted form of a Store.
type Snapshot struct {
	Messages []models.Message `json:"messages"`
}

type Store struct {
	mu       sync.RWMutex
	messages map[string]*models.Message
}

func NewStore() *Store {
	return &Store{messages: make(map[string]*models.Message)}
}

// Send stores a new thread root and returns its id.
func (s *Store) Send(senderID string, receiverIDs []string, title, content string, attachments []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &models.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		ReceiverIDs: slices.Clone(receiverIDs),
		Title:       title,
		Content:     content,
	}
	for _, a := range attachments {
		if !slices.Contains(m.Attachments, a) {
			m.Attachments = append(m.Attachments, a)
		}
	}
	s.messages[m.ID] = m
	return m.ID
}

// Reply links replyID into the thread of originalID. Replies to replies
// join the thread root, so every thread is one level deep.
func (s *Store) Reply(originalID, replyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orig, ok := s.messages[originalID]
	if !ok {
		return common.ErrorNotFound
	}
	reply, ok := s.messages[replyID]
	if !ok {
		return common.ErrorNotFound
	}

	root := orig
	if orig.RootID != "" {
		if r, ok := s.messages[orig.RootID]; ok {
			root = r
		}
	}
	if root.ID == replyID {
		return nil
	}

	if !slices.Contains(root.FollowUps, replyID) {
		root.FollowUps = append(root.FollowUps, replyID)
	}
	reply.RootID = root.ID
	return nil
}

// RootOf returns the id of the thread root messageID belongs to.
func (s *Store) RootOf(messageID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.messages[messageID]
	if !ok {
		return "", common.ErrorNotFound
	}
	if m.RootID != "" {
		return m.RootID, nil
	}
	return m.ID, nil
}

// Thread returns the message followed by its follow-ups, oldest first.
// Nested follow-ups are flattened depth first; each message appears once.
func (s *Store) Thread(messageID string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.messages[messageID]; !ok {
		return nil, common.ErrorNotFound
	}

	var res []models.Message
	seen := make(map[string]bool)
	var walk func(id string)
	walk = func(id string) {
		m, ok := s.messages[id]
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		res = append(res, m.Clone())
		for _, f := range m.FollowUps {
			walk(f)
		}
	}
	walk(messageID)
	return res, nil
}

func (s *Store) Preview(messageID string) (Preview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.messages[messageID]
	if !ok {
		return Preview{}, common.ErrorNotFound
	}
	return Preview{
		MessageID: m.ID,
		SenderID:  m.SenderID,
		Title:     truncate(m.Title, previewTitleLen),
		Content:   truncate(m.Content, previewContentLen),
	}, nil
}

func (s *Store) Get(messageID string) (models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.messages[messageID]
	if !ok {
		return models.Message{}, common.ErrorNotFound
	}
	return m.Clone(), nil
}

// Attach links a creation to a message once.
func (s *Store) Attach(messageID, creationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[messageID]
	if !ok {
		return common.ErrorNotFound
	}
	if !slices.Contains(m.Attachments, creationID) {
		m.Attachments = append(m.Attachments, creationID)
	}
	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := Snapshot{Messages: make([]models.Message, 0, len(s.messages))}
	for _, m := range s.messages {
		res.Messages = append(res.Messages, m.Clone())
	}
	sort.Slice(res.Messages, func(i, j int) bool { return res.Messages[i].ID < res.Messages[j].ID })
	return res
}

func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = make(map[string]*models.Message, len(snap.Messages))
	for i := range snap.Messages {
		m := snap.Messages[i].Clone()
		s.messages[m.ID] = &m
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
