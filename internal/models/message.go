package models

import "slices"

// Message is immutable apart from FollowUps and Attachments growing.
// RootID is empty for thread roots and names the root for replies.
type Message struct {
	ID          string   `json:"id"`
	SenderID    string   `json:"sender_id"`
	ReceiverIDs []string `json:"receiver_ids"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty"`
	FollowUps   []string `json:"follow_ups,omitempty"`
	RootID      string   `json:"root_id,omitempty"`
}

// Involves reports whether userID sent or received the message.
func (m *Message) Involves(userID string) bool {
	return m.SenderID == userID || slices.Contains(m.ReceiverIDs, userID)
}

func (m *Message) Clone() Message {
	c := *m
	c.ReceiverIDs = slices.Clone(m.ReceiverIDs)
	c.Attachments = slices.Clone(m.Attachments)
	c.FollowUps = slices.Clone(m.FollowUps)
	return c
}
