package access

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/models"
)

type MessagePreview struct {
	ID      string
	Sender  string
	Title   string
	Content string
}

// MessageView is a full message with user ids replaced by display names.
type MessageView struct {
	ID          string
	Sender      string
	Receivers   []string
	Title       string
	Content     string
	Attachments []AttachmentLink
	RootID      string
}

// AttachmentLink describes a creation id carried by a message. Valid is
// false once the creation has been deleted.
type AttachmentLink struct {
	CreationID string
	Valid      bool
	Viewable   bool
	Summary    CreationSummary
}

// CheckReceiverCount allows exactly one receiver for non-Admin senders and
// any positive number for Admins. An empty list is rejected for everyone
// with ErrNoReceivers, before the per-role limit is checked.
func (c *Coordinator) CheckReceiverCount(senderID string, receiverNames []string) error {
	if len(receiverNames) == 0 {
		return common.ErrNoReceivers
	}
	if len(receiverNames) != 1 && !c.users.IsAdmin(senderID) {
		return common.ErrMultiReceiverNotAllowed
	}
	return nil
}

// SendMessage stores a new message and delivers it to every receiver's
// inbox. Attached creations must be visible to the sender.
func (c *Coordinator) SendMessage(ctx context.Context, senderID string, receiverNames []string, title, content string, attachments []string) (string, error) {
	if !c.users.Exists(senderID) {
		return "", common.ErrorNotFound
	}
	if err := c.CheckReceiverCount(senderID, receiverNames); err != nil {
		return "", err
	}

	receivers := make([]string, 0, len(receiverNames))
	for _, name := range receiverNames {
		id, err := c.users.IDByUsername(name)
		if err != nil {
			return "", fmt.Errorf("receiver %q: %w", name, err)
		}
		receivers = append(receivers, id)
	}

	for _, cid := range attachments {
		if err := c.checkAttachable(ctx, senderID, cid); err != nil {
			return "", err
		}
	}

	id := c.messages.Send(senderID, receivers, title, content, attachments)
	for _, r := range receivers {
		c.users.AddToInbox(r, id)
	}

	c.logger.Info(ctx, "message sent", "message_id", id, "sender", senderID, "receivers", len(receivers))
	return id, nil
}

// ReplyMessage sends a new message and links it into the thread of
// originalID, which the sender must be able to see.
func (c *Coordinator) ReplyMessage(ctx context.Context, senderID, originalID string, receiverNames []string, title, content string, attachments []string) (string, error) {
	orig, err := c.messages.Get(originalID)
	if err != nil {
		return "", err
	}
	if !c.canViewMessage(senderID, orig) {
		c.logger.Warn(ctx, "reply denied", "sender", senderID, "message_id", originalID)
		return "", common.ErrorUnauthorized
	}

	id, err := c.SendMessage(ctx, senderID, receiverNames, title, content, attachments)
	if err != nil {
		return "", err
	}
	if err := c.messages.Reply(originalID, id); err != nil {
		return "", fmt.Errorf("error linking reply: %w", err)
	}
	return id, nil
}

// Inbox lists the message ids delivered to viewerID, oldest first.
func (c *Coordinator) Inbox(viewerID string) []string {
	return c.users.Inbox(viewerID)
}

// DeleteFromInbox hides a message for viewerID only.
func (c *Coordinator) DeleteFromInbox(viewerID, messageID string) {
	c.users.RemoveFromInbox(viewerID, messageID)
}

func (c *Coordinator) MessagePreview(ctx context.Context, viewerID, messageID string) (MessagePreview, error) {
	if _, err := c.visibleMessage(ctx, viewerID, messageID); err != nil {
		return MessagePreview{}, err
	}

	p, err := c.messages.Preview(messageID)
	if err != nil {
		return MessagePreview{}, err
	}
	return MessagePreview{
		ID:      p.MessageID,
		Sender:  c.nameFor(viewerID, p.SenderID),
		Title:   p.Title,
		Content: p.Content,
	}, nil
}

func (c *Coordinator) MessageDetail(ctx context.Context, viewerID, messageID string) (MessageView, error) {
	m, err := c.visibleMessage(ctx, viewerID, messageID)
	if err != nil {
		return MessageView{}, err
	}
	return c.messageView(viewerID, m), nil
}

// Thread returns the whole thread messageID belongs to, root first,
// without the entries viewerID may not see.
func (c *Coordinator) Thread(ctx context.Context, viewerID, messageID string) ([]MessageView, error) {
	if _, err := c.visibleMessage(ctx, viewerID, messageID); err != nil {
		return nil, err
	}

	root, err := c.messages.RootOf(messageID)
	if err != nil {
		return nil, err
	}
	thread, err := c.messages.Thread(root)
	if err != nil {
		return nil, err
	}

	res := make([]MessageView, 0, len(thread))
	for _, m := range thread {
		if c.canViewMessage(viewerID, m) {
			res = append(res, c.messageView(viewerID, m))
		}
	}
	return res, nil
}

// AttachCreation links a creation to a message the actor sent.
func (c *Coordinator) AttachCreation(ctx context.Context, actorID, messageID, creationID string) error {
	m, err := c.messages.Get(messageID)
	if err != nil {
		return err
	}
	if m.SenderID != actorID {
		c.logger.Warn(ctx, "attach denied", "actor", actorID, "message_id", messageID)
		return common.ErrorUnauthorized
	}
	if err := c.checkAttachable(ctx, actorID, creationID); err != nil {
		return err
	}
	return c.messages.Attach(messageID, creationID)
}

// ResolveAttachment never fails: a deleted creation yields Valid=false.
func (c *Coordinator) ResolveAttachment(viewerID, creationID string) AttachmentLink {
	link := AttachmentLink{CreationID: creationID}

	cont, err := c.containers.Get(creationID)
	if err != nil {
		return link
	}
	summary, err := c.CreationSummary(viewerID, creationID)
	if err != nil {
		return link
	}

	link.Valid = true
	link.Viewable = c.canViewCreation(viewerID, cont)
	link.Summary = summary
	return link
}

func (c *Coordinator) checkAttachable(ctx context.Context, actorID, creationID string) error {
	cont, err := c.containers.Get(creationID)
	if err != nil {
		return fmt.Errorf("attachment %s: %w", creationID, err)
	}
	if !c.canViewCreation(actorID, cont) {
		c.logger.Warn(ctx, "attachment denied", "actor", actorID, "creation_id", creationID)
		return common.ErrorUnauthorized
	}
	return nil
}

func (c *Coordinator) visibleMessage(ctx context.Context, viewerID, messageID string) (models.Message, error) {
	m, err := c.messages.Get(messageID)
	if err != nil {
		return models.Message{}, err
	}
	if !c.canViewMessage(viewerID, m) {
		c.logger.Warn(ctx, "message access denied", "viewer", viewerID, "message_id", messageID)
		return models.Message{}, common.ErrorUnauthorized
	}
	return m, nil
}

func (c *Coordinator) messageView(viewerID string, m models.Message) MessageView {
	v := MessageView{
		ID:      m.ID,
		Sender:  c.nameFor(viewerID, m.SenderID),
		Title:   m.Title,
		Content: m.Content,
		RootID:  m.RootID,
	}
	for _, r := range m.ReceiverIDs {
		v.Receivers = append(v.Receivers, c.nameFor(viewerID, r))
	}
	for _, a := range m.Attachments {
		v.Attachments = append(v.Attachments, c.ResolveAttachment(viewerID, a))
	}
	return v
}
