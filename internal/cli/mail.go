package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/creationhub/internal/access"
	"github.com/dmitrijs2005/creationhub/internal/input"
)

// draft is the user-entered part of a message.
type draft struct {
	receivers   []string
	title       string
	content     string
	attachments []string
}

func (a *App) readDraft(uid string) (draft, error) {
	var d draft

	raw, err := GetSimpleText(a.reader, "Enter receivers (comma-separated usernames)", a.out)
	if err != nil {
		return d, err
	}
	d.receivers = input.ParseReceivers(raw)
	if err := a.coord.CheckReceiverCount(uid, d.receivers); err != nil {
		return d, err
	}

	if d.title, err = GetSimpleText(a.reader, "Enter title", a.out); err != nil {
		return d, err
	}
	if d.content, err = GetMultiline(a.reader, "Enter message", a.out); err != nil {
		return d, err
	}

	raw, err = GetSimpleText(a.reader, "Attach creations (comma-separated ids, empty for none)", a.out)
	if err != nil {
		return d, err
	}
	d.attachments = splitList(raw)
	return d, nil
}

func (a *App) send(ctx context.Context, _ []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	d, err := a.readDraft(uid)
	if err != nil {
		return err
	}

	id, err := a.coord.SendMessage(ctx, uid, d.receivers, d.title, d.content, d.attachments)
	if err != nil {
		return err
	}
	a.say("Sent %s", id)
	return nil
}

func (a *App) reply(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	mid, err := a.arg(args, 0, "Enter message id to reply to")
	if err != nil {
		return err
	}
	if _, err := a.coord.MessagePreview(ctx, uid, mid); err != nil {
		return err
	}
	d, err := a.readDraft(uid)
	if err != nil {
		return err
	}

	id, err := a.coord.ReplyMessage(ctx, uid, mid, d.receivers, d.title, d.content, d.attachments)
	if err != nil {
		return err
	}
	a.say("Sent %s", id)
	return nil
}

func (a *App) inbox(ctx context.Context, _ []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}

	ids := a.coord.Inbox(uid)
	if len(ids) == 0 {
		a.say("Your inbox is empty.")
		return nil
	}
	for _, id := range ids {
		p, err := a.coord.MessagePreview(ctx, uid, id)
		if err != nil {
			continue
		}
		a.say("%s  from %s: %s | %s", p.ID, p.Sender, p.Title, p.Content)
	}
	return nil
}

func (a *App) read(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	mid, err := a.arg(args, 0, "Enter message id")
	if err != nil {
		return err
	}

	v, err := a.coord.MessageDetail(ctx, uid, mid)
	if err != nil {
		return err
	}
	a.printMessage(v, "")
	return nil
}

func (a *App) thread(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	mid, err := a.arg(args, 0, "Enter message id")
	if err != nil {
		return err
	}

	msgs, err := a.coord.Thread(ctx, uid, mid)
	if err != nil {
		return err
	}
	for i, v := range msgs {
		indent := ""
		if i > 0 {
			indent = "    "
		}
		a.printMessage(v, indent)
	}
	return nil
}

func (a *App) printMessage(v access.MessageView, indent string) {
	a.say("%s%s  %s", indent, v.ID, v.Title)
	a.say("%sFrom: %s", indent, v.Sender)
	a.say("%sTo: %s", indent, strings.Join(v.Receivers, ", "))
	for _, line := range strings.Split(v.Content, "\n") {
		a.say("%s  %s", indent, line)
	}
	for _, l := range v.Attachments {
		switch {
		case !l.Valid:
			a.say("%sAttachment %s: no longer exists", indent, l.CreationID)
		case !l.Viewable:
			a.say("%sAttachment %s: private", indent, l.CreationID)
		default:
			a.say("%sAttachment %s", indent, formatSummary(l.Summary))
		}
	}
}

func (a *App) removeMessage(_ context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	mid, err := a.arg(args, 0, "Enter message id to remove from your inbox")
	if err != nil {
		return err
	}

	a.coord.DeleteFromInbox(uid, mid)
	a.say("Removed from inbox.")
	return nil
}

func (a *App) attach(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	mid, err := a.arg(args, 0, "Enter message id")
	if err != nil {
		return err
	}
	cid, err := a.arg(args, 1, "Enter creation id")
	if err != nil {
		return err
	}

	if err := a.coord.AttachCreation(ctx, uid, mid, cid); err != nil {
		return err
	}
	a.say("Attached.")
	return nil
}
