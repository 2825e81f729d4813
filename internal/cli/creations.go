package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/creationhub/internal/access"
	"github.com/dmitrijs2005/creationhub/internal/input"
	"github.com/dmitrijs2005/creationhub/internal/models"
)

func (a *App) newCreation(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}

	name := strings.Join(args, " ")
	if name == "" {
		if name, err = GetSimpleText(a.reader, "Enter creation name", a.out); err != nil {
			return err
		}
	}

	raw, err := GetSimpleText(a.reader, "Creation type (Todo, Schedule, Tagged)", a.out)
	if err != nil {
		return err
	}
	kind, err := input.ParseKind(raw)
	if err != nil {
		return err
	}

	events, err := a.readEvents(kind)
	if err != nil {
		return err
	}

	raw, err = GetSimpleText(a.reader, "Private? (true/false)", a.out)
	if err != nil {
		return err
	}
	private, err := input.ParsePrivacy(raw)
	if err != nil {
		return err
	}

	id, err := a.coord.ConstructCreation(ctx, uid, name, kind, events)
	if err != nil {
		return err
	}
	if private {
		if err := a.coord.SetCreationPrivacy(ctx, uid, id, true); err != nil {
			return err
		}
	}
	a.say("Created %s", id)
	return nil
}

// readEvents collects events until an empty line. Lines that do not parse
// are reported and skipped.
func (a *App) readEvents(kind models.CreationType) ([]models.Event, error) {
	a.say("Enter events as name,note,privacy,%s (empty line to finish)", eventHint(kind))

	var events []models.Event
	for {
		line, err := readLine(a.reader)
		if err != nil || line == "" {
			return events, nil
		}
		e, err := input.ParseEvent(line, kind)
		if err != nil {
			a.say("Skipped: %s", err.Error())
			continue
		}
		events = append(events, e)
	}
}

func eventHint(kind models.CreationType) string {
	switch kind {
	case models.CreationTodo:
		return "urgency (1-10)"
	case models.CreationSchedule:
		return "date (" + input.DateLayout + ")"
	default:
		return "tag;tag;..."
	}
}

func (a *App) addEvent(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	cid, err := a.arg(args, 0, "Enter creation id")
	if err != nil {
		return err
	}

	view, err := a.coord.ViewCreation(ctx, uid, cid)
	if err != nil {
		return err
	}
	line, err := GetSimpleText(a.reader, "Enter event as name,note,privacy,"+eventHint(view.Type), a.out)
	if err != nil {
		return err
	}
	e, err := input.ParseEvent(line, view.Type)
	if err != nil {
		return err
	}

	id, err := a.coord.AddEvent(ctx, uid, cid, e)
	if err != nil {
		return err
	}
	a.say("Added event %s", id)
	return nil
}

func (a *App) removeEvent(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	cid, err := a.arg(args, 0, "Enter creation id")
	if err != nil {
		return err
	}
	eid, err := a.arg(args, 1, "Enter event id")
	if err != nil {
		return err
	}

	if err := a.coord.RemoveEvent(ctx, uid, cid, eid); err != nil {
		return err
	}
	a.say("Event removed.")
	return nil
}

func (a *App) editEvent(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	cid, err := a.arg(args, 0, "Enter creation id")
	if err != nil {
		return err
	}
	eid, err := a.arg(args, 1, "Enter event id")
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Enter new event name", a.out)
	if err != nil {
		return err
	}
	note, err := GetSimpleText(a.reader, "Enter new note", a.out)
	if err != nil {
		return err
	}

	if err := a.coord.EditEvent(ctx, uid, cid, eid, name, note); err != nil {
		return err
	}
	a.say("Event updated.")
	return nil
}

func (a *App) rename(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	cid, err := a.arg(args, 0, "Enter creation id")
	if err != nil {
		return err
	}

	var name string
	if len(args) > 1 {
		name = strings.Join(args[1:], " ")
	} else if name, err = GetSimpleText(a.reader, "Enter new name", a.out); err != nil {
		return err
	}

	if err := a.coord.RenameCreation(ctx, uid, cid, name); err != nil {
		return err
	}
	a.say("Renamed.")
	return nil
}

// privacy sets the creation's flag, or an event's when three arguments are
// given.
func (a *App) privacy(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	cid, err := a.arg(args, 0, "Enter creation id")
	if err != nil {
		return err
	}

	var eid, raw string
	switch len(args) {
	case 3:
		eid, raw = args[1], args[2]
	case 2:
		raw = args[1]
	default:
		if raw, err = GetSimpleText(a.reader, "Private? (true/false)", a.out); err != nil {
			return err
		}
	}
	private, err := input.ParsePrivacy(raw)
	if err != nil {
		return err
	}

	if eid != "" {
		err = a.coord.SetEventPrivacy(ctx, uid, cid, eid, private)
	} else {
		err = a.coord.SetCreationPrivacy(ctx, uid, cid, private)
	}
	if err != nil {
		return err
	}
	a.say("Privacy updated.")
	return nil
}

func (a *App) deleteCreation(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	cid, err := a.arg(args, 0, "Enter creation id to delete")
	if err != nil {
		return err
	}

	if err := a.coord.DeleteCreation(ctx, uid, cid); err != nil {
		return err
	}
	a.say("Deleted.")
	return nil
}

func (a *App) mine(_ context.Context, _ []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	a.listCreations(uid, a.coord.OwnCreations(uid))
	return nil
}

func (a *App) browse(_ context.Context, _ []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	a.listCreations(uid, a.coord.Browsable(uid))
	return nil
}

func (a *App) listCreations(uid string, ids []string) {
	if len(ids) == 0 {
		a.say("Nothing here yet.")
		return
	}
	for _, id := range ids {
		s, err := a.coord.CreationSummary(uid, id)
		if err != nil {
			continue
		}
		a.say("%s", formatSummary(s))
	}
}

func (a *App) view(ctx context.Context, args []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	cid, err := a.arg(args, 0, "Enter creation id")
	if err != nil {
		return err
	}

	v, err := a.coord.ViewCreation(ctx, uid, cid)
	if err != nil {
		return err
	}

	a.say("%s [%s] by %s%s", v.Name, v.Type, v.Owner, privateMark(v.Private))
	for _, e := range v.Events {
		a.say("  %s  %s%s", e.ID, e.String(), privateMark(e.Private))
	}
	return nil
}

func formatSummary(s access.CreationSummary) string {
	return fmt.Sprintf("%s  %s [%s] by %s", s.ID, s.Name, s.Type, s.Owner)
}

func privateMark(private bool) string {
	if private {
		return " (private)"
	}
	return ""
}
