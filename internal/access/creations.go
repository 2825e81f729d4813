package access

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/models"
)

// CreationView is a creation as one viewer is allowed to see it.
type CreationView struct {
	ID      string
	Name    string
	Type    models.CreationType
	Private bool
	Owner   string
	Events  []models.Event
}

type CreationSummary struct {
	ID    string
	Name  string
	Type  models.CreationType
	Owner string
}

// ConstructCreation stores events, a container holding them and the
// ownership record. Every event must match typ.
func (c *Coordinator) ConstructCreation(ctx context.Context, creatorID, name string, typ models.CreationType, events []models.Event) (string, error) {
	role, err := c.users.Role(creatorID)
	if err != nil {
		return "", err
	}
	if !role.CanCreate() {
		return "", common.ErrAdminCannotCreate
	}
	if _, err := models.ParseCreationType(string(typ)); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUnknownCreationType, err)
	}
	for _, e := range events {
		if e.Kind() != typ {
			return "", fmt.Errorf("event %q: %w", e.Name, common.ErrTypeMismatch)
		}
	}

	id := c.containers.CreateContainer(name, typ)
	for _, e := range events {
		if err := c.containers.AddEvent(id, c.events.Add(e)); err != nil {
			return "", fmt.Errorf("error adding event: %w", err)
		}
	}
	c.users.AddCreation(creatorID, id)

	c.logger.Info(ctx, "creation constructed", "creation_id", id, "owner", creatorID, "type", typ, "events", len(events))
	return id, nil
}

// AddEvent stores e and appends it to the creation.
func (c *Coordinator) AddEvent(ctx context.Context, actorID, creationID string, e models.Event) (string, error) {
	cont, err := c.authorizeMutation(ctx, actorID, creationID)
	if err != nil {
		return "", err
	}
	if e.Kind() != cont.Type {
		return "", common.ErrTypeMismatch
	}

	id := c.events.Add(e)
	if err := c.containers.AddEvent(creationID, id); err != nil {
		c.events.Remove(id)
		return "", fmt.Errorf("error adding event: %w", err)
	}
	return id, nil
}

// RemoveEvent drops an event from the creation and the event store. Events
// the creation does not hold are left untouched.
func (c *Coordinator) RemoveEvent(ctx context.Context, actorID, creationID, eventID string) error {
	cont, err := c.authorizeMutation(ctx, actorID, creationID)
	if err != nil {
		return err
	}
	if !cont.Contains(eventID) {
		return nil
	}

	c.containers.RemoveEvent(creationID, eventID)
	c.events.Remove(eventID)
	return nil
}

func (c *Coordinator) RenameCreation(ctx context.Context, actorID, creationID, name string) error {
	if _, err := c.authorizeMutation(ctx, actorID, creationID); err != nil {
		return err
	}
	return c.containers.Rename(creationID, name)
}

func (c *Coordinator) SetCreationPrivacy(ctx context.Context, actorID, creationID string, private bool) error {
	if _, err := c.authorizeMutation(ctx, actorID, creationID); err != nil {
		return err
	}
	if err := c.containers.SetPrivacy(creationID, private); err != nil {
		return err
	}
	c.logger.Info(ctx, "creation privacy changed", "creation_id", creationID, "private", private)
	return nil
}

func (c *Coordinator) SetEventPrivacy(ctx context.Context, actorID, creationID, eventID string, private bool) error {
	return c.updateEvent(ctx, actorID, creationID, eventID, func(e *models.Event) { e.Private = private })
}

func (c *Coordinator) EditEvent(ctx context.Context, actorID, creationID, eventID, name, note string) error {
	return c.updateEvent(ctx, actorID, creationID, eventID, func(e *models.Event) {
		e.Name = name
		e.Note = note
	})
}

func (c *Coordinator) updateEvent(ctx context.Context, actorID, creationID, eventID string, fn func(*models.Event)) error {
	cont, err := c.authorizeMutation(ctx, actorID, creationID)
	if err != nil {
		return err
	}
	if !cont.Contains(eventID) {
		return common.ErrorNotFound
	}
	return c.events.Update(eventID, fn)
}

// DeleteCreation removes the container, then its events, then the
// ownership record. The stores are not linked transactionally; calling it
// again after a partial run finishes the job, and deleting a creation that
// is already gone is a no-op. Messages linking to the creation keep the
// dangling id.
func (c *Coordinator) DeleteCreation(ctx context.Context, actorID, creationID string) error {
	owner, owned := c.users.OwnerOf(creationID)
	if !owned && !c.containers.Exists(creationID) {
		return nil
	}
	if !c.privileged(actorID, creationID) {
		c.logger.Warn(ctx, "delete denied", "actor", actorID, "creation_id", creationID)
		return common.ErrorUnauthorized
	}

	events := c.containers.DeleteContainer(creationID)
	for _, id := range events {
		c.events.Remove(id)
	}
	if owned {
		c.users.RemoveCreation(owner, creationID)
	}

	c.logger.Info(ctx, "creation deleted", "creation_id", creationID, "actor", actorID, "events", len(events))
	return nil
}

// ViewCreation returns the creation with the events viewerID may see.
func (c *Coordinator) ViewCreation(ctx context.Context, viewerID, creationID string) (CreationView, error) {
	cont, err := c.containers.Get(creationID)
	if err != nil {
		return CreationView{}, err
	}

	if !c.canViewCreation(viewerID, cont) {
		c.logger.Warn(ctx, "view denied", "viewer", viewerID, "creation_id", creationID)
		return CreationView{}, common.ErrorUnauthorized
	}

	owner, _ := c.users.OwnerOf(creationID)
	seeAll := c.privileged(viewerID, creationID)
	view := CreationView{
		ID:      cont.ID,
		Name:    cont.Name,
		Type:    cont.Type,
		Private: cont.Private,
		Owner:   c.nameFor(viewerID, owner),
	}
	for _, id := range cont.Events {
		e, err := c.events.Get(id)
		if err != nil {
			continue
		}
		if !e.Private || seeAll {
			view.Events = append(view.Events, e)
		}
	}
	return view, nil
}

// CreationSummary names a creation, its type and its owner as viewerID
// sees them.
func (c *Coordinator) CreationSummary(viewerID, creationID string) (CreationSummary, error) {
	cont, err := c.containers.Get(creationID)
	if err != nil {
		return CreationSummary{}, err
	}

	owner, _ := c.users.OwnerOf(creationID)
	return CreationSummary{
		ID:    cont.ID,
		Name:  cont.Name,
		Type:  cont.Type,
		Owner: c.nameFor(viewerID, owner),
	}, nil
}

// Browsable lists creations of other users that viewerID may open: all of
// them for Admins, public ones otherwise.
func (c *Coordinator) Browsable(viewerID string) []string {
	ids := c.users.OthersCreations(viewerID)
	if c.users.IsAdmin(viewerID) {
		return ids
	}

	res := make([]string, 0, len(ids))
	for _, id := range ids {
		cont, err := c.containers.Get(id)
		if err != nil || cont.Private {
			continue
		}
		res = append(res, id)
	}
	return res
}

func (c *Coordinator) OwnCreations(viewerID string) []string {
	return c.users.Creations(viewerID)
}
