// Package access composes the identity, content and message stores and
// decides who may see or change a creation, an event or a message.
// It holds no state of its own.
//
// The rules in short: the owner and Admin users may mutate a creation;
// a creation is visible to its owner, to Admins and to everyone when
// public; inside a visible creation private events are shown only to the
// owner and Admins; messages are visible to their sender, their receivers
// and Admins.
package access

import (
	"context"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/content"
	"github.com/dmitrijs2005/creationhub/internal/identity"
	"github.com/dmitrijs2005/creationhub/internal/logging"
	"github.com/dmitrijs2005/creationhub/internal/messages"
	"github.com/dmitrijs2005/creationhub/internal/models"
)

const unknownUser = "unknown user"

type Coordinator struct {
	users      *identity.Store
	containers *content.ContainerStore
	events     *content.EventStore
	messages   *messages.Store
	logger     logging.Logger
}

func NewCoordinator(users *identity.Store, containers *content.ContainerStore, events *content.EventStore,
	msgs *messages.Store, logger logging.Logger) *Coordinator {
	return &Coordinator{
		users:      users,
		containers: containers,
		events:     events,
		messages:   msgs,
		logger:     logger.With("module", "access"),
	}
}

// authorizeMutation returns the container when actorID owns it or is an
// Admin.
func (c *Coordinator) authorizeMutation(ctx context.Context, actorID, creationID string) (models.Container, error) {
	cont, err := c.containers.Get(creationID)
	if err != nil {
		return models.Container{}, err
	}

	if !c.privileged(actorID, creationID) {
		c.logger.Warn(ctx, "mutation denied", "actor", actorID, "creation_id", creationID)
		return models.Container{}, common.ErrorUnauthorized
	}
	return cont, nil
}

// privileged reports whether userID owns the creation or is an Admin. A
// creation without an ownership record has no author, so only Admins pass.
func (c *Coordinator) privileged(userID, creationID string) bool {
	owner, owned := c.users.OwnerOf(creationID)
	return (owned && userID == owner) || c.users.IsAdmin(userID)
}

func (c *Coordinator) canViewCreation(viewerID string, cont models.Container) bool {
	return !cont.Private || c.privileged(viewerID, cont.ID)
}

func (c *Coordinator) canViewMessage(viewerID string, m models.Message) bool {
	return m.Involves(viewerID) || c.users.IsAdmin(viewerID)
}

// nameFor is the display name viewerID sees for userID.
func (c *Coordinator) nameFor(viewerID, userID string) string {
	name, err := c.users.DisplayName(viewerID, userID)
	if err != nil {
		return unknownUser
	}
	return name
}
