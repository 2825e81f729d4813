package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/content"
	"github.com/dmitrijs2005/creationhub/internal/identity"
	"github.com/dmitrijs2005/creationhub/internal/logging"
	"github.com/dmitrijs2005/creationhub/internal/messages"
)

// Stores bundles the four in-memory stores.
type Stores struct {
	Users      *identity.Store
	Containers *content.ContainerStore
	Events     *content.EventStore
	Messages   *messages.Store
}

// NewStores returns empty stores.
func NewStores(opts ...identity.Option) *Stores {
	return &Stores{
		Users:      identity.NewStore(opts...),
		Containers: content.NewContainerStore(),
		Events:     content.NewEventStore(),
		Messages:   messages.NewStore(),
	}
}

type Gateway struct {
	backend Backend
	logger  logging.Logger
}

func NewGateway(b Backend, logger logging.Logger) *Gateway {
	return &Gateway{backend: b, logger: logger.With("module", "snapshot")}
}

// LoadAll rebuilds every store. A kind with no saved blob yields an empty
// store.
func (g *Gateway) LoadAll(ctx context.Context, opts ...identity.Option) (*Stores, error) {
	s := NewStores(opts...)

	var (
		users      identity.Snapshot
		containers content.ContainerSnapshot
		events     content.EventSnapshot
		msgs       messages.Snapshot
	)

	targets := map[Kind]any{
		KindIdentity:   &users,
		KindContainers: &containers,
		KindEvents:     &events,
		KindMessages:   &msgs,
	}

	loaded := make(map[Kind]bool, len(Kinds))
	for _, kind := range Kinds {
		blob, err := g.backend.Load(ctx, kind)
		if errors.Is(err, common.ErrorNotFound) {
			g.logger.Info(ctx, "no snapshot yet, starting empty", "kind", kind)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error loading %s snapshot: %w", kind, err)
		}
		if err := json.Unmarshal(blob, targets[kind]); err != nil {
			return nil, fmt.Errorf("error decoding %s snapshot: %w", kind, err)
		}
		loaded[kind] = true
	}

	if loaded[KindIdentity] {
		s.Users.Restore(users)
	}
	if loaded[KindContainers] {
		s.Containers.Restore(containers)
	}
	if loaded[KindEvents] {
		s.Events.Restore(events)
	}
	if loaded[KindMessages] {
		s.Messages.Restore(msgs)
	}

	g.logger.Info(ctx, "snapshots loaded", "kinds", len(loaded))
	return s, nil
}

// SaveAll writes every store wholesale.
func (g *Gateway) SaveAll(ctx context.Context, s *Stores) error {
	snaps := map[Kind]any{
		KindIdentity:   s.Users.Snapshot(),
		KindContainers: s.Containers.Snapshot(),
		KindEvents:     s.Events.Snapshot(),
		KindMessages:   s.Messages.Snapshot(),
	}

	blobs := make(map[Kind][]byte, len(snaps))
	for kind, snap := range snaps {
		blob, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("error encoding %s snapshot: %w", kind, err)
		}
		blobs[kind] = blob
	}

	if b, ok := g.backend.(batchSaver); ok {
		if err := b.SaveBatch(ctx, blobs); err != nil {
			return fmt.Errorf("error saving snapshots: %w", err)
		}
	} else {
		for _, kind := range Kinds {
			if err := g.backend.Save(ctx, kind, blobs[kind]); err != nil {
				return fmt.Errorf("error saving %s snapshot: %w", kind, err)
			}
		}
	}

	g.logger.Info(ctx, "snapshots saved")
	return nil
}
