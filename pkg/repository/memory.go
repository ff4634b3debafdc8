package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Memory is an in-process Repository. It copies documents on the way in and
// out so callers cannot mutate stored state by accident.
type Memory struct {
	mu         sync.RWMutex
	companions map[model.OwnerID]*model.Companion
	events     map[model.OwnerID][]*model.Interaction
}

var _ Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		companions: make(map[model.OwnerID]*model.Companion),
		events:     make(map[model.OwnerID][]*model.Interaction),
	}
}

func (r *Memory) FindByOwner(ctx context.Context, owner model.OwnerID) (*model.Companion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.companions[owner]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

func (r *Memory) Create(ctx context.Context, companion *model.Companion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companions[companion.OwnerID]; ok {
		return goerr.Wrap(model.ErrConflict, "owner already has a companion", goerr.V("owner", companion.OwnerID))
	}
	r.companions[companion.OwnerID] = companion.Clone()
	return nil
}

func (r *Memory) Replace(ctx context.Context, companion *model.Companion, events ...*model.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.companions[companion.OwnerID] = companion.Clone()
	for _, event := range events {
		cp := *event
		r.events[event.OwnerID] = append(r.events[event.OwnerID], &cp)
	}
	return nil
}

func (r *Memory) ListInteractions(ctx context.Context, owner model.OwnerID, input ListInteractionsInput) ([]*model.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logged := r.events[owner]
	var events []*model.Interaction
	// newest first; later appends win ties on CreatedAt
	for _, event := range slices.Backward(logged) {
		if input.Kind != "" && event.Kind != input.Kind {
			continue
		}
		cp := *event
		events = append(events, &cp)
	}
	slices.SortStableFunc(events, func(a, b *model.Interaction) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if len(events) > input.limit() {
		events = events[:input.limit()]
	}
	return events, nil
}
