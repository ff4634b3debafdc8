// Package companion is the interaction dispatcher of the engine. Every
// operation loads the owner's companion, computes the new state in memory
// and writes the whole document back in one call to the repository.
//
// There is no locking across that read-modify-write cycle. Two concurrent
// operations for the same owner both read the same prior document and the
// later write wins; the earlier mutation is lost.
package companion

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/edukshare-max/alebrije/pkg/adapter"
	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/policy"
	"github.com/edukshare-max/alebrije/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
)

// UseCase provides companion operations
type UseCase struct {
	repo    repository.Repository
	storage adapter.Storage
	policy  *policy.Policy
	now     func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithStorage enables Backup
func WithStorage(storage adapter.Storage) Option {
	return func(uc *UseCase) {
		uc.storage = storage
	}
}

// WithPolicy sets the evolution policy consulted after experience is added
func WithPolicy(p *policy.Policy) Option {
	return func(uc *UseCase) {
		uc.policy = p
	}
}

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// WithRandSource sets the random source used to synthesize DNA
func WithRandSource(rng *rand.Rand) Option {
	return func(uc *UseCase) {
		uc.rng = rng
	}
}

// New creates a new companion UseCase instance
func New(repo repository.Repository, opts ...Option) *UseCase {
	uc := &UseCase{
		repo: repo,
		now:  defaultClock,
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Stores keep timestamps at microsecond precision
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// load returns the owner's companion or model.ErrNotFound
func (u *UseCase) load(ctx context.Context, owner model.OwnerID) (*model.Companion, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	c, err := u.repo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, goerr.Wrap(model.ErrNotFound, "owner has no companion", goerr.V("ownerId", owner))
	}
	return c, nil
}

// save stamps updatedAt and replaces the document together with events
func (u *UseCase) save(ctx context.Context, c *model.Companion, now time.Time, events ...*model.Interaction) error {
	c.UpdatedAt = now
	if err := c.Validate(); err != nil {
		return err
	}
	return u.repo.Replace(ctx, c, events...)
}

// ensureAbsent fails with model.ErrConflict when the owner already has a
// companion. The repository enforces the same rule on Create.
func (u *UseCase) ensureAbsent(ctx context.Context, owner model.OwnerID) error {
	existing, err := u.repo.FindByOwner(ctx, owner)
	if err != nil {
		return err
	}
	if existing != nil {
		return goerr.Wrap(model.ErrConflict, "owner already has a companion",
			goerr.V("ownerId", owner),
			goerr.V("companionId", existing.ID),
		)
	}
	return nil
}
