package names

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zhouzirui/z-names/backend/internal/model/membership"
	"github.com/zhouzirui/z-names/backend/internal/model/name"
)

var ErrUIDRequired = errors.New("uid is required")

// Service combines the name source with the like and used stores.
type Service struct {
	source Source
	likes  membership.Store
	used   membership.Store
}

// NewService wires the aggregator from its collaborators.
func NewService(source Source, likes, used membership.Store) *Service {
	return &Service{
		source: source,
		likes:  likes,
		used:   used,
	}
}

// Load fetches every name and joins it with the current store membership.
// Lookups run concurrently; the result keeps the source order. Any failure
// fails the whole load.
func (s *Service) Load(ctx context.Context) (name.List, error) {
	all, err := s.source.GetAll(ctx)
	if err != nil {
		return name.List{}, err
	}

	out := make([]name.DisplayName, len(all))
	g, gctx := errgroup.WithContext(ctx)
	for i, n := range all {
		out[i] = name.DisplayName{UID: n.UID, FullName: n.FullName}
		entry := &out[i]

		g.Go(func() error {
			liked, err := s.likes.Has(gctx, n.UID)
			if err != nil {
				return fmt.Errorf("%s lookup for %q: %w", s.likes.Kind(), n.UID, err)
			}
			entry.Liked = liked
			return nil
		})
		g.Go(func() error {
			used, err := s.used.Has(gctx, n.UID)
			if err != nil {
				return fmt.Errorf("%s lookup for %q: %w", s.used.Kind(), n.UID, err)
			}
			entry.Used = used
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return name.List{}, err
	}
	return name.NewList(out), nil
}

// ToggleLike flips the liked flag of uid and returns a fresh list.
func (s *Service) ToggleLike(ctx context.Context, uid string) (name.List, error) {
	return s.toggle(ctx, s.likes, uid)
}

// ToggleUsed flips the used flag of uid and returns a fresh list.
func (s *Service) ToggleUsed(ctx context.Context, uid string) (name.List, error) {
	return s.toggle(ctx, s.used, uid)
}

func (s *Service) toggle(ctx context.Context, store membership.Store, uid string) (name.List, error) {
	if uid == "" {
		return name.List{}, ErrUIDRequired
	}
	if err := store.Toggle(ctx, uid); err != nil {
		return name.List{}, fmt.Errorf("toggle %s for %q: %w", store.Kind(), uid, err)
	}
	return s.Load(ctx)
}
