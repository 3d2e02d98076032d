package usecase

import (
	"context"
	"errors"

	"shikaku.dev/solver/internal/domain"
	"shikaku.dev/solver/internal/ports"
)

// Service wires the ports together behind a single facade for callers
// (the CLI, tests, or any future adapter) that don't want to hold each
// dependency separately. Any field left nil degrades that operation to
// errNotConfigured rather than panicking.
type Service struct {
	Solver    ports.Solver
	Explainer ports.Explainer
	Planter   ports.Planter
	Store     ports.Store
}

func NewService(s ports.Solver, e ports.Explainer, p ports.Planter, st ports.Store) *Service {
	return &Service{Solver: s, Explainer: e, Planter: p, Store: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, b *domain.Board) (ports.Result, error) {
	if u.Solver == nil {
		return ports.Result{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, b)
}

func (u *Service) Explain(ctx context.Context, b *domain.Board) (domain.Explanation, bool, error) {
	if u.Explainer == nil {
		return domain.Explanation{}, false, errNotConfigured
	}
	return u.Explainer.Explain(ctx, b)
}

func (u *Service) Plant(ctx context.Context, seed int64, size domain.Size) (*domain.Puzzle, error) {
	if u.Planter == nil {
		return nil, errNotConfigured
	}
	return u.Planter.Plant(ctx, seed, size)
}

// Persistence

func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Store == nil {
		return errNotConfigured
	}
	return u.Store.Save(ctx, p)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Store == nil {
		return nil, errNotConfigured
	}
	return u.Store.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Store == nil {
		return nil, errNotConfigured
	}
	return u.Store.List(ctx)
}
