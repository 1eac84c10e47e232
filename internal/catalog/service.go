package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
)

// Service exposes the read-only item catalog.
type Service interface {
	List(ctx context.Context) ([]ItemDTO, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type itemRepository interface {
	List(ctx context.Context) ([]models.CatalogItem, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo itemRepository
}

func NewService(repo itemRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]ItemDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list catalog items")
	}
	out := make([]ItemDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out, nil
}

func (s *service) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup catalog item")
	}
	return ok, nil
}
