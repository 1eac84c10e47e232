package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/droptracker-backend/internal/repo"
	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	entryNotFoundMessage       = "inventory entry not found"
	catalogItemNotFoundMessage = "catalog item not found"
	alreadySoldMessage         = "entry already sold"
	sellPriceRequiredMessage   = "sell price is required"
	sellPricePositiveMessage   = "sell price must be greater than zero"
)

// Service defines the inventory ledger operations.
type Service interface {
	List(ctx context.Context) ([]EntryDTO, error)
	Get(ctx context.Context, id int64) (*EntryDTO, error)
	Add(ctx context.Context, input AddEntryInput) (*EntryDTO, error)
	Sell(ctx context.Context, id int64, input SellInput) (*EntryDTO, error)
	Delete(ctx context.Context, id int64) error
}

type catalogLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo    Repository
	catalog catalogLookup
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build a ledger service.
type ServiceParams struct {
	Repo    Repository
	Catalog catalogLookup
	Clock   func() time.Time
}

// NewService wires a ledger service with the provided repository.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog lookup required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: params.Repo, catalog: params.Catalog, now: clock}, nil
}

func (s *service) List(ctx context.Context) ([]EntryDTO, error) {
	views, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inventory")
	}
	return FromViews(views), nil
}

func (s *service) Get(ctx context.Context, id int64) (*EntryDTO, error) {
	view, err := s.repo.Get(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, entryNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory entry")
	}
	dto := FromView(*view)
	return &dto, nil
}

func (s *service) Add(ctx context.Context, input AddEntryInput) (*EntryDTO, error) {
	if input.CatalogItemID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_id is required").
			WithDetails(map[string]string{"item_id": "is required"})
	}
	ok, err := s.catalog.Exists(ctx, input.CatalogItemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup catalog item")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, catalogItemNotFoundMessage).
			WithDetails(map[string]any{"item_id": input.CatalogItemID})
	}

	entry := &models.LedgerEntry{
		CatalogItemID: input.CatalogItemID,
		GroupMembers:  normalizeText(input.GroupMembers),
		Notes:         normalizeText(input.Notes),
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create inventory entry")
	}
	return s.Get(ctx, entry.ID)
}

func (s *service) Sell(ctx context.Context, id int64, input SellInput) (*EntryDTO, error) {
	if input.SellPrice == nil {
		return nil, pkgerrors.New(pkgerrors.CodeMissingPrice, sellPriceRequiredMessage).
			WithDetails(map[string]string{"sell_price": "is required"})
	}
	price := input.SellPrice.Round(2)
	if !price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, sellPricePositiveMessage).
			WithDetails(map[string]string{"sell_price": "must be greater than zero"})
	}

	updated, err := s.repo.MarkSold(ctx, id, Sale{
		Price: price,
		Notes: normalizeText(input.SellNotes),
		At:    s.now().UTC(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark inventory entry sold")
	}
	if !updated {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup inventory entry")
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, entryNotFoundMessage)
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, alreadySoldMessage).
			WithDetails(map[string]any{"id": id})
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete inventory entry")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, entryNotFoundMessage)
	}
	return nil
}

func normalizeText(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SumPrices totals the sell price of the given rows, skipping unsold ones.
func SumPrices(views []models.LedgerEntryView) decimal.Decimal {
	total := decimal.Zero
	for _, v := range views {
		if v.SellPrice.Valid {
			total = total.Add(v.SellPrice.Decimal)
		}
	}
	return total
}
