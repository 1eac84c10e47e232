package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/droptracker-backend/internal/catalog"
	"github.com/angelmondragon/droptracker-backend/internal/testutil"
	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc    Service
	repo   Repository
	db     *gorm.DB
	itemID int64
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := testutil.OpenSQLite(t)
	items := catalog.NewRepository(conn)
	require.NoError(t, items.CreateBatch(context.Background(), []models.CatalogItem{{Name: "Alicorn Ring"}}))
	rows, err := items.List(context.Background())
	require.NoError(t, err)

	f := &fixture{
		repo:   NewRepository(conn),
		db:     conn,
		itemID: rows[0].ID,
		now:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc, err = NewService(ServiceParams{
		Repo:    f.repo,
		Catalog: items,
		Clock:   func() time.Time { return f.now },
	})
	require.NoError(t, err)
	return f
}

func strPtr(v string) *string { return &v }

func pricePtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func codeOf(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	return typed.Code()
}

func TestAddThenSell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entry, err := f.svc.Add(ctx, AddEntryInput{CatalogItemID: f.itemID, Notes: strPtr("solo drop")})
	require.NoError(t, err)
	assert.False(t, entry.IsSold)
	assert.Nil(t, entry.SellPrice)
	assert.Nil(t, entry.SoldAt)
	assert.Equal(t, "Alicorn Ring", entry.ItemName)
	require.NotNil(t, entry.Notes)
	assert.Equal(t, "solo drop", *entry.Notes)
	assert.Nil(t, entry.GroupMembers)
	assert.True(t, entry.CreatedAt.Equal(f.now))

	f.now = f.now.Add(time.Hour)
	sold, err := f.svc.Sell(ctx, entry.ID, SellInput{SellPrice: pricePtr(15000), SellNotes: strPtr("  to a knight ")})
	require.NoError(t, err)
	assert.True(t, sold.IsSold)
	require.NotNil(t, sold.SellPrice)
	assert.Equal(t, 15000.0, *sold.SellPrice)
	require.NotNil(t, sold.SoldAt)
	assert.True(t, sold.SoldAt.Equal(f.now))
	require.NotNil(t, sold.SellNotes)
	assert.Equal(t, "to a knight", *sold.SellNotes)
	assert.True(t, sold.CreatedAt.Equal(entry.CreatedAt))
}

func TestAddValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, AddEntryInput{})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))

	_, err = f.svc.Add(ctx, AddEntryInput{CatalogItemID: f.itemID + 42})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))
	assert.Equal(t, catalogItemNotFoundMessage, pkgerrors.As(err).Message())

	entry, err := f.svc.Add(ctx, AddEntryInput{CatalogItemID: f.itemID, GroupMembers: strPtr("   ")})
	require.NoError(t, err)
	assert.Nil(t, entry.GroupMembers)
}

func TestSellValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	entry, err := f.svc.Add(ctx, AddEntryInput{CatalogItemID: f.itemID})
	require.NoError(t, err)

	_, err = f.svc.Sell(ctx, entry.ID, SellInput{})
	assert.Equal(t, pkgerrors.CodeMissingPrice, codeOf(t, err))
	assert.Equal(t, sellPriceRequiredMessage, pkgerrors.As(err).Message())

	for _, price := range []string{"0", "-5", "0.001"} {
		d := decimal.RequireFromString(price)
		_, err = f.svc.Sell(ctx, entry.ID, SellInput{SellPrice: &d})
		assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err), "price %s", price)
	}

	got, err := f.svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.False(t, got.IsSold, "failed validation must not change state")
}

func TestSellTwiceIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	entry, err := f.svc.Add(ctx, AddEntryInput{CatalogItemID: f.itemID})
	require.NoError(t, err)

	_, err = f.svc.Sell(ctx, entry.ID, SellInput{SellPrice: pricePtr(100)})
	require.NoError(t, err)

	f.now = f.now.Add(24 * time.Hour)
	_, err = f.svc.Sell(ctx, entry.ID, SellInput{SellPrice: pricePtr(999)})
	assert.Equal(t, pkgerrors.CodeStateConflict, codeOf(t, err))

	got, err := f.svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SellPrice)
	assert.Equal(t, 100.0, *got.SellPrice, "first sale is kept")
}

func TestSellMissingEntry(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Sell(context.Background(), 404, SellInput{SellPrice: pricePtr(1)})
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(t, err))
}

func TestConcurrentSellHasOneWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	entry, err := f.svc.Add(ctx, AddEntryInput{CatalogItemID: f.itemID})
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Sell(ctx, entry.ID, SellInput{SellPrice: pricePtr(int64(100 + i))})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.Equal(t, pkgerrors.CodeStateConflict, codeOf(t, err))
	}
	assert.Equal(t, 1, wins)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	entry, err := f.svc.Add(ctx, AddEntryInput{CatalogItemID: f.itemID})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, entry.ID))

	_, err = f.svc.Get(ctx, entry.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(t, err))

	err = f.svc.Delete(ctx, entry.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(t, err))
}

func TestListNewestFirstWithIDTieBreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Add(ctx, AddEntryInput{CatalogItemID: f.itemID})
	require.NoError(t, err)
	second, err := f.svc.Add(ctx, AddEntryInput{CatalogItemID: f.itemID})
	require.NoError(t, err)
	f.now = f.now.Add(time.Minute)
	third, err := f.svc.Add(ctx, AddEntryInput{CatalogItemID: f.itemID})
	require.NoError(t, err)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestListEmptyIsNotNil(t *testing.T) {
	f := newFixture(t)
	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDatabaseRejectsInconsistentSoldState(t *testing.T) {
	f := newFixture(t)
	err := f.db.Exec("INSERT INTO inventory (item_id, is_sold, created_at) VALUES (?, 1, ?)", f.itemID, f.now).Error
	assert.Error(t, err, "sold row without price or sold_at must be rejected")

	err = f.db.Exec("INSERT INTO inventory (item_id, is_sold, created_at) VALUES (?, 0, ?)", f.itemID+99, f.now).Error
	assert.Error(t, err, "unknown catalog item must be rejected")
}

type fakeRepository struct {
	Repository
	markSold func(ctx context.Context, id int64, sale Sale) (bool, error)
	exists   func(ctx context.Context, id int64) (bool, error)
	list     func(ctx context.Context, filter ListFilter) ([]models.LedgerEntryView, error)
}

func (f *fakeRepository) MarkSold(ctx context.Context, id int64, sale Sale) (bool, error) {
	return f.markSold(ctx, id, sale)
}

func (f *fakeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return f.exists(ctx, id)
}

func (f *fakeRepository) List(ctx context.Context, filter ListFilter) ([]models.LedgerEntryView, error) {
	return f.list(ctx, filter)
}

type allowAll struct{}

func (allowAll) Exists(context.Context, int64) (bool, error) { return true, nil }

func TestServiceWrapsStorageErrors(t *testing.T) {
	boom := errors.New("database is locked")
	repo := &fakeRepository{
		markSold: func(context.Context, int64, Sale) (bool, error) { return false, boom },
		exists:   func(context.Context, int64) (bool, error) { return false, boom },
		list:     func(context.Context, ListFilter) ([]models.LedgerEntryView, error) { return nil, boom },
	}
	svc, err := NewService(ServiceParams{Repo: repo, Catalog: allowAll{}})
	require.NoError(t, err)

	_, err = svc.Sell(context.Background(), 1, SellInput{SellPrice: pricePtr(10)})
	assert.Equal(t, pkgerrors.CodeInternal, codeOf(t, err))
	assert.ErrorIs(t, err, boom)

	_, err = svc.List(context.Background())
	assert.Equal(t, pkgerrors.CodeInternal, codeOf(t, err))
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{Catalog: allowAll{}})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{Repo: &fakeRepository{}})
	assert.Error(t, err)
}

func TestSumPrices(t *testing.T) {
	views := []models.LedgerEntryView{
		{SellPrice: decimal.NewNullDecimal(decimal.RequireFromString("10.50"))},
		{},
		{SellPrice: decimal.NewNullDecimal(decimal.NewFromInt(5000))},
	}
	assert.True(t, SumPrices(views).Equal(decimal.RequireFromString("5010.5")))
	assert.True(t, SumPrices(nil).IsZero())
}
