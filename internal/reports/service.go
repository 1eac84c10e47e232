package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/droptracker-backend/internal/ledger"
	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	"github.com/angelmondragon/droptracker-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
)

const defaultRecentEntries = 5

// Service aggregates the ledger into read-only reports.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardSummary, error)
	Period(ctx context.Context, period string) (*PeriodReport, error)
}

// DashboardSummary is the ledger overview.
type DashboardSummary struct {
	TotalItems     int64             `json:"total_items"`
	UnsoldItems    int64             `json:"unsold_items"`
	SoldItems      int64             `json:"sold_items"`
	TotalSoldValue float64           `json:"total_sold_value"`
	RecentEntries  []ledger.EntryDTO `json:"recent_entries"`
}

// PeriodReport lists drops and sales inside one window. The two lists filter
// on different timestamps and may disagree about the same entry.
type PeriodReport struct {
	Period         enums.ReportPeriod `json:"period"`
	DroppedEntries []ledger.EntryDTO  `json:"dropped_entries"`
	SoldEntries    []ledger.EntryDTO  `json:"sold_entries"`
	TotalValue     float64            `json:"total_value"`
}

type totalsReader interface {
	Totals(ctx context.Context) (Totals, error)
}

type entryLister interface {
	List(ctx context.Context, filter ledger.ListFilter) ([]models.LedgerEntryView, error)
}

type service struct {
	totals  totalsReader
	entries entryLister
	loc     *time.Location
	strict  bool
	recent  int
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build a reports service.
type ServiceParams struct {
	Totals   totalsReader
	Entries  entryLister
	Location *time.Location
	// StrictPeriod rejects unknown periods instead of reporting on everything.
	StrictPeriod  bool
	RecentEntries int
	Clock         func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Totals == nil {
		return nil, fmt.Errorf("totals repository required")
	}
	if params.Entries == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	recent := params.RecentEntries
	if recent <= 0 {
		recent = defaultRecentEntries
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		totals:  params.Totals,
		entries: params.Entries,
		loc:     loc,
		strict:  params.StrictPeriod,
		recent:  recent,
		now:     clock,
	}, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	totals, err := s.totals.Totals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load dashboard totals")
	}
	recent, err := s.entries.List(ctx, ledger.ListFilter{Limit: s.recent})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recent entries")
	}
	return &DashboardSummary{
		TotalItems:     totals.Total,
		UnsoldItems:    totals.Unsold,
		SoldItems:      totals.Sold,
		TotalSoldValue: totals.SoldValue.Round(2).InexactFloat64(),
		RecentEntries:  ledger.FromViews(recent),
	}, nil
}

func (s *service) Period(ctx context.Context, raw string) (*PeriodReport, error) {
	period, err := s.resolvePeriod(raw)
	if err != nil {
		return nil, err
	}
	window := WindowFor(period, s.now(), s.loc)

	dropped, err := s.entries.List(ctx, ledger.ListFilter{
		CreatedFrom:   window.From,
		CreatedBefore: window.Before,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load dropped entries")
	}
	sold, err := s.entries.List(ctx, ledger.ListFilter{
		SoldOnly:    true,
		SoldFrom:    window.From,
		SoldBefore:  window.Before,
		OrderBySold: true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load sold entries")
	}

	return &PeriodReport{
		Period:         period,
		DroppedEntries: ledger.FromViews(dropped),
		SoldEntries:    ledger.FromViews(sold),
		TotalValue:     ledger.SumPrices(sold).Round(2).InexactFloat64(),
	}, nil
}

func (s *service) resolvePeriod(raw string) (enums.ReportPeriod, error) {
	if !s.strict {
		return enums.ReportPeriodOrAll(raw), nil
	}
	if raw == "" {
		return enums.ReportPeriodAll, nil
	}
	period, err := enums.ParseReportPeriod(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period").
			WithDetails(map[string]any{"period": raw, "allowed": []string{"today", "week", "month", "all"}})
	}
	return period, nil
}
