package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/droptracker-backend/api/responses"
	"github.com/angelmondragon/droptracker-backend/api/validators"
	"github.com/angelmondragon/droptracker-backend/internal/ledger"
	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
	"github.com/angelmondragon/droptracker-backend/pkg/logger"
)

// itemID accepts a JSON integer or a numeric string such as "3". An empty
// string decodes to zero so the service reports the id as missing.
type itemID int64

func (id *itemID) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		raw = []byte(s)
	}
	n, err := json.Number(raw).Int64()
	if err != nil {
		return fmt.Errorf("item_id must be an integer: %w", err)
	}
	*id = itemID(n)
	return nil
}

type addEntryRequest struct {
	ItemID       itemID  `json:"item_id"`
	GroupMembers *string `json:"group_members" validate:"omitempty,max=1000"`
	Notes        *string `json:"notes" validate:"omitempty,max=2000"`
}

func (r addEntryRequest) toInput() ledger.AddEntryInput {
	return ledger.AddEntryInput{
		CatalogItemID: int64(r.ItemID),
		GroupMembers:  r.GroupMembers,
		Notes:         r.Notes,
	}
}

// sellEntryRequest accepts sell_price as a JSON number or a numeric string.
type sellEntryRequest struct {
	SellPrice *decimal.Decimal `json:"sell_price"`
	SellNotes *string          `json:"sell_notes" validate:"omitempty,max=2000"`
}

func (r sellEntryRequest) toInput() ledger.SellInput {
	return ledger.SellInput{
		SellPrice: r.SellPrice,
		SellNotes: r.SellNotes,
	}
}

func ledgerUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
}

// InventoryList returns every ledger entry, newest first.
func InventoryList(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			ledgerUnavailable(w, r, logg)
			return
		}

		entries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

func InventoryGet(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			ledgerUnavailable(w, r, logg)
			return
		}

		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// InventoryAdd records a new drop.
func InventoryAdd(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			ledgerUnavailable(w, r, logg)
			return
		}

		var payload addEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Add(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"entry_id": entry.ID,
				"item_id":  entry.CatalogItemID,
			})
			logg.Info(ctx, "inventory.entry_added")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// InventorySell marks an entry sold at the given price.
func InventorySell(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			ledgerUnavailable(w, r, logg)
			return
		}

		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sellEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Sell(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "entry_id", entry.ID), "inventory.entry_sold")
		}
		responses.WriteSuccess(w, entry)
	}
}

func InventoryDelete(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			ledgerUnavailable(w, r, logg)
			return
		}

		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "entry_id", id), "inventory.entry_deleted")
		}
		responses.WriteSuccessMessage(w, http.StatusOK, "entry deleted", map[string]int64{"id": id})
	}
}
