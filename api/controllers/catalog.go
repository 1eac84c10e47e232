package controllers

import (
	"net/http"

	"github.com/angelmondragon/droptracker-backend/api/responses"
	"github.com/angelmondragon/droptracker-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
	"github.com/angelmondragon/droptracker-backend/pkg/logger"
)

// CatalogList returns every catalog item sorted by name.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
