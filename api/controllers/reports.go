package controllers

import (
	"net/http"

	"github.com/angelmondragon/droptracker-backend/api/responses"
	"github.com/angelmondragon/droptracker-backend/api/validators"
	"github.com/angelmondragon/droptracker-backend/internal/reports"
	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
	"github.com/angelmondragon/droptracker-backend/pkg/logger"
)

const maxPeriodLen = 16

func ReportsDashboard(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		summary, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// ReportsPeriod builds the drop/sale report for ?period=today|week|month|all.
func ReportsPeriod(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		period, err := validators.ParseQueryString(r, "period", "", maxPeriodLen)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Period(r.Context(), period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
