package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/activity"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// ListActivity returns the admin activity feed, newest first.
func ListActivity(svc activity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activity service unavailable"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		since, err := validators.ParseQueryTime(r, "since")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.List(r.Context(), activity.ListInput{Since: since, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
