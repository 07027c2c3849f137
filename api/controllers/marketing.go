package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/marketing"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// contentRequest is shared by hero slides, carousel tiles and collection stacks.
type contentRequest struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Subtitle *string `json:"subtitle,omitempty" validate:"omitempty,max=500"`
	ImageURL string  `json:"imageUrl" validate:"required,url"`
	LinkURL  *string `json:"linkUrl,omitempty" validate:"omitempty,max=2048"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=64"`
	Position int     `json:"position" validate:"gte=0"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (c contentRequest) toInput() marketing.ItemInput {
	return marketing.ItemInput{
		Title:    c.Title,
		Subtitle: c.Subtitle,
		ImageURL: c.ImageURL,
		LinkURL:  c.LinkURL,
		Category: c.Category,
		Position: c.Position,
		IsActive: c.IsActive,
	}
}

// ListActiveContent serves the storefront view of one content kind.
func ListActiveContent(svc marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}
		items, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// AdminListContent includes inactive entries.
func AdminListContent(svc marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}
		items, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func CreateContent(svc marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}
		var payload contentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Create(r.Context(), middleware.AdminIDPtrFromContext(r.Context()), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func UpdateContent(svc marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}
		id, err := validators.ParseURLUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload contentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Update(r.Context(), middleware.AdminIDPtrFromContext(r.Context()), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func DeleteContent(svc marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}
		id, err := validators.ParseURLUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), middleware.AdminIDPtrFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
