package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/marketing"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type stubContentService struct {
	active  []marketing.ItemDTO
	all     []marketing.ItemDTO
	created *marketing.ItemInput
	deleted uuid.UUID
	err     error
}

func (s *stubContentService) ListActive(context.Context) ([]marketing.ItemDTO, error) {
	return s.active, s.err
}

func (s *stubContentService) ListAll(context.Context) ([]marketing.ItemDTO, error) {
	return s.all, s.err
}

func (s *stubContentService) Create(_ context.Context, _ *uuid.UUID, input marketing.ItemInput) (*marketing.ItemDTO, error) {
	s.created = &input
	return &marketing.ItemDTO{ID: uuid.New(), Title: input.Title}, s.err
}

func (s *stubContentService) Update(_ context.Context, _ *uuid.UUID, id uuid.UUID, input marketing.ItemInput) (*marketing.ItemDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &marketing.ItemDTO{ID: id, Title: input.Title}, nil
}

func (s *stubContentService) Delete(_ context.Context, _ *uuid.UUID, id uuid.UUID) error {
	s.deleted = id
	return s.err
}

func TestListActiveContent(t *testing.T) {
	svc := &stubContentService{active: []marketing.ItemDTO{{Title: "Eid sale"}}}
	resp := httptest.NewRecorder()
	ListActiveContent(svc, testLogger())(resp, httptest.NewRequest(http.MethodGet, "/api/hero-slides", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var items []marketing.ItemDTO
	decodeData(t, resp, &items)
	if len(items) != 1 || items[0].Title != "Eid sale" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestCreateContent(t *testing.T) {
	svc := &stubContentService{}
	body := `{"title":"Eid sale","imageUrl":"https://cdn.example.com/eid.jpg","position":2}`
	resp := httptest.NewRecorder()
	CreateContent(svc, testLogger())(resp, httptest.NewRequest(http.MethodPost, "/api/admin/hero-slides", strings.NewReader(body)))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.created == nil || svc.created.Position != 2 || svc.created.IsActive != nil {
		t.Fatalf("unexpected input %+v", svc.created)
	}
}

func TestCreateContentRequiresImage(t *testing.T) {
	resp := httptest.NewRecorder()
	CreateContent(&stubContentService{}, testLogger())(resp, httptest.NewRequest(http.MethodPost, "/api/admin/hero-slides", strings.NewReader(`{"title":"x"}`)))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDeleteContentNotFound(t *testing.T) {
	svc := &stubContentService{err: pkgerrors.New(pkgerrors.CodeNotFound, "hero slide not found")}
	id := uuid.New()
	req := addRouteParam(httptest.NewRequest(http.MethodDelete, "/api/admin/hero-slides/"+id.String(), nil), "id", id.String())
	resp := httptest.NewRecorder()
	DeleteContent(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if svc.deleted != id {
		t.Fatalf("unexpected deleted id %s", svc.deleted)
	}
}
