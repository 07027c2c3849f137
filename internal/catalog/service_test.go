package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/activity"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type recordingActivity struct {
	mu      sync.Mutex
	entries []activity.Entry
}

func (r *recordingActivity) Record(_ context.Context, entry activity.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func newTestService(t *testing.T) (Service, *recordingActivity) {
	t.Helper()
	client := dbtest.Client(t)
	rec := &recordingActivity{}
	svc, err := NewService(NewRepository(client.DB()), client, rec)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, rec
}

func baseInput() ProductInput {
	return ProductInput{
		SKU:        "KRT-100",
		Title:      "Embroidered Kurta",
		Category:   "Women",
		PriceCents: 4500,
		Images:     []string{"https://cdn.example/kurta.jpg"},
		Variants: []VariantInput{
			{SKU: "KRT-100-S", Size: strPtr("S"), PriceCents: 4500, Stock: 4},
			{SKU: "KRT-100-M", Size: strPtr("M"), PriceCents: 4700, Stock: 2},
		},
	}
}

func TestCreateProductRecordsActivity(t *testing.T) {
	svc, rec := newTestService(t)
	adminID := uuid.New()

	dto, err := svc.CreateProduct(context.Background(), &adminID, baseInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !dto.IsActive {
		t.Fatal("products default to active")
	}
	if len(dto.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(dto.Variants))
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != enums.ActivityProductCreated {
		t.Fatalf("expected product.created activity, got %+v", rec.entries)
	}
}

func TestCreateProductDuplicateSKUConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.CreateProduct(context.Background(), nil, baseInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.CreateProduct(context.Background(), nil, baseInput())
	if !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestService(t)
	input := baseInput()
	input.Title = " "
	input.Variants[1].SKU = "krt-100-s"

	_, err := svc.CreateProduct(context.Background(), nil, input)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	details, _ := pkgerrors.As(err).Details().(map[string]string)
	if details["title"] == "" || details["variants[1].sku"] == "" {
		t.Fatalf("expected title and duplicate sku details, got %v", details)
	}
}

func TestUpdateProductSyncsVariants(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, nil, baseInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	keep := created.Variants[0]

	inactive := false
	update := baseInput()
	update.Title = "Embroidered Kurta II"
	update.IsActive = &inactive
	update.Variants = []VariantInput{
		{ID: &keep.ID, SKU: keep.SKU, Size: strPtr("S"), PriceCents: 4000, Stock: 9},
		{SKU: "KRT-100-L", Size: strPtr("L"), PriceCents: 4900, Stock: 1},
	}

	updated, err := svc.UpdateProduct(ctx, nil, created.ID, update)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Embroidered Kurta II" || updated.IsActive {
		t.Fatalf("product fields not replaced: %+v", updated)
	}
	if len(updated.Variants) != 2 {
		t.Fatalf("expected 2 variants after sync, got %d", len(updated.Variants))
	}
	skus := map[string]VariantDTO{}
	for _, v := range updated.Variants {
		skus[v.SKU] = v
	}
	if got := skus["KRT-100-S"]; got.ID != keep.ID || got.Stock != 9 || got.PriceCents != 4000 {
		t.Fatalf("kept variant not updated in place: %+v", got)
	}
	if _, ok := skus["KRT-100-M"]; ok {
		t.Fatal("omitted variant should be deleted")
	}
	if _, ok := skus["KRT-100-L"]; !ok {
		t.Fatal("new variant should be created")
	}
	if last := rec.entries[len(rec.entries)-1]; last.Action != enums.ActivityProductUpdated {
		t.Fatalf("expected product.updated activity, got %s", last.Action)
	}

	if _, err := svc.GetProduct(ctx, created.ID, true); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("inactive products are hidden from the storefront, got %v", err)
	}
}

func TestUpdateProductRejectsForeignVariant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, nil, baseInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	foreign := uuid.New()
	update := baseInput()
	update.Variants = []VariantInput{{ID: &foreign, SKU: "X-1", PriceCents: 1}}

	if _, err := svc.UpdateProduct(ctx, nil, created.ID, update); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	again, err := svc.GetProduct(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(again.Variants) != 2 {
		t.Fatalf("failed update must roll back, got %d variants", len(again.Variants))
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.UpdateProduct(context.Background(), nil, uuid.New(), baseInput()); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListProductsPaginates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, sku := range []string{"A", "B", "C"} {
		input := baseInput()
		input.SKU = sku
		input.Variants = nil
		if _, err := svc.CreateProduct(ctx, nil, input); err != nil {
			t.Fatalf("create %s: %v", sku, err)
		}
	}

	first, err := svc.ListProducts(ctx, ListInput{ActiveOnly: true, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first.Products) != 2 || first.NextCursor == "" {
		t.Fatalf("expected a full first page with cursor, got %d / %q", len(first.Products), first.NextCursor)
	}

	second, err := svc.ListProducts(ctx, ListInput{ActiveOnly: true, Limit: 2, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(second.Products) != 1 || second.NextCursor != "" {
		t.Fatalf("expected final page of 1, got %d / %q", len(second.Products), second.NextCursor)
	}

	if _, err := svc.ListProducts(ctx, ListInput{Cursor: "%%%"}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected invalid cursor error, got %v", err)
	}
}
