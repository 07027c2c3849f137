package marketing

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func boolPtr(v bool) *bool { return &v }
func strPtr(v string) *string { return &v }

func TestHeroSlidesActiveOrderedByPosition(t *testing.T) {
	rec := &recordingActivity{}
	svc, err := NewHeroSlides(dbtest.Open(t), rec)
	require.NoError(t, err)
	ctx := context.Background()
	adminID := uuid.New()

	_, err = svc.Create(ctx, &adminID, ItemInput{Title: "Eid Sale", ImageURL: "https://cdn.example/eid.jpg", Position: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &adminID, ItemInput{Title: "New Arrivals", ImageURL: "https://cdn.example/new.jpg", Position: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &adminID, ItemInput{Title: "Hidden", ImageURL: "https://cdn.example/x.jpg", IsActive: boolPtr(false)})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "New Arrivals", active[0].Title)
	assert.Equal(t, "Eid Sale", active[1].Title)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.Len(t, rec.entries, 3)
	assert.Equal(t, enums.ActivityContentCreated, rec.entries[0].Action)
	assert.Equal(t, enums.EntityHeroSlide, rec.entries[0].EntityType)
}

func TestCollectionStackUpdateAndDelete(t *testing.T) {
	rec := &recordingActivity{}
	svc, err := NewCollectionStacks(dbtest.Open(t), rec)
	require.NoError(t, err)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, ItemInput{Title: "Bridal", ImageURL: "https://cdn.example/bridal.jpg", Category: strPtr("Bridal")})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	updated, err := svc.Update(ctx, nil, created.ID, ItemInput{
		Title:    "  Bridal Edit ",
		ImageURL: "https://cdn.example/bridal-2.jpg",
		Category: strPtr(" "),
		Position: 3,
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bridal Edit", updated.Title)
	assert.Nil(t, updated.Category)
	assert.Equal(t, 3, updated.Position)
	assert.False(t, updated.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, svc.Delete(ctx, nil, created.ID))
	err = svc.Delete(ctx, nil, created.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	require.Len(t, rec.entries, 3)
	assert.Equal(t, enums.ActivityContentUpdated, rec.entries[1].Action)
	assert.Equal(t, enums.ActivityContentDeleted, rec.entries[2].Action)
}

func TestFashionCarouselValidationAndMissing(t *testing.T) {
	svc, err := NewFashionCarousel(dbtest.Open(t), nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Create(ctx, nil, ItemInput{Title: " ", Position: -1})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	details := pkgerrors.As(err).Details().(map[string]string)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "imageUrl")
	assert.Contains(t, details, "position")

	_, err = svc.Update(ctx, nil, uuid.New(), ItemInput{Title: "Lawn", ImageURL: "https://cdn.example/lawn.jpg"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}
