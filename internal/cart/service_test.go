package cart_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/alaminute/backend-prints/internal/cart"
	"github.com/alaminute/backend-prints/internal/repo"
)

type fakeProducts struct {
	bySlug map[string]repo.Product
}

func (f *fakeProducts) GetBySlug(_ context.Context, slug string) (repo.Product, error) {
	p, ok := f.bySlug[slug]
	if !ok {
		return repo.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func newCartFixture(t *testing.T) (*miniredis.Miniredis, *cart.Service) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	products := &fakeProducts{bySlug: map[string]repo.Product{
		"mountain-mist": {
			Name:      "Mountain Mist",
			Slug:      "mountain-mist",
			BasePrice: 299,
			Images:    []string{"/images/mountain-mist.jpg"},
			IsActive:  true,
		},
		"city-lights": {
			Name:      "City Lights",
			Slug:      "city-lights",
			BasePrice: 349,
			IsActive:  true,
		},
	}}
	svc, err := cart.NewService(cart.ServiceConfig{
		Redis:    client,
		Products: products,
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	return mr, svc
}

func TestCartAddMergesBySKU(t *testing.T) {
	_, svc := newCartFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Empty(t, created.Items)

	add := cart.AddItemInput{ProductSlug: "mountain-mist", Size: "40x50", Frame: "black", Glass: "standard", Quantity: 1}
	after, err := svc.AddItem(ctx, created.ID, add)
	require.NoError(t, err)
	require.Len(t, after.Items, 1)

	item := after.Items[0]
	require.Equal(t, "MOUNTAIN-MIST-4050-BLA-STA", item.SKU)
	require.Equal(t, "40x50 cm / Siyah / Standart Cam", item.Variant)
	require.InDelta(t, 671.0, item.Price, 1e-9)
	require.Equal(t, "/images/mountain-mist.jpg", item.Image)

	add.Quantity = 2
	after, err = svc.AddItem(ctx, created.ID, add)
	require.NoError(t, err)
	require.Len(t, after.Items, 1, "same configuration merges into one line")
	require.Equal(t, 3, after.Items[0].Quantity)

	other := cart.AddItemInput{ProductSlug: "mountain-mist", Size: "40x50", Frame: "white", Glass: "standard", Quantity: 1}
	after, err = svc.AddItem(ctx, created.ID, other)
	require.NoError(t, err)
	require.Len(t, after.Items, 2, "different frame is a separate line")
}

func TestCartAddUnknownProduct(t *testing.T) {
	_, svc := newCartFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, created.ID, cart.AddItemInput{ProductSlug: "nope", Size: "30x40", Frame: "none", Glass: "none", Quantity: 1})
	require.Error(t, err)
}

func TestCartUpdateQuantity(t *testing.T) {
	_, svc := newCartFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	after, err := svc.AddItem(ctx, created.ID, cart.AddItemInput{ProductSlug: "mountain-mist", Size: "40x50", Frame: "black", Glass: "standard", Quantity: 2})
	require.NoError(t, err)
	itemID := after.Items[0].ID

	after, err = svc.UpdateQuantity(ctx, created.ID, itemID, 5)
	require.NoError(t, err)
	require.Equal(t, 5, after.Items[0].Quantity)

	after, err = svc.UpdateQuantity(ctx, created.ID, itemID, 0)
	require.NoError(t, err)
	require.Empty(t, after.Items, "zero quantity removes the line")

	_, err = svc.UpdateQuantity(ctx, created.ID, itemID, 1)
	require.Error(t, err, "line is gone")
}

func TestCartRemoveAndClear(t *testing.T) {
	_, svc := newCartFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	after, err := svc.AddItem(ctx, created.ID, cart.AddItemInput{ProductSlug: "mountain-mist", Size: "30x40", Frame: "walnut", Glass: "anti-reflective", Quantity: 1})
	require.NoError(t, err)
	itemID := after.Items[0].ID

	after, err = svc.RemoveItem(ctx, created.ID, itemID)
	require.NoError(t, err)
	require.Empty(t, after.Items)

	after, err = svc.RemoveItem(ctx, created.ID, itemID)
	require.NoError(t, err, "removing an absent line is a no-op")
	require.Empty(t, after.Items)

	_, err = svc.AddItem(ctx, created.ID, cart.AddItemInput{ProductSlug: "city-lights", Size: "50x70", Frame: "black", Glass: "standard", Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, created.ID))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, got.Items)
}

func TestCartSummaryMatchesOrderMath(t *testing.T) {
	_, svc := newCartFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, created.ID, cart.AddItemInput{ProductSlug: "mountain-mist", Size: "40x50", Frame: "black", Glass: "standard", Quantity: 1})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, created.ID)
	require.NoError(t, err)
	require.InDelta(t, 671.0, summary.Subtotal, 1e-9)
	require.InDelta(t, 0.0, summary.Shipping, 1e-9, "subtotal above the free-shipping threshold")
	require.InDelta(t, 671.0, summary.Total, 1e-9)
}

func TestCartHydratesEmptyOnCorruptPayload(t *testing.T) {
	mr, svc := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("cart:broken", "{not json"))
	got, err := svc.Get(ctx, "broken")
	require.NoError(t, err)
	require.Equal(t, "broken", got.ID)
	require.Empty(t, got.Items)

	// The next mutation rewrites the key with a clean document.
	after, err := svc.AddItem(ctx, "broken", cart.AddItemInput{ProductSlug: "city-lights", Size: "30x40", Frame: "none", Glass: "none", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, after.Items, 1)
}

func TestCartExpiresWithTTL(t *testing.T) {
	mr, svc := newCartFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, created.ID, cart.AddItemInput{ProductSlug: "city-lights", Size: "30x40", Frame: "none", Glass: "none", Quantity: 1})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, got.Items, "expired carts hydrate as empty")
}
