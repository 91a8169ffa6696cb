package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kysrn-ww/mathi-phone/internal/domain"
	"github.com/kysrn-ww/mathi-phone/internal/store"
)

func newService() *Service {
	return NewService(store.NewMemory())
}

func sampleProduct() domain.Product {
	return domain.Product{
		Name:           "iPhone 16 Pro",
		Model:          "16",
		Type:           "pro",
		Storage:        "256GB",
		Color:          "Plateado",
		Condition:      domain.ConditionSealed,
		BatteryHealth:  100,
		PriceARS:       2000000,
		PriceUSD:       1200,
		ScreenSize:     "6.3\"",
		Chip:           "A18 Pro",
		Camera:         "48MP Triple",
		Features:       []string{"Dynamic Island", "USB-C"},
		Available:      true,
		WarrantyMonths: 12,
		Category:       "iphone",
		Description:    "Tope de gama",
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleProduct())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
	require.Equal(t, "iPhone 16 Pro", got.Name)
	require.Equal(t, []string{"Dynamic Island", "USB-C"}, got.Features)
}

func TestGetUnknownID(t *testing.T) {
	svc := newService()
	_, err := svc.Get(context.Background(), "no-such-id")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEmptyPatchOnlyBumpsUpdatedAt(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleProduct())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := svc.Update(ctx, created.ID, domain.ProductPatch{})
	require.NoError(t, err)

	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	updated.UpdatedAt = created.UpdatedAt
	require.Equal(t, created, updated)
}

func TestUpdateSingleFieldLeavesSiblings(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleProduct())
	require.NoError(t, err)

	price := 999.0
	updated, err := svc.Update(ctx, created.ID, domain.ProductPatch{PriceUSD: &price})
	require.NoError(t, err)

	require.Equal(t, 999.0, updated.PriceUSD)
	require.Equal(t, created.PriceARS, updated.PriceARS)
	require.Equal(t, created.Name, updated.Name)
	require.Equal(t, created.Features, updated.Features)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUpdateCanClearToZeroValue(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleProduct())
	require.NoError(t, err)

	empty := ""
	available := false
	updated, err := svc.Update(ctx, created.ID, domain.ProductPatch{
		Description: &empty,
		Available:   &available,
	})
	require.NoError(t, err)
	require.Equal(t, "", updated.Description)
	require.False(t, updated.Available)
	require.Equal(t, created.Name, updated.Name)
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newService()
	_, err := svc.Update(context.Background(), "no-such-id", domain.ProductPatch{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleProduct())
	require.NoError(t, err)

	existed, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, existed)

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	existed, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, existed)
}

func TestFilterComposition(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p1 := sampleProduct()
	p1.Model = "16"
	p1.BatteryHealth = 90
	first, err := svc.Create(ctx, p1)
	require.NoError(t, err)

	p2 := sampleProduct()
	p2.Model = "15"
	p2.BatteryHealth = 95
	second, err := svc.Create(ctx, p2)
	require.NoError(t, err)

	page, total, err := svc.List(ctx, domain.ProductFilter{Model: "16"}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, first.ID, page[0].ID)

	min := 92
	page, total, err = svc.List(ctx, domain.ProductFilter{MinBattery: &min}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, second.ID, page[0].ID)

	// both filters together exclude everything
	page, total, err = svc.List(ctx, domain.ProductFilter{Model: "16", MinBattery: &min}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, total)
	require.Empty(t, page)
}

func TestFilterPriceAndAvailability(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	cheap := sampleProduct()
	cheap.PriceUSD = 500
	cheap.Available = false
	_, err := svc.Create(ctx, cheap)
	require.NoError(t, err)

	dear := sampleProduct()
	dear.PriceUSD = 1500
	dearCreated, err := svc.Create(ctx, dear)
	require.NoError(t, err)

	avail := true
	_, total, err := svc.List(ctx, domain.ProductFilter{Available: &avail}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)

	max := 600.0
	page, total, err := svc.List(ctx, domain.ProductFilter{MaxPriceUSD: &max}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.NotEqual(t, dearCreated.ID, page[0].ID)
}

func TestSearchIsSubstringAndCaseInsensitive(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p := sampleProduct()
	p.Color = "Plateado"
	created, err := svc.Create(ctx, p)
	require.NoError(t, err)

	other := sampleProduct()
	other.Color = "Negro"
	other.Name = "iPhone 14"
	other.Chip = "A15 Bionic"
	other.Description = "usado"
	other.Features = []string{"Face ID"}
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	// "plata" is literally a substring of "plateado"
	page, total, err := svc.List(ctx, domain.ProductFilter{Search: "plata"}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, created.ID, page[0].ID)

	// matches inside a single feature tag
	_, total, err = svc.List(ctx, domain.ProductFilter{Search: "face id"}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)

	// matches chip field
	_, total, err = svc.List(ctx, domain.ProductFilter{Search: "a15"}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)

	_, total, err = svc.List(ctx, domain.ProductFilter{Search: "galaxy"}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, total)
}

func TestPaginationStableCreationOrder(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	ids := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		p := sampleProduct()
		p.Name = fmt.Sprintf("iPhone %02d", i)
		created, err := svc.Create(ctx, p)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	page, total, err := svc.List(ctx, domain.ProductFilter{}, 3, 6)
	require.NoError(t, err)
	require.Equal(t, 10, total)
	require.Len(t, page, 3)
	require.Equal(t, ids[6], page[0].ID)
	require.Equal(t, ids[7], page[1].ID)
	require.Equal(t, ids[8], page[2].ID)

	// offset past the end yields an empty page, same total
	page, total, err = svc.List(ctx, domain.ProductFilter{}, 3, 20)
	require.NoError(t, err)
	require.Equal(t, 10, total)
	require.Empty(t, page)
}

func TestListLimitDefaultsAndClamp(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, sampleProduct())
		require.NoError(t, err)
	}

	page, total, err := svc.List(ctx, domain.ProductFilter{}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page, 3)

	page, _, err = svc.List(ctx, domain.ProductFilter{}, 500, 0)
	require.NoError(t, err)
	require.Len(t, page, 3)
}
