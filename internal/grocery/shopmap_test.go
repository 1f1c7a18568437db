package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
)

func TestShopTypeRoundTrip(t *testing.T) {
	for _, shop := range ShopTypes() {
		category, err := ToCategory(shop)
		require.NoError(t, err)
		back, err := ToShopType(category)
		require.NoError(t, err)
		assert.Equal(t, shop, back)
	}
}

func TestEveryCategoryHasAShop(t *testing.T) {
	for _, c := range Categories() {
		_, err := ToShopType(c)
		assert.NoError(t, err, c)
	}
	shop, err := ToShopType(CategoryOther)
	require.NoError(t, err)
	assert.Equal(t, ShopSupermarket, shop)
}

func TestToShopTypeUnknown(t *testing.T) {
	_, err := ToShopType("unknownCat")
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeUnknownTaxonomyKey))
	assert.Contains(t, err.Error(), "unknownCat")
}

func TestToCategoryUnknown(t *testing.T) {
	_, err := ToCategory("hardware")
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeUnknownTaxonomyKey))
}

func TestShopTypesForFailsWholeQuery(t *testing.T) {
	shops, err := ShopTypesFor([]string{"meat", "unknownCat"})
	require.Error(t, err)
	assert.Nil(t, shops)
	assert.True(t, apierr.IsCode(err, apierr.CodeUnknownTaxonomyKey))
}

func TestShopTypesForCollapsesDuplicates(t *testing.T) {
	shops, err := ShopTypesFor([]string{"dairy", "meat", "dairy", "other"})
	require.NoError(t, err)
	assert.Equal(t, []string{ShopDairy, ShopButcher, ShopSupermarket}, shops)

	shops, err = ShopTypesFor(nil)
	require.NoError(t, err)
	assert.Empty(t, shops)
}

func TestRelabelShops(t *testing.T) {
	in := []domain.Shop{
		{Category: ShopButcher, Name: "Metzgerei Huber", Lat: 48.1, Lon: 11.5},
		{Category: ShopGreengrocer, Name: "Obst & Gemüse"},
	}
	out, err := RelabelShops(in)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, CategoryMeat, out[0].Category)
	assert.Equal(t, "Metzgerei Huber", out[0].Name)
	assert.Equal(t, CategoryProduce, out[1].Category)
	assert.Equal(t, ShopButcher, in[0].Category, "input is left untouched")
}

func TestRelabelShopsRejectsUnknownType(t *testing.T) {
	out, err := RelabelShops([]domain.Shop{
		{Category: ShopBakery},
		{Category: "kiosk"},
	})
	require.Error(t, err)
	assert.Nil(t, out)
}
